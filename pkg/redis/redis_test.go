package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_InvalidURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want error
	}{
		{"empty", "", ErrNoURL},
		{"http scheme", "http://localhost:6379", ErrBadURL},
		{"no scheme", "localhost:6379", ErrBadURL},
		{"bad port", "redis://localhost:notaport", ErrBadURL},
		{"bad database", "redis://localhost:6379/notanumber", ErrBadURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, err := Open(context.Background(), Config{URL: tt.url})
			require.ErrorIs(t, err, tt.want)
			require.Nil(t, client)
		})
	}
}

func TestParse_AppliesConfig(t *testing.T) {
	t.Parallel()

	opts, err := parse(Config{
		URL:          "rediss://:pw@cache.internal:6380/2",
		PoolSize:     25,
		MinIdleConns: 4,
		ReadTimeout:  time.Second,
		DialTimeout:  2 * time.Second,
	})
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "pw", opts.Password)
	assert.NotNil(t, opts.TLSConfig)
	assert.Equal(t, 25, opts.PoolSize)
	assert.Equal(t, 4, opts.MinIdleConns)
	assert.Equal(t, time.Second, opts.ReadTimeout)
	assert.Equal(t, 2*time.Second, opts.DialTimeout)
}

func TestConfig_Enabled(t *testing.T) {
	t.Parallel()

	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{URL: "redis://localhost:6379"}.Enabled())
}

func TestHealthcheck_NilClient(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Healthcheck(nil)(context.Background()), ErrNotReady)
}

type closer struct {
	closed bool
	err    error
}

func (c *closer) Close() error {
	c.closed = true
	return c.err
}

func TestShutdown(t *testing.T) {
	t.Parallel()

	c := &closer{err: errors.New("close error")}
	err := Shutdown(c)(context.Background())
	require.EqualError(t, err, "close error")
	assert.True(t, c.closed)
}

func TestWait(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	require.ErrorIs(t, wait(ctx, 10*time.Second), context.Canceled)
	assert.Less(t, time.Since(start), time.Second)

	require.NoError(t, wait(context.Background(), 10*time.Millisecond))
}
