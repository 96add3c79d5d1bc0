package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type welcomePayload struct {
	Email string `json:"email"`
}

type welcomeTask struct {
	got []welcomePayload
	err error
}

func (t *welcomeTask) Name() string { return "send_welcome_email" }

func (t *welcomeTask) Handle(_ context.Context, p welcomePayload) error {
	t.got = append(t.got, p)
	return t.err
}

type warmTask struct {
	runs int
}

func (t *warmTask) Name() string                 { return "warm_cache" }
func (t *warmTask) Schedule() string             { return "@every 15m" }
func (t *warmTask) RunOnStart() bool             { return true }
func (t *warmTask) Handle(context.Context) error { t.runs++; return nil }

func TestNewManager_NilPool(t *testing.T) {
	t.Parallel()

	_, err := NewManager(nil)
	require.ErrorIs(t, err, ErrPoolRequired)
}

func TestWithTask(t *testing.T) {
	t.Parallel()

	task := &welcomeTask{}
	cfg := newConfig([]Option{WithTask(task)})

	ex, ok := cfg.registry.get("send_welcome_email")
	require.True(t, ok)
	require.NoError(t, ex(context.Background(), json.RawMessage(`{"email":"a@b.co"}`)))
	require.Len(t, task.got, 1)
	assert.Equal(t, "a@b.co", task.got[0].Email)

	require.NoError(t, ex(context.Background(), nil))
	assert.Len(t, task.got, 2)

	require.ErrorIs(t, ex(context.Background(), json.RawMessage(`{`)), ErrInvalidPayload)

	task.err = errors.New("smtp down")
	require.EqualError(t, ex(context.Background(), nil), "smtp down")
}

func TestWithScheduledTask(t *testing.T) {
	t.Parallel()

	task := &warmTask{}
	cfg := newConfig([]Option{WithScheduledTask(task)})

	require.Len(t, cfg.schedules, 1)
	assert.Equal(t, "warm_cache", cfg.schedules[0].name)
	assert.Equal(t, "@every 15m", cfg.schedules[0].spec)
	assert.True(t, cfg.schedules[0].runOnStart)

	ex, ok := cfg.registry.get("warm_cache")
	require.True(t, ok)
	require.NoError(t, ex(context.Background(), nil))
	assert.Equal(t, 1, task.runs)
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg := newConfig([]Option{
		WithMaxWorkers(0),
		WithQueue("email", 3),
		WithQueue("", 3),
		WithQueue("bad", 0),
		WithLogger(nil),
	})
	assert.Equal(t, defaultMaxWorkers, cfg.maxWorkers)
	assert.Equal(t, map[string]int{"email": 3}, cfg.queues)
	assert.NotNil(t, cfg.logger)
	assert.Empty(t, cfg.registry.names())
}

func TestBuildArgs(t *testing.T) {
	t.Parallel()

	args, opts, err := buildArgs("send_welcome_email", welcomePayload{Email: "x@y.kr"}, []EnqueueOption{
		InQueue("email"),
		MaxAttempts(5),
		Tags("welcome"),
		Unique("x@y.kr", time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, "web:task", args.Kind())
	assert.JSONEq(t, `{"email":"x@y.kr"}`, string(args.Payload))
	assert.Equal(t, "x@y.kr", args.UniqueKey)
	assert.Equal(t, "email", opts.Queue)
	assert.Equal(t, 5, opts.MaxAttempts)
	assert.Equal(t, []string{"welcome"}, opts.Tags)
	assert.True(t, opts.UniqueOpts.ByArgs)
	assert.Equal(t, time.Hour, opts.UniqueOpts.ByPeriod)

	args, opts, err = buildArgs("warm_cache", nil, nil)
	require.NoError(t, err)
	assert.Nil(t, args.Payload)
	assert.Empty(t, args.UniqueKey)
	assert.Empty(t, opts.Queue)

	_, _, err = buildArgs("bad", make(chan int), nil)
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestParseSchedule(t *testing.T) {
	t.Parallel()

	s, err := parseSchedule("*/15 * * * *")
	require.NoError(t, err)
	from := time.Date(2024, 3, 1, 10, 7, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC), s.Next(from))

	_, err = parseSchedule("@every 15m")
	require.NoError(t, err)

	_, err = parseSchedule("not a cron")
	require.Error(t, err)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	err := Healthcheck(nil)(context.Background())
	require.ErrorIs(t, err, ErrHealthcheckFailed)
	require.ErrorIs(t, err, ErrNotConfigured)

	err = Healthcheck(&Manager{})(context.Background())
	require.ErrorIs(t, err, ErrNotStarted)
}

func TestShutdown_NotStarted(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&Manager{}).Shutdown()(context.Background()))
}
