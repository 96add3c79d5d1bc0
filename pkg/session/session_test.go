package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/pkg/session"
)

func TestSession(t *testing.T) {
	t.Parallel()

	t.Run("new session is dirty", func(t *testing.T) {
		t.Parallel()

		s := session.New("id", "token", time.Now().Add(time.Hour))
		assert.True(t, s.IsDirty())
		assert.False(t, s.IsAuthenticated())
		assert.NotNil(t, s.Values)
	})

	t.Run("set user authenticates", func(t *testing.T) {
		t.Parallel()

		s := session.New("id", "token", time.Now().Add(time.Hour))
		s.ClearDirty()
		s.SetUser("user-1")
		assert.True(t, s.IsAuthenticated())
		assert.True(t, s.IsDirty())
	})

	t.Run("values", func(t *testing.T) {
		t.Parallel()

		s := session.New("id", "token", time.Now().Add(time.Hour))
		s.ClearDirty()
		s.SetValue("return_to", "/courses")
		assert.True(t, s.IsDirty())

		v, ok := s.GetValue("return_to")
		assert.True(t, ok)
		assert.Equal(t, "/courses", v)

		_, ok = s.GetValue("missing")
		assert.False(t, ok)
	})

	t.Run("expiry", func(t *testing.T) {
		t.Parallel()

		s := session.New("id", "token", time.Now().Add(-time.Second))
		assert.True(t, s.IsExpired())
		assert.Zero(t, s.TTL())
	})
}

func TestMemoryStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("create and get by token", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		s := session.New("id-1", "tok-1", time.Now().Add(time.Hour))
		require.NoError(t, store.Create(ctx, s))

		got, err := store.Get(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
		assert.False(t, got.IsDirty())
	})

	t.Run("update with rotated token drops old token", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		s := session.New("id-1", "old", time.Now().Add(time.Hour))
		require.NoError(t, store.Create(ctx, s))

		s.Token = "new"
		require.NoError(t, store.Update(ctx, s))

		_, err := store.Get(ctx, "old")
		require.ErrorIs(t, err, session.ErrNotFound)
		got, err := store.Get(ctx, "new")
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, session.New("id", "tok", time.Now().Add(-time.Minute))))

		_, err := store.Get(ctx, "tok")
		require.ErrorIs(t, err, session.ErrExpired)
	})

	t.Run("janitor evicts expired sessions", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore(session.WithCleanupInterval(5 * time.Millisecond))
		t.Cleanup(func() { _ = store.Close() })

		require.NoError(t, store.Create(ctx, session.New("gone", "tok-gone", time.Now().Add(-time.Second))))
		require.NoError(t, store.Create(ctx, session.New("live", "tok-live", time.Now().Add(time.Hour))))
		assert.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 5*time.Millisecond)

		_, err := store.Get(ctx, "tok-gone")
		require.ErrorIs(t, err, session.ErrNotFound)
		_, err = store.Get(ctx, "tok-live")
		require.NoError(t, err)
		require.NoError(t, store.Close())
	})

	t.Run("delete by user", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		for _, tok := range []string{"a", "b"} {
			s := session.New("id-"+tok, tok, time.Now().Add(time.Hour))
			s.SetUser("user-1")
			require.NoError(t, store.Create(ctx, s))
		}
		require.NoError(t, store.Create(ctx, session.New("id-c", "c", time.Now().Add(time.Hour))))

		require.NoError(t, store.DeleteByUserID(ctx, "user-1"))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("stored copy is isolated from caller", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		s := session.New("id", "tok", time.Now().Add(time.Hour))
		require.NoError(t, store.Create(ctx, s))
		s.SetValue("k", "v")

		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		_, ok := got.GetValue("k")
		assert.False(t, ok)
	})

	t.Run("touch", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		require.NoError(t, store.Create(ctx, session.New("id", "tok", time.Now().Add(time.Hour))))

		at := time.Now().Add(time.Minute).Truncate(time.Second)
		require.NoError(t, store.Touch(ctx, "id", at))
		got, err := store.Get(ctx, "tok")
		require.NoError(t, err)
		assert.True(t, got.LastActiveAt.Equal(at))

		require.ErrorIs(t, store.Touch(ctx, "missing", at), session.ErrNotFound)
	})
}
