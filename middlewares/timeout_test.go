package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/internal"
	"github.com/bbyeodagung/web/middlewares"
)

func TestTimeout(t *testing.T) {
	t.Parallel()

	slow := routes(func(r internal.Router) {
		r.GET("/slow", func(c internal.Context) error {
			// Stands in for a query that honours the request context.
			<-c.Done()
			return c.Err()
		})
		r.GET("/deadline", func(c internal.Context) error {
			_, ok := c.Deadline()
			if !ok {
				return c.String(http.StatusOK, "none")
			}
			return c.String(http.StatusOK, "set")
		})
		r.GET("/gone", func(c internal.Context) error {
			<-c.Done()
			return internal.ErrNotFound("Train not found")
		})
	})

	t.Run("expired request becomes 503", func(t *testing.T) {
		t.Parallel()

		var got error
		app := newApp(nil, []internal.Middleware{middlewares.Timeout(10 * time.Millisecond)}, slow,
			internal.WithErrorHandler(func(c internal.Context, err error) error {
				got = err
				he := internal.AsHTTPError(err)
				return c.String(he.Code, he.Message)
			}),
		)

		w := serve(app, httptest.NewRequest(http.MethodGet, "/slow", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		require.ErrorIs(t, got, context.DeadlineExceeded)
	})

	t.Run("handler sees the deadline", func(t *testing.T) {
		t.Parallel()

		app := newApp(nil, []internal.Middleware{middlewares.Timeout(time.Minute)}, slow)
		w := serve(app, httptest.NewRequest(http.MethodGet, "/deadline", nil))
		assert.Equal(t, "set", w.Body.String())
	})

	t.Run("http errors keep their status", func(t *testing.T) {
		t.Parallel()

		app := newApp(nil, []internal.Middleware{middlewares.Timeout(10 * time.Millisecond)}, slow)
		w := serve(app, httptest.NewRequest(http.MethodGet, "/gone", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-positive duration falls back to the default", func(t *testing.T) {
		t.Parallel()

		app := newApp(nil, []internal.Middleware{middlewares.Timeout(0)}, slow)
		w := serve(app, httptest.NewRequest(http.MethodGet, "/deadline", nil))
		assert.Equal(t, "set", w.Body.String())
	})
}
