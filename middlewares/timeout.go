package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bbyeodagung/web/internal"
)

// DefaultTimeout is used when Timeout gets a non-positive duration.
const DefaultTimeout = 20 * time.Second

// Timeout puts a deadline on the request context, which repository calls
// made with the Context observe. An error returned after the deadline passed
// becomes a 503 unless it already carries a status.
func Timeout(d time.Duration) internal.Middleware {
	if d <= 0 {
		d = DefaultTimeout
	}
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), d)
			defer cancel()
			c.SetContext(ctx)

			err := next(c)
			if err == nil || !errors.Is(ctx.Err(), context.DeadlineExceeded) || internal.AsHTTPError(err) != nil {
				return err
			}
			c.LogWarn("request timed out", slog.Duration("timeout", d))
			return internal.NewHTTPError(http.StatusServiceUnavailable, "The request took too long. Please try again.").Wrap(err)
		}
	}
}
