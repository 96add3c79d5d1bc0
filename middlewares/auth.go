package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/bbyeodagung/web/internal"
)

// ErrUserNotFound is returned by a UserLoader when the session points at a
// user that no longer exists.
var ErrUserNotFound = errors.New("middlewares: user not found")

// UserLoader fetches the user bound to the session.
type UserLoader[U any] func(ctx context.Context, userID string) (U, error)

type currentUserKey struct{}

// CurrentUser loads the authenticated user, if any, into the request.
// A session naming a deleted user is destroyed and the request continues
// anonymously. Other loader errors abort the request.
func CurrentUser[U any](load UserLoader[U]) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			userID := c.UserID()
			if userID == "" {
				return next(c)
			}

			user, err := load(c, userID)
			switch {
			case errors.Is(err, ErrUserNotFound):
				c.LogWarn("session user no longer exists", "user_id", userID)
				if err := c.DestroySession(); err != nil {
					return err
				}
				return next(c)
			case err != nil:
				return err
			}

			c.Set(currentUserKey{}, user)
			return next(c)
		}
	}
}

// GetCurrentUser returns the user stored by CurrentUser.
func GetCurrentUser[U any](c internal.Context) (U, bool) {
	u, ok := c.Get(currentUserKey{}).(U)
	return u, ok
}

// DefaultLoginPath is where RequireAuth sends anonymous visitors.
const DefaultLoginPath = "/users/login"

// RequireAuth redirects anonymous visitors to the login page with an error flash.
func RequireAuth(loginPath ...string) internal.Middleware {
	target := DefaultLoginPath
	if len(loginPath) > 0 && loginPath[0] != "" {
		target = loginPath[0]
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if !c.IsAuthenticated() {
				c.AddFlash("error", "Please log in first.")
				return c.Redirect(http.StatusSeeOther, target)
			}
			return next(c)
		}
	}
}
