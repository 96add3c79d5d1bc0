package middlewares

import (
	"strings"

	"github.com/bbyeodagung/web/internal"
)

// Flash consumes the flash messages left by the previous request so every
// page rendered during this request sees them through c.Flashes(). Paths
// under any of skipPrefixes (static assets, probes) leave them untouched.
func Flash(skipPrefixes ...string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			path := c.Request().URL.Path
			for _, p := range skipPrefixes {
				if strings.HasPrefix(path, p) {
					return next(c)
				}
			}

			if f := c.Flashes(); !f.Empty() {
				c.LogDebug("flash messages loaded", "kinds", len(f))
			}
			return next(c)
		}
	}
}
