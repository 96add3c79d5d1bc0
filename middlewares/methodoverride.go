package middlewares

import (
	"net/http"
	"strings"

	"github.com/bbyeodagung/web/internal"
)

// DefaultMethodOverrideParam is the query or form field holding the verb.
const DefaultMethodOverrideParam = "_method"

// MethodOverride lets HTML forms and links reach PUT, PATCH and DELETE
// routes. GET and POST requests carrying _method=<verb> are rewritten before
// routing. The query string wins over the form field, and the form field is
// read for POST only. Any other verb is ignored.
//
// It must be installed with WithMiddleware so it runs before route matching.
func MethodOverride(param ...string) internal.Middleware {
	name := DefaultMethodOverrideParam
	if len(param) > 0 && param[0] != "" {
		name = param[0]
	}
	fromQuery := internal.NewExtractor(internal.FromQuery(name))
	fromQueryOrForm := internal.NewExtractor(internal.FromQuery(name), internal.FromForm(name))

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			req := c.Request()

			var (
				raw string
				ok  bool
			)
			switch req.Method {
			case http.MethodGet:
				raw, ok = fromQuery.Extract(c)
			case http.MethodPost:
				raw, ok = fromQueryOrForm.Extract(c)
			}
			if ok {
				if method, allowed := overrideTarget(raw); allowed {
					c.LogDebug("method override", "from", req.Method, "to", method)
					req.Method = method
				}
			}

			return next(c)
		}
	}
}

func overrideTarget(raw string) (string, bool) {
	switch m := strings.ToUpper(strings.TrimSpace(raw)); m {
	case http.MethodPut, http.MethodPatch, http.MethodDelete:
		return m, true
	default:
		return "", false
	}
}
