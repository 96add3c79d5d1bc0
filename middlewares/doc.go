// Package middlewares holds the global middleware chain of the site.
//
// Install them in this order:
//
//	internal.WithMiddleware(
//	    middlewares.Recover(),
//	    middlewares.RequestID(),
//	    middlewares.Timeout(20*time.Second),
//	    middlewares.Flash("/public/", "/health/"),
//	    middlewares.CurrentUser(loadUser),
//	    middlewares.MethodOverride(),
//	)
//
// Recover turns panics into a PanicError for the error handler. RequestID
// tags the request and, through RequestIDExtractor, every log line.
// Timeout bounds the database work of the middleware and handlers after it.
// Flash consumes the previous request's messages. CurrentUser resolves the
// session's user for views and handlers. MethodOverride rewrites GET/POST
// requests carrying _method before chi matches a route.
//
// RequireAuth is a route middleware:
//
//	r.GET("/users/{id}/edit", h.edit, middlewares.RequireAuth())
package middlewares
