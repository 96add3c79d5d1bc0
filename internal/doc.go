// Package internal is the HTTP kernel of the site: routing, the request
// Context, sessions, flashes, error dispatch and the server runtime.
//
// Import "github.com/bbyeodagung/web" instead; it re-exports the public API.
//
// # Core Types
//
//   - App: owns the chi router, middleware and graceful shutdown
//   - Context: request/response access plus binding, sessions, flashes, jobs and uploads
//   - Router: what handlers use to declare routes
//   - Handler: a type that declares routes; one per resource
//   - HandlerFunc: a route handler that returns an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers
//
// # Context as context.Context
//
// Context embeds context.Context, so it can be passed straight to
// repositories:
//
//	func (h *CoursesHandler) show(c internal.Context) error {
//	    course, err := h.repo.Get(c, id)
//	    if err != nil {
//	        return err
//	    }
//	    return c.Render(http.StatusOK, views.Course(page, course))
//	}
//
// # Per-request state
//
// Global middleware, route middleware and the handler each receive their own
// Context value. The session and flash state live in the request context,
// so a session loaded by the current-user middleware is the one the handler
// sees, and flashes popped once stay popped.
//
// # Sessions and flashes
//
// Sessions are loaded on first access and only created when something is
// written to them. A changed session is saved right before the response
// header goes out; so are pending flash messages:
//
//	func (h *UsersHandler) authenticate(c internal.Context) error {
//	    ...
//	    if err := c.AuthenticateSession(user.ID.String()); err != nil {
//	        return err
//	    }
//	    c.AddFlash("success", user.FullName()+" logged in successfully!")
//	    return c.Redirect(http.StatusSeeOther, "/")
//	}
//
// # Binding
//
// Bind decodes the body, applies `sanitize` tags, then checks `validate`
// tags. Type conversion failures and rule failures both come back as
// ValidationErrors so forms can show them next to the field.
//
// # Server Runtime
//
//	err := app.Run(":3000",
//	    internal.Logger(log),
//	    internal.ShutdownHook(redis.Shutdown(client)),
//	    internal.ShutdownHook(db.Shutdown(pool)),
//	)
//
// Job workers registered with WithJobs start before the listener opens and
// stop before the shutdown hooks run.
package internal
