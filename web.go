package web

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bbyeodagung/web/internal"
	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/health"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/session"
	"github.com/bbyeodagung/web/pkg/storage"
)

type (
	App              = internal.App
	Router           = internal.Router
	Context          = internal.Context
	Handler          = internal.Handler
	HandlerFunc      = internal.HandlerFunc
	Middleware       = internal.Middleware
	ErrorHandler     = internal.ErrorHandler
	Component        = internal.Component
	ValidationErrors = internal.ValidationErrors
	HTTPError        = internal.HTTPError

	Option        = internal.Option
	RunOption     = internal.RunOption
	HealthOption  = internal.HealthOption
	CookieOption  = cookie.Option
	SessionOption = internal.SessionOption
	SessionStore  = session.Store
)

// New assembles the site:
//
//	app := web.New(
//	    web.WithMiddleware(middlewares.Recover(), middlewares.RequestID()),
//	    web.WithHandlers(handlers.NewPages(q, timetable), handlers.NewUsers(q, q)),
//	)
//	err := app.Run(cfg.Addr(), web.Logger(log))
func New(opts ...Option) *App { return internal.New(opts...) }

// Routing and rendering.

// WithMiddleware adds global middleware, run in order before route matching.
func WithMiddleware(mw ...Middleware) Option { return internal.WithMiddleware(mw...) }

func WithHandlers(h ...Handler) Option { return internal.WithHandlers(h...) }

// WithStaticFiles serves fsys/dir under pattern without directory listings.
func WithStaticFiles(pattern string, fsys fs.FS, dir string) Option {
	return internal.WithStaticFiles(pattern, fsys, dir)
}

func WithErrorHandler(h ErrorHandler) Option { return internal.WithErrorHandler(h) }

func WithNotFoundHandler(h HandlerFunc) Option { return internal.WithNotFoundHandler(h) }

func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

func WithLogger(l *slog.Logger) Option { return internal.WithLogger(l) }

// Health probes.

// WithHealthChecks serves /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option { return internal.WithHealthChecks(opts...) }

func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Cookies and sessions.

func WithCookieOptions(opts ...CookieOption) Option { return internal.WithCookieOptions(opts...) }

// WithCookieSecret enables signed and encrypted cookies. It needs at least
// 32 bytes.
func WithCookieSecret(secret string) CookieOption { return cookie.WithSecret(secret) }

func WithCookieSecure(secure bool) CookieOption { return cookie.WithSecure(secure) }

func WithCookieSameSite(ss http.SameSite) CookieOption { return cookie.WithSameSite(ss) }

func WithSession(store SessionStore, opts ...SessionOption) Option {
	return internal.WithSession(store, opts...)
}

func WithSessionCookieName(name string) SessionOption { return internal.WithSessionCookieName(name) }

// WithSessionMaxAge defaults to 4000 seconds.
func WithSessionMaxAge(d time.Duration) SessionOption { return internal.WithSessionMaxAge(d) }

// Background jobs and uploads.

// WithJobs enables Context.Enqueue and runs m's workers with the server.
func WithJobs(m *job.Manager) Option { return internal.WithJobs(m) }

func WithJobEnqueuer(e job.Enqueuer) Option { return internal.WithJobEnqueuer(e) }

// WithStorage enables Context.UploadImage for files up to maxUploadSize
// bytes.
func WithStorage(s storage.Storage, maxUploadSize int64) Option {
	return internal.WithStorage(s, maxUploadSize)
}

// Run options.

func Logger(l *slog.Logger) RunOption { return internal.Logger(l) }

func ShutdownTimeout(d time.Duration) RunOption { return internal.ShutdownTimeout(d) }

// ShutdownHook runs fn after the server stops, in registration order.
func ShutdownHook(fn func(context.Context) error) RunOption { return internal.ShutdownHook(fn) }

// Request helpers.

// ParamUUID parses the named path parameter as a UUID.
func ParamUUID(c Context, name string) (uuid.UUID, error) { return internal.ParamUUID(c, name) }

func ErrNotFound(message string) *HTTPError { return internal.ErrNotFound(message) }

func ErrForbidden(message string) *HTTPError { return internal.ErrForbidden(message) }

func ErrMethodNotAllowed(message string) *HTTPError { return internal.ErrMethodNotAllowed(message) }

// AsHTTPError returns the HTTPError in err's chain, or nil.
func AsHTTPError(err error) *HTTPError { return internal.AsHTTPError(err) }
