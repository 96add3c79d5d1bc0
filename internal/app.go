package internal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/logger"
	"github.com/bbyeodagung/web/pkg/storage"
)

const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
	defaultShutdownTimeout   = 30 * time.Second
	defaultMaxUploadSize     = 5 << 20
)

// App is the site: a chi router plus the services every request Context
// reaches (cookies, sessions, jobs, storage). It is fixed once New returns.
type App struct {
	router chi.Router
	logger *slog.Logger

	cookieManager  *cookie.Manager
	sessionManager *SessionManager
	jobs           job.Enqueuer
	worker         *job.Manager
	storage        storage.Storage
	maxUploadSize  int64

	onError          ErrorHandler
	notFound         HandlerFunc
	methodNotAllowed HandlerFunc
	middlewares      []Middleware
	mounts           []mount
	handlers         []Handler
}

// mount is a plain http.Handler outside the Context machinery, such as
// static assets or a health probe. Exact mounts answer GET on one path.
type mount struct {
	pattern string
	handler http.Handler
	exact   bool
}

// New builds an App:
//
//	app := internal.New(
//	    internal.WithMiddleware(middlewares.Recover(), middlewares.RequestID()),
//	    internal.WithHandlers(handlers.NewUsers(q, q), handlers.NewTalks(q)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router:        chi.NewRouter(),
		logger:        logger.NewNope(),
		cookieManager: cookie.New(),
		maxUploadSize: defaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sessionManager != nil {
		a.sessionManager.setDefaults(a.logger, a.cookieManager)
	}
	a.buildRoutes()
	return a
}

// Router exposes the chi router for tests and tooling.
func (a *App) Router() chi.Router { return a.router }

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) { a.router.ServeHTTP(w, r) }

// Run serves on addr until SIGINT, SIGTERM or the WithContext context ends.
// Job workers from WithJobs start before the listener opens and stop
// before any ShutdownHook runs.
func (a *App) Run(addr string, opts ...RunOption) error {
	rt := newRunner(opts)
	if a.worker != nil {
		rt.onStart = append([]hook{a.worker.Start}, rt.onStart...)
		rt.onStop = append([]hook{a.worker.Shutdown()}, rt.onStop...)
	}
	return rt.serve(addr, a.router)
}

func (a *App) buildRoutes() {
	if a.notFound != nil {
		a.router.NotFound(a.wrapHandler(a.notFound))
	}
	if a.methodNotAllowed != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowed))
	}

	// chi requires Use before any route; this also puts method override
	// ahead of route matching.
	for _, mw := range a.middlewares {
		a.router.Use(a.chiMiddleware(mw))
	}

	for _, m := range a.mounts {
		if m.exact {
			a.router.Method(http.MethodGet, m.pattern, m.handler)
			continue
		}
		a.router.Mount(m.pattern, m.handler)
	}

	r := &chiRouter{mux: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError passes err to the ErrorHandler. Once the header is out
// there is nothing left to render, so the error is only logged.
func (a *App) handleError(c Context, err error) {
	switch {
	case c.Written():
		c.LogError("error after response was written", slog.Any("error", err))
	case a.onError != nil:
		if herr := a.onError(c, err); herr != nil {
			c.LogError("error handler failed", slog.Any("error", herr))
		}
	default:
		code := http.StatusInternalServerError
		if he := AsHTTPError(err); he != nil {
			code = he.Code
		}
		http.Error(c.Response(), http.StatusText(code), code)
	}
}
