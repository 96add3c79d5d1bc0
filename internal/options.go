package internal

import (
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/session"
	"github.com/bbyeodagung/web/pkg/storage"
)

// Option configures an App in New.
type Option func(*App)

// WithMiddleware appends global middleware. It runs in the given order,
// before route matching.
func WithMiddleware(mw ...Middleware) Option {
	return func(a *App) { a.middlewares = append(a.middlewares, mw...) }
}

func WithHandlers(h ...Handler) Option {
	return func(a *App) { a.handlers = append(a.handlers, h...) }
}

// WithStaticFiles serves fsys/dir under pattern, e.g. "/public/". Directory
// paths answer 404.
func WithStaticFiles(pattern string, fsys fs.FS, dir string) Option {
	return func(a *App) {
		sub, err := fs.Sub(fsys, dir)
		if err != nil {
			panic(err)
		}
		a.mounts = append(a.mounts, mount{pattern: pattern, handler: assets(pattern, sub)})
	}
}

func assets(pattern string, fsys fs.FS) http.Handler {
	files := http.StripPrefix(strings.TrimSuffix(pattern, "/"), http.FileServerFS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		h := w.Header()
		h.Set("Cache-Control", "public, max-age=3600")
		h.Set("X-Content-Type-Options", "nosniff")
		files.ServeHTTP(w, r)
	})
}

func WithErrorHandler(h ErrorHandler) Option {
	return func(a *App) { a.onError = h }
}

// WithNotFoundHandler replaces chi's plain-text 404 for unmatched paths.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(a *App) { a.notFound = h }
}

// WithMethodNotAllowedHandler replaces chi's 405 for known paths.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(a *App) { a.methodNotAllowed = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithCookieOptions replaces the cookie manager used for sessions and
// flashes:
//
//	internal.WithCookieOptions(
//	    cookie.WithSecret(cfg.CookieSecret),
//	    cookie.WithSecure(cfg.IsProduction()),
//	)
func WithCookieOptions(opts ...cookie.Option) Option {
	return func(a *App) { a.cookieManager = cookie.New(opts...) }
}

// WithSession turns on server-side sessions kept in store.
func WithSession(store session.Store, opts ...SessionOption) Option {
	return func(a *App) { a.sessionManager = NewSessionManager(store, opts...) }
}

// WithJobs enables Context.Enqueue and runs m's workers alongside the
// server.
func WithJobs(m *job.Manager) Option {
	return func(a *App) {
		if m != nil {
			a.jobs, a.worker = m, m
		}
	}
}

// WithJobEnqueuer enables Context.Enqueue without running any worker.
func WithJobEnqueuer(e job.Enqueuer) Option {
	return func(a *App) { a.jobs = e }
}

// WithStorage enables uploads. A non-positive maxUploadSize keeps 5 MiB.
func WithStorage(s storage.Storage, maxUploadSize int64) Option {
	return func(a *App) {
		a.storage = s
		if maxUploadSize > 0 {
			a.maxUploadSize = maxUploadSize
		}
	}
}
