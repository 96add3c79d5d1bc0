package internal

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// Router is what a Handler sees while declaring its routes. Route-level
// middleware passed to the verb methods runs in the order given, after the
// global chain.
type Router interface {
	GET(path string, h HandlerFunc, mw ...Middleware)
	POST(path string, h HandlerFunc, mw ...Middleware)
	PUT(path string, h HandlerFunc, mw ...Middleware)
	PATCH(path string, h HandlerFunc, mw ...Middleware)
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// Group scopes middleware added with Use without adding a prefix.
	Group(fn func(r Router))
	// Route scopes both middleware and a path prefix, e.g. "/courses".
	Route(pattern string, fn func(r Router))
	Use(mw ...Middleware)
	Mount(pattern string, h http.Handler)
}

type chiRouter struct {
	mux chi.Router
	app *App
}

func (r *chiRouter) handle(method, path string, h HandlerFunc, mw []Middleware) {
	for _, m := range slices.Backward(mw) {
		h = m(h)
	}
	r.mux.Method(method, path, r.app.wrapHandler(h))
}

func (r *chiRouter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodGet, path, h, mw)
}

func (r *chiRouter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPost, path, h, mw)
}

func (r *chiRouter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPut, path, h, mw)
}

func (r *chiRouter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodPatch, path, h, mw)
}

func (r *chiRouter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.handle(http.MethodDelete, path, h, mw)
}

func (r *chiRouter) Group(fn func(Router)) {
	r.mux.Group(func(sub chi.Router) { fn(r.sub(sub)) })
}

func (r *chiRouter) Route(pattern string, fn func(Router)) {
	r.mux.Route(pattern, func(sub chi.Router) { fn(r.sub(sub)) })
}

func (r *chiRouter) Use(mw ...Middleware) {
	for _, m := range mw {
		r.mux.Use(r.app.chiMiddleware(m))
	}
}

func (r *chiRouter) Mount(pattern string, h http.Handler) { r.mux.Mount(pattern, h) }

func (r *chiRouter) sub(mux chi.Router) *chiRouter { return &chiRouter{mux: mux, app: r.app} }

// chiMiddleware lifts mw into chi's func(http.Handler) http.Handler shape.
// The downstream handler is served with the request and writer as mw left
// them, so values stored through Context.Set survive.
func (a *App) chiMiddleware(mw Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := mw(func(c Context) error {
			next.ServeHTTP(c.Response(), c.Request())
			return nil
		})
		return a.wrapHandler(h)
	}
}
