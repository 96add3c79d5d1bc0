package internal

import (
	"context"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/session"
	"github.com/bbyeodagung/web/pkg/storage"
	"github.com/bbyeodagung/web/pkg/validator"
)

// Component is anything that renders itself as HTML.
type Component = templ.Component

// ValidationErrors maps form fields to the messages shown next to them.
type ValidationErrors = validator.ValidationErrors

// Context is what handlers and middleware receive. It is also a
// context.Context, so repositories can take it directly.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter
	Context() context.Context

	Param(name string) string
	Query(name string) string
	Form(name string) string
	FormFile(name string) (multipart.File, *multipart.FileHeader, error)
	Header(name string) string
	SetHeader(name, value string)

	String(code int, s string) error
	NoContent(code int) error
	// Redirect should use http.StatusSeeOther after a form post.
	Redirect(code int, url string) error
	Error(code int, message string) *HTTPError
	Render(code int, component Component) error
	// Written reports whether the response header has been sent.
	Written() bool

	// Bind decodes the form body into v, sanitizes it and validates it.
	// Field problems come back as ValidationErrors; the error return is
	// for requests that cannot be read at all.
	Bind(v any) (ValidationErrors, error)

	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a value that later middleware and the handler can Get.
	Set(key, value any)
	Get(key any) any
	// SetContext replaces the request context. It must derive from Context().
	SetContext(ctx context.Context)

	CookieSigned(name string) (string, error)

	AddFlash(kind, message string)
	// Flashes pops the messages queued by the previous request. Repeated
	// calls in one request return the same set.
	Flashes() cookie.Flashes

	// UserID is "" for anonymous visitors.
	UserID() string
	IsAuthenticated() bool
	IsCurrentUser(id string) bool
	// Session is nil until something is written to it.
	Session() (*session.Session, error)
	// AuthenticateSession marks the visitor as userID and issues a fresh
	// session token.
	AuthenticateSession(userID string) error
	SessionValue(key string) (any, error)
	SetSessionValue(key string, val any) error
	DestroySession() error
	// DestroyUserSessions signs userID out everywhere.
	DestroyUserSessions(userID string) error

	// Enqueue returns job.ErrNotConfigured without WithJobs.
	Enqueue(name string, payload any, opts ...job.EnqueueOption) error

	// UploadImage returns storage.ErrNotConfigured without WithStorage.
	UploadImage(fh *multipart.FileHeader, prefix, name string) (*storage.Object, error)
	DeleteFile(key string) error
	// FileURL is "" when storage is disabled or key is empty.
	FileURL(key string) string
}

type stateKey struct{}

// requestState lives in the request context so the Context values built for
// each middleware and the handler share one session and one flash set.
type requestState struct {
	session    *session.Session
	loaded     bool
	saveHooked bool

	flashIn     cookie.Flashes
	popped      bool
	flashOut    cookie.Flashes
	flashHooked bool
}

type requestContext struct {
	app   *App
	w     *ResponseWriter
	r     *http.Request
	state *requestState
}

// newContext wraps one step of the handler chain. The writer and state are
// created on the first step and reused after that.
func newContext(w http.ResponseWriter, r *http.Request, app *App) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	st, ok := r.Context().Value(stateKey{}).(*requestState)
	if !ok {
		st = &requestState{}
		r = r.WithContext(context.WithValue(r.Context(), stateKey{}, st))
	}
	return &requestContext{app: app, w: rw, r: r, state: st}
}

func (c *requestContext) Request() *http.Request        { return c.r }
func (c *requestContext) Response() http.ResponseWriter { return c.w }
func (c *requestContext) Context() context.Context      { return c.r.Context() }
func (c *requestContext) Written() bool                 { return c.w.Written() }

// context.Context, delegated to the request.

func (c *requestContext) Deadline() (deadline time.Time, ok bool) { return c.r.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}                   { return c.r.Context().Done() }
func (c *requestContext) Err() error                              { return c.r.Context().Err() }
func (c *requestContext) Value(key any) any                       { return c.r.Context().Value(key) }

func (c *requestContext) Param(name string) string { return chi.URLParam(c.r, name) }
func (c *requestContext) Query(name string) string { return c.r.URL.Query().Get(name) }

func (c *requestContext) Form(name string) string { return c.r.FormValue(name) }

func (c *requestContext) FormFile(name string) (multipart.File, *multipart.FileHeader, error) {
	return c.r.FormFile(name)
}

func (c *requestContext) Header(name string) string    { return c.r.Header.Get(name) }
func (c *requestContext) SetHeader(name, value string) { c.w.Header().Set(name, value) }

func (c *requestContext) write(code int, contentType string) {
	if contentType != "" {
		c.w.Header().Set("Content-Type", contentType)
	}
	c.w.WriteHeader(code)
}

func (c *requestContext) String(code int, s string) error {
	c.write(code, "text/plain; charset=utf-8")
	_, err := c.w.Write([]byte(s))
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.write(code, "")
	return nil
}

func (c *requestContext) Render(code int, component Component) error {
	c.write(code, "text/html; charset=utf-8")
	return component.Render(c.r.Context(), c.w)
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.w, c.r, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string) *HTTPError {
	return NewHTTPError(code, message)
}

func (c *requestContext) log(level slog.Level, msg string, attrs []any) {
	c.app.logger.Log(c.r.Context(), level, msg, attrs...)
}

func (c *requestContext) LogDebug(msg string, attrs ...any) { c.log(slog.LevelDebug, msg, attrs) }
func (c *requestContext) LogInfo(msg string, attrs ...any)  { c.log(slog.LevelInfo, msg, attrs) }
func (c *requestContext) LogWarn(msg string, attrs ...any)  { c.log(slog.LevelWarn, msg, attrs) }
func (c *requestContext) LogError(msg string, attrs ...any) { c.log(slog.LevelError, msg, attrs) }

func (c *requestContext) Set(key, value any) {
	c.r = c.r.WithContext(context.WithValue(c.r.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.r.Context().Value(key) }

func (c *requestContext) SetContext(ctx context.Context) { c.r = c.r.WithContext(ctx) }

func (c *requestContext) CookieSigned(name string) (string, error) {
	return c.app.cookieManager.GetSigned(c.r, name)
}
