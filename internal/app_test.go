package internal_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/internal"
	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/pkg/session"
	"github.com/bbyeodagung/web/pkg/storage"
	"github.com/bbyeodagung/web/pkg/validator"
)

// routes adapts a plain func to internal.Handler.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// client replays cookies between requests like a browser.
type client struct {
	t       *testing.T
	handler http.Handler
	jar     map[string]*http.Cookie
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, handler: h, jar: map[string]*http.Cookie{}}
}

func (cl *client) do(req *http.Request) *httptest.ResponseRecorder {
	cl.t.Helper()
	for _, ck := range cl.jar {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	cl.handler.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(cl.jar, ck.Name)
			continue
		}
		cl.jar[ck.Name] = ck
	}
	return w
}

func (cl *client) get(path string) *httptest.ResponseRecorder {
	return cl.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestApp_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/things", func(c internal.Context) error { return c.String(http.StatusOK, "list") })
		})),
		internal.WithNotFoundHandler(func(c internal.Context) error {
			return c.String(http.StatusNotFound, "custom 404")
		}),
		internal.WithMethodNotAllowedHandler(func(c internal.Context) error {
			return c.String(http.StatusMethodNotAllowed, "custom 405")
		}),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "custom 404", w.Body.String())

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/things", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "custom 405", w.Body.String())
}

func TestApp_ErrorHandler(t *testing.T) {
	t.Parallel()

	var seen error
	app := internal.New(
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/boom", func(c internal.Context) error { return errors.New("boom") })
			r.GET("/gone", func(c internal.Context) error {
				return c.Error(http.StatusNotFound, "gone")
			})
			r.GET("/late", func(c internal.Context) error {
				_ = c.String(http.StatusOK, "partial")
				return errors.New("after write")
			})
		})),
		internal.WithErrorHandler(func(c internal.Context, err error) error {
			seen = err
			code := http.StatusInternalServerError
			if he := internal.AsHTTPError(err); he != nil {
				code = he.Code
			}
			return c.String(code, "handled")
		}),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualError(t, seen, "boom")

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gone", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	seen = nil
	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/late", nil))
	assert.Equal(t, "partial", w.Body.String())
	assert.NoError(t, seen, "error handler skipped once the response is written")
}

func TestApp_DefaultErrorHandler(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHandlers(routes(func(r internal.Router) {
		r.GET("/forbidden", func(c internal.Context) error { return internal.ErrForbidden("no") })
	})))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestApp_MiddlewareOrderAndValues(t *testing.T) {
	t.Parallel()

	var order []string
	tag := func(name string) internal.Middleware {
		return func(next internal.HandlerFunc) internal.HandlerFunc {
			return func(c internal.Context) error {
				order = append(order, name)
				c.Set(ctxKey{}, name)
				return next(c)
			}
		}
	}

	app := internal.New(
		internal.WithMiddleware(tag("global")),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/x", func(c internal.Context) error {
				order = append(order, "handler")
				return c.String(http.StatusOK, internal.ContextValue[string](c, ctxKey{}))
			}, tag("route-1"), tag("route-2"))
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, []string{"global", "route-1", "route-2", "handler"}, order)
	assert.Equal(t, "route-2", w.Body.String())
}

func TestApp_GlobalMiddlewareRunsBeforeRouting(t *testing.T) {
	t.Parallel()

	toDelete := func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if c.Query("_method") == http.MethodDelete {
				c.Request().Method = http.MethodDelete
			}
			return next(c)
		}
	}

	app := internal.New(
		internal.WithMiddleware(toDelete),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.DELETE("/items/{id}", func(c internal.Context) error {
				return c.String(http.StatusOK, "deleted "+c.Param("id"))
			})
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/items/7?_method=DELETE", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "deleted 7", w.Body.String())
}

func TestContext_Render(t *testing.T) {
	t.Parallel()

	page := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<h1>hello</h1>")
		return err
	})

	w := requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), nil, func(c internal.Context) {
		require.NoError(t, c.Render(http.StatusUnprocessableEntity, page))
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>hello</h1>", w.Body.String())
}

func TestContext_Redirect(t *testing.T) {
	t.Parallel()

	w := requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), nil, func(c internal.Context) {
		require.NoError(t, c.Redirect(http.StatusSeeOther, "/users"))
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/users", w.Header().Get("Location"))
}

type signupForm struct {
	Email string `form:"email" sanitize:"trim,lower" validate:"required;email"`
	Zip   string `form:"zip_code" sanitize:"digits" validate:"required;len:5;digits"`
	Age   int    `form:"age"`
}

type zipForm struct {
	signupForm
}

func (f zipForm) Validate() error {
	return validator.Apply(validator.Rule{
		Check: func() bool { return f.Zip != "00000" },
		Error: validator.ValidationError{Field: "zip_code", Message: "is not a real zip code"},
	})
}

func TestContext_Bind(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		req := postForm("/signup", url.Values{"email": {"  Jon@Example.COM "}, "zip_code": {"12345"}, "age": {"30"}})
		requestVia(t, req, nil, func(c internal.Context) {
			var f signupForm
			ve, err := c.Bind(&f)
			require.NoError(t, err)
			assert.Nil(t, ve)
			assert.Equal(t, "jon@example.com", f.Email)
			assert.Equal(t, 30, f.Age)
		})
	})

	t.Run("rule and conversion failures", func(t *testing.T) {
		t.Parallel()
		req := postForm("/signup", url.Values{"email": {"nope"}, "zip_code": {"12"}, "age": {"old"}})
		requestVia(t, req, nil, func(c internal.Context) {
			var f signupForm
			ve, err := c.Bind(&f)
			require.NoError(t, err)
			assert.True(t, ve.Has("email"))
			assert.True(t, ve.Has("zip_code"))
			assert.Equal(t, "must be a whole number", ve.First("age"))
		})
	})

	t.Run("Validate hook runs after tag rules", func(t *testing.T) {
		t.Parallel()
		req := postForm("/signup", url.Values{"email": {"a@b.co"}, "zip_code": {"00000"}})
		requestVia(t, req, nil, func(c internal.Context) {
			var f zipForm
			ve, err := c.Bind(&f)
			require.NoError(t, err)
			assert.Equal(t, "is not a real zip code", ve.First("zip_code"))
		})
	})

	t.Run("bad target", func(t *testing.T) {
		t.Parallel()
		req := postForm("/signup", url.Values{})
		requestVia(t, req, nil, func(c internal.Context) {
			var f signupForm
			_, err := c.Bind(f)
			require.Error(t, err)
		})
	})
}

func TestContext_Flashes(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/save", func(c internal.Context) error {
				c.AddFlash("success", "Saved!")
				return c.Redirect(http.StatusSeeOther, "/")
			})
			r.GET("/", func(c internal.Context) error {
				return c.String(http.StatusOK, strings.Join(c.Flashes()["success"], ","))
			})
		})),
	)
	cl := newClient(t, app)

	w := cl.do(postForm("/save", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	assert.Equal(t, "Saved!", cl.get("/").Body.String())
	assert.Empty(t, cl.get("/").Body.String(), "a flash is shown once")
}

func TestContext_FlashReplacesPopped(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/first", func(c internal.Context) error {
				c.AddFlash("info", "one")
				return c.Redirect(http.StatusSeeOther, "/second")
			})
			r.GET("/second", func(c internal.Context) error {
				_ = c.Flashes()
				c.AddFlash("info", "two")
				return c.Redirect(http.StatusSeeOther, "/third")
			})
			r.GET("/third", func(c internal.Context) error {
				return c.String(http.StatusOK, strings.Join(c.Flashes()["info"], ","))
			})
		})),
	)
	cl := newClient(t, app)

	cl.get("/first")
	w := cl.get("/second")
	var flashCookies int
	for _, ck := range w.Result().Cookies() {
		if ck.Name == cookie.FlashCookieName {
			flashCookies++
		}
	}
	assert.Equal(t, 1, flashCookies)
	assert.Equal(t, "two", cl.get("/third").Body.String())
}

func TestContext_Sessions(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	app := internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithSession(store),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.GET("/peek", func(c internal.Context) error {
				return c.String(http.StatusOK, c.UserID())
			})
			r.GET("/remember", func(c internal.Context) error {
				if err := c.SetSessionValue("theme", "dark"); err != nil {
					return err
				}
				return c.NoContent(http.StatusNoContent)
			})
			r.GET("/theme", func(c internal.Context) error {
				v, err := c.SessionValue("theme")
				if err != nil {
					return err
				}
				s, _ := v.(string)
				return c.String(http.StatusOK, s)
			})
			r.POST("/login", func(c internal.Context) error {
				if err := c.AuthenticateSession("user-1"); err != nil {
					return err
				}
				return c.Redirect(http.StatusSeeOther, "/")
			})
			r.GET("/logout", func(c internal.Context) error {
				if err := c.DestroySession(); err != nil {
					return err
				}
				return c.Redirect(http.StatusSeeOther, "/")
			})
		})),
	)
	cl := newClient(t, app)

	w := cl.get("/peek")
	assert.Empty(t, w.Body.String())
	assert.Empty(t, w.Result().Cookies(), "anonymous reads create no session")
	assert.Zero(t, store.Len())

	cl.get("/remember")
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "dark", cl.get("/theme").Body.String())
	before := cl.jar[internal.DefaultSessionCookieName].Value

	cl.do(postForm("/login", nil))
	after := cl.jar[internal.DefaultSessionCookieName].Value
	assert.NotEqual(t, before, after, "login rotates the session token")
	assert.Equal(t, "user-1", cl.get("/peek").Body.String())
	assert.Equal(t, "dark", cl.get("/theme").Body.String(), "values survive rotation")

	cl.get("/logout")
	assert.Empty(t, cl.get("/peek").Body.String())
	assert.Zero(t, store.Len())
}

func TestContext_AuthenticateWithoutSession(t *testing.T) {
	t.Parallel()

	store := session.NewMemoryStore()
	app := internal.New(
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithSession(store),
		internal.WithHandlers(routes(func(r internal.Router) {
			r.POST("/login", func(c internal.Context) error {
				if err := c.SetSessionValue("return_to", "/courses"); err != nil {
					return err
				}
				if err := c.AuthenticateSession("user-7"); err != nil {
					return err
				}
				return c.Redirect(http.StatusSeeOther, "/")
			})
			r.GET("/peek", func(c internal.Context) error {
				return c.String(http.StatusOK, c.UserID())
			})
		})),
	)

	w := httptest.NewRecorder()
	app.ServeHTTP(w, postForm("/login", nil))
	require.Equal(t, http.StatusSeeOther, w.Code)

	var sids []*http.Cookie
	for _, ck := range w.Result().Cookies() {
		if ck.Name == internal.DefaultSessionCookieName {
			sids = append(sids, ck)
		}
	}
	require.Len(t, sids, 1)
	assert.Equal(t, 1, store.Len())

	req := httptest.NewRequest(http.MethodGet, "/peek", nil)
	req.AddCookie(sids[0])
	w = httptest.NewRecorder()
	app.ServeHTTP(w, req)
	assert.Equal(t, "user-7", w.Body.String())
}

func TestContext_SessionNotConfigured(t *testing.T) {
	t.Parallel()

	requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), nil, func(c internal.Context) {
		_, err := c.Session()
		require.ErrorIs(t, err, session.ErrNotConfigured)
		assert.False(t, c.IsAuthenticated())
		require.ErrorIs(t, c.DestroySession(), session.ErrNotConfigured)
	})
}

type recordingEnqueuer struct {
	names []string
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, name string, _ any, _ ...job.EnqueueOption) error {
	r.names = append(r.names, name)
	return nil
}

func TestContext_Enqueue(t *testing.T) {
	t.Parallel()

	requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), nil, func(c internal.Context) {
		require.ErrorIs(t, c.Enqueue("welcome", nil), job.ErrNotConfigured)
	})

	rec := &recordingEnqueuer{}
	opts := []internal.Option{internal.WithJobEnqueuer(rec)}
	requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), opts, func(c internal.Context) {
		require.NoError(t, c.Enqueue("welcome", map[string]string{"email": "a@b.c"}))
	})
	assert.Equal(t, []string{"welcome"}, rec.names)
}

func TestContext_Storage(t *testing.T) {
	t.Parallel()

	requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), nil, func(c internal.Context) {
		_, err := c.UploadImage(nil, "courses", "x")
		require.ErrorIs(t, err, storage.ErrNotConfigured)
		assert.Empty(t, c.FileURL("a.png"))
	})

	mem := storage.NewMemory()
	opts := []internal.Option{internal.WithStorage(mem, 0)}
	requestVia(t, httptest.NewRequest(http.MethodGet, "/1", nil), opts, func(c internal.Context) {
		assert.Equal(t, "/uploads/a.png", c.FileURL("a.png"))
		assert.Empty(t, c.FileURL(""))
	})
}

func TestApp_StaticFiles(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"public/css/app.css": {Data: []byte("body{}")},
	}
	app := internal.New(internal.WithStaticFiles("/public", fsys, "public"))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public/css/app.css", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public/css/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestApp_HealthChecks(t *testing.T) {
	t.Parallel()

	app := internal.New(internal.WithHealthChecks(
		internal.WithReadinessCheck("db", func(context.Context) error { return errors.New("down") }),
	))

	w := httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
