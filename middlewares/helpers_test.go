package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bbyeodagung/web/internal"
	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/session"
)

const testSecret = "this-is-a-32-byte-or-longer-key!"

// routes adapts a plain func to internal.Handler.
type routes func(r internal.Router)

func (f routes) Routes(r internal.Router) { f(r) }

// newApp builds an App with cookies, an in-memory session store and the
// given global middleware.
func newApp(store session.Store, mw []internal.Middleware, r routes, opts ...internal.Option) *internal.App {
	base := []internal.Option{
		internal.WithCookieOptions(cookie.WithSecret(testSecret)),
		internal.WithMiddleware(mw...),
		internal.WithHandlers(r),
	}
	if store != nil {
		base = append(base, internal.WithSession(store))
	}
	return internal.New(append(base, opts...)...)
}

func serve(h http.Handler, req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
