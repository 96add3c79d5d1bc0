package views

import (
	"context"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/bbyeodagung/web/pkg/cookie"
)

// htmlWriter keeps the first write error so components read top to bottom.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (h *htmlWriter) raw(s string) {
	if h.err == nil {
		_, h.err = io.WriteString(h.w, s)
	}
}

func (h *htmlWriter) text(s string) {
	h.raw(templ.EscapeString(s))
}

func (h *htmlWriter) href(u templ.SafeURL) {
	h.raw(` href="`)
	h.text(string(u))
	h.raw(`"`)
}

func (h *htmlWriter) render(ctx context.Context, c templ.Component) {
	if h.err == nil {
		h.err = c.Render(ctx, h.w)
	}
}

var navLinks = []struct{ path, label string }{
	{"/courses", "Courses"},
	{"/talks", "Talks"},
	{"/trains", "Trains"},
	{"/transportation", "Transportation"},
	{"/subscribers", "Subscribers"},
	{"/users", "Users"},
	{"/about", "About"},
}

// layout wraps content in the site shell: head, nav, account links and
// flash messages.
func layout(p Page, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<!DOCTYPE html><html lang="ko"><head><meta charset="utf-8">`)
		h.raw(`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		if p.Title != "" {
			h.text(p.Title)
			h.raw(" | ")
		}
		h.raw(`BByeoDaGung</title><link rel="stylesheet" href="/public/css/app.css"></head>`)

		h.raw(`<body><header class="site-header"><a class="brand" href="/">BByeoDaGung</a><nav>`)
		for _, l := range navLinks {
			h.raw("<a")
			h.href(templ.URL(l.path))
			if isActive(p.Path, l.path) {
				h.raw(` class="active"`)
			}
			h.raw(">")
			h.text(l.label)
			h.raw("</a>")
		}
		h.raw(`</nav><div class="account">`)
		if p.LoggedIn {
			if u := p.CurrentUser; u != nil {
				h.raw("<a")
				h.href(templ.URL("/users/" + u.ID.String()))
				h.raw(">")
				h.text(u.FullName())
				h.raw("</a>")
			}
			h.raw(`<a href="/users/logout">Log out</a>`)
		} else {
			h.raw(`<a href="/users/login">Log in</a><a href="/users/new">Sign up</a>`)
		}
		h.raw(`</div></header>`)

		h.render(ctx, flashes(p.Flashes))

		h.raw("<main>")
		h.render(ctx, content)
		h.raw(`</main><footer class="site-footer"><p>&copy; BByeoDaGung</p></footer></body></html>`)
		return h.err
	})
}

// flashes renders queued messages grouped by kind, kinds in name order.
func flashes(f cookie.Flashes) templ.Component {
	if len(f) == 0 {
		return templ.NopComponent
	}
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="flashes">`)
		for _, kind := range slices.Sorted(maps.Keys(f)) {
			for _, msg := range f[kind] {
				h.raw(`<div class="flash flash-`)
				h.text(kind)
				h.raw(`" role="alert">`)
				h.text(msg)
				h.raw("</div>")
			}
		}
		h.raw("</section>")
		return h.err
	})
}

func errorPage(d ErrorData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<section class="error-page"><h1>`)
		h.text(strconv.Itoa(d.Code) + " " + d.Status)
		h.raw("</h1><p>")
		h.text(d.Message)
		h.raw("</p>")
		if d.RequestID != "" {
			h.raw(`<p class="muted">Request ID: <code>`)
			h.text(d.RequestID)
			h.raw("</code></p>")
		}
		h.raw(`<p><a href="/">Back to the home page</a></p></section>`)
		return h.err
	})
}

func isActive(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
