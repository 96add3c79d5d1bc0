// Package views renders the site's HTML.
//
// The site shell, flashes and error page are templ components written in Go.
// Page bodies are html/template files embedded from templates/, each parsed
// with the partials and rendered inside the shell. Every exported constructor
// returns a templ.Component so handlers render them with c.Render.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/bbyeodagung/web/pkg/cookie"
	"github.com/bbyeodagung/web/pkg/validator"
	"github.com/bbyeodagung/web/repository"
)

//go:embed templates
var templateFiles embed.FS

//go:embed public
var publicFiles embed.FS

// Public returns the static assets served under /public/.
func Public() fs.FS {
	sub, err := fs.Sub(publicFiles, "public")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page carries what the layout needs on every page.
type Page struct {
	Title string
	// Path is the request path, used to mark the active nav link.
	Path    string
	Flashes cookie.Flashes
	// LoggedIn and CurrentUser are set by the current-user middleware.
	LoggedIn    bool
	CurrentUser *repository.User
	// FileURL resolves storage keys to public URLs.
	FileURL func(key string) string
}

// FormErrors are the field errors shown next to form inputs.
type FormErrors = validator.ValidationErrors

var printer = message.NewPrinter(language.Korean)

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2006-01-02")
	},
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	// Value of <input type="datetime-local">.
	"datetimeLocal": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02T15:04")
	},
	"won": func(n int) string {
		return printer.Sprintf("%d원", n)
	},
	"number": func(n int) string {
		return printer.Sprintf("%d", n)
	},
	"fileURL": func(fn func(string) string, key string) string {
		if fn == nil || key == "" {
			return ""
		}
		return fn(key)
	},
}

var (
	parseOnce sync.Once
	pages     map[string]*template.Template
	parseErr  error
)

func parse() {
	pages = make(map[string]*template.Template)
	err := fs.WalkDir(templateFiles, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if strings.HasPrefix(p, "templates/partials/") {
			return nil
		}
		t, err := template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/partials/*.html", p)
		if err != nil {
			return fmt.Errorf("views: parse %s: %w", p, err)
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, "templates/"), ".html")
		pages[name] = t
		return nil
	})
	parseErr = err
}

// Load parses every template. Call it at startup so a broken template fails
// the boot instead of the first request.
func Load() error {
	parseOnce.Do(parse)
	return parseErr
}

// pageData is satisfied by Page and every struct embedding it.
type pageData interface {
	page() Page
}

func (p Page) page() Page { return p }

// render returns the layout around page name's content executed with data.
func render(name string, data pageData) templ.Component {
	body := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if err := Load(); err != nil {
			return err
		}
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %q", name)
		}
		return t.ExecuteTemplate(w, "content", data)
	})
	return layout(data.page(), body)
}
