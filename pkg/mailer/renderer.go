package mailer

import (
	"bytes"
	"cmp"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// LayoutName is the HTML shell every message is wrapped in. It receives
// .Content, .Subject and .Preview.
const LayoutName = "layout.html"

// Rendered is one message in HTML and plain text.
type Rendered struct {
	Subject string
	HTML    string
	// Text is the expanded markdown, which reads fine as plain text.
	Text string
}

type parsed struct {
	body *texttemplate.Template
	fm   FrontMatter
}

// Renderer loads "<name>.md" templates and LayoutName from fsys. Parsed
// templates are cached.
type Renderer struct {
	fsys   fs.FS
	md     goldmark.Markdown
	layout *template.Template
	cache  sync.Map
}

func NewRenderer(fsys fs.FS) (*Renderer, error) {
	layout, err := template.ParseFS(fsys, LayoutName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayoutNotFound, err)
	}
	return &Renderer{
		fsys:   fsys,
		layout: layout,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Table),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}, nil
}

// Render executes template name with data. The front matter subject may
// use template actions too; it is expanded before the layout sees it.
func (r *Renderer) Render(name string, data any) (*Rendered, error) {
	return r.render(name, data, "", "")
}

// render picks the subject from override, then front matter, then fallback.
func (r *Renderer) render(name string, data any, override, fallback string) (*Rendered, error) {
	p, err := r.load(name)
	if err != nil {
		return nil, err
	}

	subject := cmp.Or(override, p.fm.Subject, fallback)
	if subject, err = expand(subject, data); err != nil {
		return nil, fmt.Errorf("subject for %s: %w", name, err)
	}

	var md bytes.Buffer
	if err := p.body.Execute(&md, data); err != nil {
		return nil, fmt.Errorf("execute %s: %w", name, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(md.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("convert %s: %w", name, err)
	}

	var out bytes.Buffer
	if err := r.layout.Execute(&out, map[string]any{
		"Content": template.HTML(body.String()),
		"Subject": subject,
		"Preview": p.fm.Preview,
	}); err != nil {
		return nil, fmt.Errorf("layout for %s: %w", name, err)
	}

	return &Rendered{Subject: subject, HTML: out.String(), Text: md.String()}, nil
}

func expand(s string, data any) (string, error) {
	if !strings.Contains(s, "{{") {
		return s, nil
	}
	t, err := texttemplate.New("subject").Option("missingkey=error").Parse(s)
	if err != nil {
		return "", err
	}
	var buf strings.Builder
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (r *Renderer) load(name string) (*parsed, error) {
	if v, ok := r.cache.Load(name); ok {
		return v.(*parsed), nil
	}

	raw, err := fs.ReadFile(r.fsys, path.Clean(name)+".md")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	fm, body, err := SplitFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	tmpl, err := texttemplate.New(name).Option("missingkey=error").Parse(string(body))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	v, _ := r.cache.LoadOrStore(name, &parsed{body: tmpl, fm: fm})
	return v.(*parsed), nil
}
