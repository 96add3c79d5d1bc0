package logger

import (
	"context"
	"log/slog"
)

// ContextExtractor pulls one attribute out of a request context, such as
// the request id.
type ContextExtractor func(ctx context.Context) (slog.Attr, bool)

type contextHandler struct {
	slog.Handler
	extract []ContextExtractor
}

// WithContextAttrs wraps next so every record logged with a context gets
// the attributes the extractors find in it. Nil extractors are ignored.
func WithContextAttrs(next slog.Handler, extractors ...ContextExtractor) slog.Handler {
	h := &contextHandler{Handler: next}
	for _, ex := range extractors {
		if ex != nil {
			h.extract = append(h.extract, ex)
		}
	}
	return h
}

func (h *contextHandler) Handle(ctx context.Context, rec slog.Record) error {
	for _, ex := range h.extract {
		if attr, ok := ex(ctx); ok {
			rec.AddAttrs(attr)
		}
	}
	return h.Handler.Handle(ctx, rec)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), extract: h.extract}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), extract: h.extract}
}
