package middlewares

import (
	"context"
	"log/slog"

	"github.com/bbyeodagung/web/internal"
	"github.com/bbyeodagung/web/pkg/id"
	"github.com/bbyeodagung/web/pkg/logger"
)

type requestIDKey struct{}

// RequestIDHeader carries the request ID on the response.
const RequestIDHeader = "X-Request-ID"

// DefaultRequestIDHeaders lists the inbound headers that may already carry
// an ID from a proxy, most specific first.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

type requestID struct {
	generate func() string
	header   string
	inbound  []string
}

// RequestIDOption tunes RequestID.
type RequestIDOption func(*requestID)

// WithRequestIDHeaders replaces the inbound headers searched for an ID.
func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(r *requestID) { r.inbound = headers }
}

// WithRequestIDGenerator replaces the ULID generator.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(r *requestID) { r.generate = gen }
}

// WithRequestIDResponseHeader renames the response header.
func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(r *requestID) { r.header = header }
}

// RequestID tags every request with an ID, reusing one sent by an upstream
// proxy when present. Error pages print it so users can quote it.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	r := &requestID{
		generate: id.NewULID,
		header:   RequestIDHeader,
		inbound:  DefaultRequestIDHeaders,
	}
	for _, opt := range opts {
		opt(r)
	}

	sources := make([]internal.Source, 0, len(r.inbound))
	for _, h := range r.inbound {
		sources = append(sources, internal.FromHeader(h))
	}
	upstream := internal.NewExtractor(sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			reqID, ok := upstream.Extract(c)
			if !ok {
				reqID = r.generate()
			}
			c.Set(requestIDKey{}, reqID)
			c.SetHeader(r.header, reqID)
			return next(c)
		}
	}
}

// GetRequestID returns the current request's ID. It falls back to the
// response header so handlers wrapped outside RequestID still see it.
func GetRequestID(c internal.Context) string {
	if v := internal.ContextValue[string](c, requestIDKey{}); v != "" {
		return v
	}
	return c.Response().Header().Get(RequestIDHeader)
}

// RequestIDExtractor attaches request_id to log records emitted with a
// request context.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		v, _ := ctx.Value(requestIDKey{}).(string)
		if v == "" {
			return slog.Attr{}, false
		}
		return slog.String("request_id", v), true
	}
}
