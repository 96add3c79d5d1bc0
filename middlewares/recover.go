package middlewares

import (
	"runtime"

	"github.com/bbyeodagung/web/internal"
)

const maxStack = 4 << 10

type recoverer struct {
	stackSize int
	noStack   bool
}

// RecoverOption tunes Recover.
type RecoverOption func(*recoverer)

// WithRecoverStackSize caps the captured stack at size bytes.
func WithRecoverStackSize(size int) RecoverOption {
	return func(r *recoverer) { r.stackSize = size }
}

// WithRecoverDisablePrintStack skips stack capture entirely.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(r *recoverer) { r.noStack = true }
}

// Recover converts a handler panic into a *PanicError so the error handler
// can answer with the generic 500 page.
func Recover(opts ...RecoverOption) internal.Middleware {
	rc := &recoverer{stackSize: maxStack}
	for _, opt := range opts {
		opt(rc)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				pe := &PanicError{Value: v}
				if !rc.noStack {
					buf := make([]byte, rc.stackSize)
					pe.Stack = buf[:runtime.Stack(buf, false)]
				}
				c.LogError("panic recovered",
					"panic", v,
					"request_id", GetRequestID(c),
					"stack_bytes", len(pe.Stack),
				)
				err = pe
			}()
			return next(c)
		}
	}
}
