package internal

import (
	"bufio"
	"net"
	"net/http"
	"sync"
)

// ResponseWriter records the status and body size, and runs registered
// hooks right before the header goes out. Sessions and flash cookies are
// persisted from those hooks, since headers cannot change afterwards.
type ResponseWriter struct {
	http.ResponseWriter

	mu      sync.Mutex
	pending []func()
	sent    bool
	status  int
	size    int64
}

func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w, status: http.StatusOK}
}

// OnBeforeWrite queues fn. Queued functions run once, in order; fn is
// dropped if the header has already been sent.
func (w *ResponseWriter) OnBeforeWrite(fn func()) {
	w.mu.Lock()
	if !w.sent {
		w.pending = append(w.pending, fn)
	}
	w.mu.Unlock()
}

// commit sends the header with code unless it was already sent.
func (w *ResponseWriter) commit(code int) {
	w.mu.Lock()
	if w.sent {
		w.mu.Unlock()
		return
	}
	w.sent, w.status = true, code
	run := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, fn := range run {
		fn()
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *ResponseWriter) WriteHeader(code int) { w.commit(code) }

func (w *ResponseWriter) Write(b []byte) (int, error) {
	w.commit(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)

	w.mu.Lock()
	w.size += int64(n)
	w.mu.Unlock()
	return n, err
}

func (w *ResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

func (w *ResponseWriter) Size() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// Written reports whether the header is on the wire.
func (w *ResponseWriter) Written() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sent
}

func (w *ResponseWriter) Flush() {
	w.commit(http.StatusOK)
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	return http.NewResponseController(w.ResponseWriter).Hijack()
}

func (w *ResponseWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
