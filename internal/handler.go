package internal

// Handler groups the routes of one resource. App calls Routes once while
// building the router:
//
//	func (h *TalksHandler) Routes(r internal.Router) {
//	    r.Route("/talks", func(r internal.Router) {
//	        r.GET("/", h.index)
//	        r.POST("/create", h.create)
//	    })
//	}
type Handler interface {
	Routes(r Router)
}

// HandlerFunc serves one request. A returned error goes to the App's
// ErrorHandler unless the response has already been written.
type HandlerFunc func(c Context) error

// Middleware decorates a HandlerFunc. It may return early without calling
// next, as RequireAuth does for anonymous visitors.
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler turns a handler error into a response.
type ErrorHandler func(Context, error) error
