// Package web is the public face of the BByeoDaGung site kernel.
//
// It re-exports the types and options of the internal HTTP kernel so that
// handlers and the entrypoint depend on one import.
//
// # Handlers
//
// Handlers implement [Handler] to declare routes:
//
//	type TalksHandler struct {
//	    talks TalkStore
//	}
//
//	func (h *TalksHandler) Routes(r web.Router) {
//	    r.Route("/talks", func(r web.Router) {
//	        r.GET("/", h.index)
//	        r.GET("/new", h.new)
//	        r.POST("/create", h.create)
//	        r.GET("/{id}", h.show)
//	        r.GET("/{id}/edit", h.edit)
//	        r.PUT("/{id}/update", h.update)
//	        r.DELETE("/{id}/delete", h.delete)
//	    })
//	}
//
// # Middleware
//
// Global middleware (WithMiddleware) runs before route matching, which is
// what lets MethodOverride turn a POST into a DELETE. Route middleware is
// passed per route:
//
//	r.GET("/users/{id}/edit", h.edit, middlewares.RequireAuth())
//
// # Errors
//
// Handlers return errors. The error handler set with WithErrorHandler
// renders them; an *HTTPError keeps its own status code.
//
// # Running
//
//	err := app.Run(":3000",
//	    web.Logger(log),
//	    web.ShutdownHook(redis.Shutdown(client)),
//	    web.ShutdownHook(db.Shutdown(pool)),
//	)
package web
