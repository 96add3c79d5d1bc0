package handlers

import (
	"log/slog"
	"net/http"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/middlewares"
	"github.com/bbyeodagung/web/views"
)

const internalErrorMessage = "Something went wrong on our side. Please try again later."

// ErrorHandler renders errors returned by controllers. An *HTTPError keeps
// its status and message; anything else, panics included, is a 500 whose
// cause is logged but not shown.
func ErrorHandler(c web.Context, err error) error {
	code := http.StatusInternalServerError
	message := internalErrorMessage
	if he := web.AsHTTPError(err); he != nil {
		code = he.Code
		message = he.Message
	}

	reqID := middlewares.GetRequestID(c)
	if code >= http.StatusInternalServerError {
		attrs := []any{
			slog.Any("error", err),
			slog.Int("status", code),
			slog.String("path", c.Request().URL.Path),
		}
		if pe, ok := middlewares.AsPanicError(err); ok && pe.Stack != nil {
			attrs = append(attrs, slog.String("stack", string(pe.Stack)))
		}
		c.LogError("request failed", attrs...)
	}

	if c.Written() {
		return nil
	}
	return c.Render(code, views.Error(page(c, http.StatusText(code)), code, message, reqID))
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(c web.Context) error {
	return ErrorHandler(c, web.ErrNotFound(notFoundMessage))
}

// MethodNotAllowed renders the 405 page for known paths.
func MethodNotAllowed(c web.Context) error {
	return ErrorHandler(c, web.ErrMethodNotAllowed("This page does not support that action."))
}
