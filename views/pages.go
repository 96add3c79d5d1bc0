package views

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
)

func Home(p Page) templ.Component {
	return render("pages/home", p)
}

func About(p Page) templ.Component {
	return render("pages/about", p)
}

// Transportation lists trains in timetable order.
func Transportation(p Page, trains []repository.Train) templ.Component {
	return render("pages/transportation", ListData[repository.Train]{Page: p, Items: trains})
}

func Login(p Page, form requests.Login) templ.Component {
	return render("users/login", FormData[requests.Login]{
		Page: p, Form: form, Action: "/users/login", Submit: "Log in",
	})
}

// ErrorData backs the error page.
type ErrorData struct {
	Page
	Code      int
	Status    string
	Message   string
	RequestID string
}

// Error renders the shared error page for any status.
func Error(p Page, code int, message, requestID string) templ.Component {
	return layout(p, errorPage(ErrorData{
		Page:      p,
		Code:      code,
		Status:    http.StatusText(code),
		Message:   message,
		RequestID: requestID,
	}))
}
