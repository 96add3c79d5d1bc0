package views

import (
	"github.com/google/uuid"
)

// ListData backs the index pages.
type ListData[T any] struct {
	Page
	Items []T
}

// ShowData backs the detail pages.
type ShowData[T any] struct {
	Page
	Item T
}

// FormData backs the new and edit pages. Method is the verb sent through
// the _method field; empty means a plain POST.
type FormData[F any] struct {
	Page
	Form   F
	Errors FormErrors
	Action string
	Method string
	Submit string
	// ID is set when editing an existing record.
	ID uuid.UUID
	// ImageKey is the current cover image on the course form.
	ImageKey string
}

func newForm[F any](p Page, form F, errs FormErrors, base string, id uuid.UUID) FormData[F] {
	if id == uuid.Nil {
		return FormData[F]{Page: p, Form: form, Errors: errs, Action: base + "/create", Submit: "Create"}
	}
	return FormData[F]{
		Page:   p,
		Form:   form,
		Errors: errs,
		Action: base + "/" + id.String() + "/update",
		Method: "PUT",
		Submit: "Update",
		ID:     id,
	}
}
