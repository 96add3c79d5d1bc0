// Package handlers holds the controllers of the site, one per resource.
package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/middlewares"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/views"
)

const notFoundMessage = "The page you are looking for does not exist."

// page builds the layout data every view needs.
func page(c web.Context, title string) views.Page {
	p := views.Page{
		Title:    title,
		Path:     c.Request().URL.Path,
		Flashes:  c.Flashes(),
		LoggedIn: c.IsAuthenticated(),
		FileURL:  c.FileURL,
	}
	if u, ok := middlewares.GetCurrentUser[*repository.User](c); ok {
		p.CurrentUser = u
	}
	return p
}

// parseID reads the {id} parameter. A malformed id is a missing record.
func parseID(c web.Context) (uuid.UUID, error) {
	id, err := web.ParamUUID(c, "id")
	if err != nil {
		return uuid.Nil, web.ErrNotFound(notFoundMessage)
	}
	return id, nil
}

// notFound turns repository.ErrNotFound into a 404.
func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return web.ErrNotFound(notFoundMessage)
	}
	return err
}

// duplicate records a unique violation as a form error. It reports false
// for any other error.
func duplicate(err error, errs *web.ValidationErrors) bool {
	field, ok := repository.DuplicateField(err)
	if !ok {
		return false
	}
	errs.Add(field, "is already taken")
	return true
}

func invalid(c web.Context, view web.Component) error {
	return c.Render(http.StatusUnprocessableEntity, view)
}

func seeOther(c web.Context, url string) error {
	return c.Redirect(http.StatusSeeOther, url)
}

// uploadedFile returns the non-empty file sent in field, or nil.
func uploadedFile(c web.Context, field string) *multipart.FileHeader {
	f, fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	_ = f.Close()
	if fh.Size == 0 {
		return nil
	}
	return fh
}
