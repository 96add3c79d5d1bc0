package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/middlewares"
	"github.com/bbyeodagung/web/pkg/password"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
	"github.com/bbyeodagung/web/views"
)

const (
	loginFailedMessage = "Failed to login."
	usersPath          = "/users"
)

// UsersHandler manages accounts and the login session.
type UsersHandler struct {
	users       UserStore
	subscribers SubscriberFinder
}

func NewUsersHandler(users UserStore, subscribers SubscriberFinder) *UsersHandler {
	return &UsersHandler{users: users, subscribers: subscribers}
}

func (h *UsersHandler) Routes(r web.Router) {
	r.Route(usersPath, func(r web.Router) {
		r.GET("/", h.index)
		r.GET("/login", h.login)
		r.POST("/login", h.authenticate)
		r.GET("/logout", h.logout)
		r.GET("/new", h.new)
		r.POST("/create", h.create)
		r.GET("/{id}", h.show)
		r.GET("/{id}/edit", h.edit, middlewares.RequireAuth())
		r.PUT("/{id}/update", h.update, middlewares.RequireAuth())
		r.DELETE("/{id}/delete", h.delete, middlewares.RequireAuth())
	})
}

func (h *UsersHandler) index(c web.Context) error {
	users, err := h.users.ListUsers(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Users(page(c, "Users"), users))
}

func (h *UsersHandler) login(c web.Context) error {
	return c.Render(http.StatusOK, views.Login(page(c, "Log in"), requests.Login{}))
}

func (h *UsersHandler) authenticate(c web.Context) error {
	var form requests.Login
	if _, err := c.Bind(&form); err != nil {
		return err
	}

	user, err := h.users.GetUserByEmail(c, form.Email)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return h.loginFailed(c)
	case err != nil:
		return err
	}
	if err := password.Compare(user.PasswordHash, form.Password); err != nil {
		if errors.Is(err, password.ErrMismatch) {
			return h.loginFailed(c)
		}
		return err
	}

	if err := c.AuthenticateSession(user.ID.String()); err != nil {
		return err
	}
	c.LogInfo("user logged in", slog.String("user_id", user.ID.String()))
	c.AddFlash("success", user.FullName()+" logged in successfully!")
	return seeOther(c, "/")
}

func (h *UsersHandler) loginFailed(c web.Context) error {
	c.AddFlash("error", loginFailedMessage)
	return seeOther(c, usersPath+"/login")
}

func (h *UsersHandler) logout(c web.Context) error {
	if err := c.DestroySession(); err != nil {
		return err
	}
	c.AddFlash("success", "You have been logged out!")
	return seeOther(c, "/")
}

func (h *UsersHandler) new(c web.Context) error {
	return c.Render(http.StatusOK, views.UserForm(page(c, "Sign up"), uuid.Nil, requests.User{}, nil))
}

func (h *UsersHandler) create(c web.Context) error {
	var form requests.User
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.UserForm(page(c, "Sign up"), uuid.Nil, form, errs))
	}

	hash, err := password.Hash(form.Password)
	if err != nil {
		return err
	}
	subscriberID, err := h.subscriberID(c, form.Email)
	if err != nil {
		return err
	}

	user, err := h.users.CreateUser(c, repository.CreateUserParams{
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		ZipCode:      form.ZipCode,
		PasswordHash: hash,
		SubscriberID: subscriberID,
	})
	if duplicate(err, &errs) {
		return invalid(c, views.UserForm(page(c, "Sign up"), uuid.Nil, form, errs))
	}
	if err != nil {
		return err
	}

	c.AddFlash("success", user.FullName()+"'s account created successfully!")
	return seeOther(c, usersPath)
}

func (h *UsersHandler) show(c web.Context) error {
	user, err := h.find(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.User(page(c, user.FullName()), user))
}

func (h *UsersHandler) edit(c web.Context) error {
	user, err := h.owned(c)
	if err != nil {
		return err
	}
	form := requests.User{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		ZipCode:   user.ZipCode,
		Update:    true,
	}
	return c.Render(http.StatusOK, views.UserForm(page(c, "Edit account"), user.ID, form, nil))
}

func (h *UsersHandler) update(c web.Context) error {
	user, err := h.owned(c)
	if err != nil {
		return err
	}

	form := requests.User{Update: true}
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.UserForm(page(c, "Edit account"), user.ID, form, errs))
	}

	var hash string
	if form.Password != "" {
		if hash, err = password.Hash(form.Password); err != nil {
			return err
		}
	}
	subscriberID, err := h.subscriberID(c, form.Email)
	if err != nil {
		return err
	}

	updated, err := h.users.UpdateUser(c, repository.UpdateUserParams{
		ID:           user.ID,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		ZipCode:      form.ZipCode,
		PasswordHash: hash,
		SubscriberID: subscriberID,
	})
	if duplicate(err, &errs) {
		return invalid(c, views.UserForm(page(c, "Edit account"), user.ID, form, errs))
	}
	if err != nil {
		return notFound(err)
	}

	c.AddFlash("success", updated.FullName()+"'s account updated successfully!")
	return seeOther(c, usersPath+"/"+updated.ID.String())
}

func (h *UsersHandler) delete(c web.Context) error {
	user, err := h.owned(c)
	if err != nil {
		return err
	}
	if err := h.users.DeleteUser(c, user.ID); err != nil {
		return notFound(err)
	}
	if err := c.DestroyUserSessions(user.ID.String()); err != nil {
		c.LogWarn("destroy user sessions", slog.String("user_id", user.ID.String()), slog.Any("error", err))
	}

	c.AddFlash("success", user.FullName()+"'s account deleted successfully!")
	return seeOther(c, usersPath)
}

func (h *UsersHandler) find(c web.Context) (repository.User, error) {
	id, err := parseID(c)
	if err != nil {
		return repository.User{}, err
	}
	user, err := h.users.GetUser(c, id)
	return user, notFound(err)
}

// owned loads the user in the path and checks it is the one logged in.
func (h *UsersHandler) owned(c web.Context) (repository.User, error) {
	user, err := h.find(c)
	if err != nil {
		return user, err
	}
	if !c.IsCurrentUser(user.ID.String()) {
		return user, web.ErrForbidden("You can only change your own account.")
	}
	return user, nil
}

// subscriberID links the account to the subscriber with the same email.
func (h *UsersHandler) subscriberID(c web.Context, email string) (*uuid.UUID, error) {
	sub, err := h.subscribers.GetSubscriberByEmail(c, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sub.ID, nil
}
