package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/pkg/job"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
	"github.com/bbyeodagung/web/tasks"
	"github.com/bbyeodagung/web/views"
)

const subscribersPath = "/subscribers"

// SubscribersHandler manages the newsletter list. New subscribers get a
// welcome email from a background job.
type SubscribersHandler struct {
	subscribers SubscriberStore
}

func NewSubscribersHandler(subscribers SubscriberStore) *SubscribersHandler {
	return &SubscribersHandler{subscribers: subscribers}
}

func (h *SubscribersHandler) Routes(r web.Router) {
	r.Route(subscribersPath, func(r web.Router) {
		r.GET("/", h.index)
		r.GET("/new", h.new)
		r.POST("/create", h.create)
		r.GET("/{id}", h.show)
		r.GET("/{id}/edit", h.edit)
		r.PUT("/{id}/update", h.update)
		r.DELETE("/{id}/delete", h.delete)
	})
}

func (h *SubscribersHandler) index(c web.Context) error {
	subs, err := h.subscribers.ListSubscribers(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Subscribers(page(c, "Subscribers"), subs))
}

func (h *SubscribersHandler) new(c web.Context) error {
	return c.Render(http.StatusOK, views.SubscriberForm(page(c, "Subscribe"), uuid.Nil, requests.Subscriber{}, nil))
}

func (h *SubscribersHandler) create(c web.Context) error {
	var form requests.Subscriber
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.SubscriberForm(page(c, "Subscribe"), uuid.Nil, form, errs))
	}

	sub, err := h.subscribers.CreateSubscriber(c, repository.CreateSubscriberParams{
		Name:    form.Name,
		Email:   form.Email,
		ZipCode: form.ZipCode,
	})
	if duplicate(err, &errs) {
		return invalid(c, views.SubscriberForm(page(c, "Subscribe"), uuid.Nil, form, errs))
	}
	if err != nil {
		return err
	}

	// Enqueue failures do not undo the subscription.
	payload := tasks.WelcomeEmailPayload{SubscriberID: sub.ID, Name: sub.Name, Email: sub.Email}
	err = c.Enqueue(tasks.SendWelcomeEmailName, payload,
		job.Unique(sub.ID.String(), 24*time.Hour),
		job.InQueue(tasks.EmailQueue),
		job.MaxAttempts(5),
		job.Tags("email"),
	)
	switch {
	case errors.Is(err, job.ErrNotConfigured):
		c.LogDebug("welcome email skipped, jobs disabled", slog.String("subscriber_id", sub.ID.String()))
	case err != nil:
		c.LogError("enqueue welcome email", slog.String("subscriber_id", sub.ID.String()), slog.Any("error", err))
	}

	c.AddFlash("success", sub.Name+" subscribed successfully!")
	return seeOther(c, subscribersPath)
}

func (h *SubscribersHandler) show(c web.Context) error {
	sub, err := h.find(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Subscriber(page(c, sub.Name), sub))
}

func (h *SubscribersHandler) edit(c web.Context) error {
	sub, err := h.find(c)
	if err != nil {
		return err
	}
	form := requests.Subscriber{Name: sub.Name, Email: sub.Email, ZipCode: sub.ZipCode}
	return c.Render(http.StatusOK, views.SubscriberForm(page(c, "Edit subscriber"), sub.ID, form, nil))
}

func (h *SubscribersHandler) update(c web.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form requests.Subscriber
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.SubscriberForm(page(c, "Edit subscriber"), id, form, errs))
	}

	sub, err := h.subscribers.UpdateSubscriber(c, repository.UpdateSubscriberParams{
		ID:      id,
		Name:    form.Name,
		Email:   form.Email,
		ZipCode: form.ZipCode,
	})
	if duplicate(err, &errs) {
		return invalid(c, views.SubscriberForm(page(c, "Edit subscriber"), id, form, errs))
	}
	if err != nil {
		return notFound(err)
	}

	c.AddFlash("success", sub.Name+" updated successfully!")
	return seeOther(c, subscribersPath+"/"+sub.ID.String())
}

func (h *SubscribersHandler) delete(c web.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.subscribers.DeleteSubscriber(c, id); err != nil {
		return notFound(err)
	}
	c.AddFlash("success", "Subscriber deleted successfully!")
	return seeOther(c, subscribersPath)
}

func (h *SubscribersHandler) find(c web.Context) (repository.Subscriber, error) {
	id, err := parseID(c)
	if err != nil {
		return repository.Subscriber{}, err
	}
	sub, err := h.subscribers.GetSubscriber(c, id)
	return sub, notFound(err)
}
