package handlers

import (
	"net/http"

	"github.com/google/uuid"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
	"github.com/bbyeodagung/web/views"
)

const talksPath = "/talks"

type TalksHandler struct {
	talks TalkStore
}

func NewTalksHandler(talks TalkStore) *TalksHandler {
	return &TalksHandler{talks: talks}
}

func (h *TalksHandler) Routes(r web.Router) {
	r.Route(talksPath, func(r web.Router) {
		r.GET("/", h.index)
		r.GET("/new", h.new)
		r.POST("/create", h.create)
		r.GET("/{id}", h.show)
		r.GET("/{id}/edit", h.edit)
		r.PUT("/{id}/update", h.update)
		r.DELETE("/{id}/delete", h.delete)
	})
}

func (h *TalksHandler) index(c web.Context) error {
	talks, err := h.talks.ListTalks(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Talks(page(c, "Talks"), talks))
}

func (h *TalksHandler) new(c web.Context) error {
	return c.Render(http.StatusOK, views.TalkForm(page(c, "New talk"), uuid.Nil, requests.Talk{}, nil))
}

func (h *TalksHandler) create(c web.Context) error {
	var form requests.Talk
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.TalkForm(page(c, "New talk"), uuid.Nil, form, errs))
	}

	talk, err := h.talks.CreateTalk(c, repository.CreateTalkParams{
		Title:       form.Title,
		Speaker:     form.Speaker,
		Description: form.Description,
		ScheduledAt: form.ScheduledAt,
		Location:    form.Location,
	})
	if err != nil {
		return err
	}

	c.AddFlash("success", talk.Title+" created successfully!")
	return seeOther(c, talksPath)
}

func (h *TalksHandler) show(c web.Context) error {
	talk, err := h.find(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Talk(page(c, talk.Title), talk))
}

func (h *TalksHandler) edit(c web.Context) error {
	talk, err := h.find(c)
	if err != nil {
		return err
	}
	form := requests.Talk{
		Title:       talk.Title,
		Speaker:     talk.Speaker,
		Description: talk.Description,
		ScheduledAt: talk.ScheduledAt,
		Location:    talk.Location,
	}
	return c.Render(http.StatusOK, views.TalkForm(page(c, "Edit talk"), talk.ID, form, nil))
}

func (h *TalksHandler) update(c web.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form requests.Talk
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.TalkForm(page(c, "Edit talk"), id, form, errs))
	}

	talk, err := h.talks.UpdateTalk(c, repository.UpdateTalkParams{
		ID:          id,
		Title:       form.Title,
		Speaker:     form.Speaker,
		Description: form.Description,
		ScheduledAt: form.ScheduledAt,
		Location:    form.Location,
	})
	if err != nil {
		return notFound(err)
	}

	c.AddFlash("success", talk.Title+" updated successfully!")
	return seeOther(c, talksPath+"/"+talk.ID.String())
}

func (h *TalksHandler) delete(c web.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.talks.DeleteTalk(c, id); err != nil {
		return notFound(err)
	}
	c.AddFlash("success", "Talk deleted successfully!")
	return seeOther(c, talksPath)
}

func (h *TalksHandler) find(c web.Context) (repository.Talk, error) {
	id, err := parseID(c)
	if err != nil {
		return repository.Talk{}, err
	}
	talk, err := h.talks.GetTalk(c, id)
	return talk, notFound(err)
}
