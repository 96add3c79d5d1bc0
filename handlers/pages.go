package handlers

import (
	"net/http"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/pkg/cache"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/tasks"
	"github.com/bbyeodagung/web/views"
)

// PagesHandler serves the static pages and the transportation timetable.
type PagesHandler struct {
	trains tasks.TrainLister
	cache  cache.Cache[[]repository.Train]
}

func NewPagesHandler(trains tasks.TrainLister, c cache.Cache[[]repository.Train]) *PagesHandler {
	return &PagesHandler{trains: trains, cache: c}
}

func (h *PagesHandler) Routes(r web.Router) {
	r.GET("/", h.home)
	r.GET("/about", h.about)
	r.GET("/transportation", h.transportation)
}

func (h *PagesHandler) home(c web.Context) error {
	return c.Render(http.StatusOK, views.Home(page(c, "Home")))
}

func (h *PagesHandler) about(c web.Context) error {
	return c.Render(http.StatusOK, views.About(page(c, "About")))
}

func (h *PagesHandler) transportation(c web.Context) error {
	trains, err := tasks.LoadTransportation(c, h.trains, h.cache)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Transportation(page(c, "Transportation"), trains))
}
