package handlers

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/pkg/cache"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
	"github.com/bbyeodagung/web/tasks"
	"github.com/bbyeodagung/web/views"
)

const trainsPath = "/trains"

// TrainsHandler manages the timetable. Every write drops the cached
// transportation page.
type TrainsHandler struct {
	trains TrainStore
	cache  cache.Cache[[]repository.Train]
}

func NewTrainsHandler(trains TrainStore, c cache.Cache[[]repository.Train]) *TrainsHandler {
	return &TrainsHandler{trains: trains, cache: c}
}

func (h *TrainsHandler) Routes(r web.Router) {
	r.Route(trainsPath, func(r web.Router) {
		r.GET("/", h.index)
		r.GET("/new", h.new)
		r.POST("/create", h.create)
		r.GET("/{id}", h.show)
		r.GET("/{id}/edit", h.edit)
		r.PUT("/{id}/update", h.update)
		r.DELETE("/{id}/delete", h.delete)
	})
}

func (h *TrainsHandler) index(c web.Context) error {
	trains, err := h.trains.ListTrains(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Trains(page(c, "Trains"), trains))
}

func (h *TrainsHandler) new(c web.Context) error {
	return c.Render(http.StatusOK, views.TrainForm(page(c, "New train"), uuid.Nil, requests.Train{}, nil))
}

func (h *TrainsHandler) create(c web.Context) error {
	var form requests.Train
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.TrainForm(page(c, "New train"), uuid.Nil, form, errs))
	}

	train, err := h.trains.CreateTrain(c, repository.CreateTrainParams{
		LineName:    form.LineName,
		TrainNumber: form.TrainNumber,
		Origin:      form.Origin,
		Destination: form.Destination,
		DepartsAt:   form.DepartsAt,
		ArrivesAt:   form.ArrivesAt,
		Fare:        form.Fare,
	})
	if err != nil {
		return err
	}
	h.invalidate(c)

	c.AddFlash("success", train.LineName+" "+train.TrainNumber+" created successfully!")
	return seeOther(c, trainsPath)
}

func (h *TrainsHandler) show(c web.Context) error {
	train, err := h.find(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Train(page(c, train.LineName+" "+train.TrainNumber), train))
}

func (h *TrainsHandler) edit(c web.Context) error {
	train, err := h.find(c)
	if err != nil {
		return err
	}
	form := requests.Train{
		LineName:    train.LineName,
		TrainNumber: train.TrainNumber,
		Origin:      train.Origin,
		Destination: train.Destination,
		DepartsAt:   train.DepartsAt,
		ArrivesAt:   train.ArrivesAt,
		Fare:        train.Fare,
	}
	return c.Render(http.StatusOK, views.TrainForm(page(c, "Edit train"), train.ID, form, nil))
}

func (h *TrainsHandler) update(c web.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var form requests.Train
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return invalid(c, views.TrainForm(page(c, "Edit train"), id, form, errs))
	}

	train, err := h.trains.UpdateTrain(c, repository.UpdateTrainParams{
		ID:          id,
		LineName:    form.LineName,
		TrainNumber: form.TrainNumber,
		Origin:      form.Origin,
		Destination: form.Destination,
		DepartsAt:   form.DepartsAt,
		ArrivesAt:   form.ArrivesAt,
		Fare:        form.Fare,
	})
	if err != nil {
		return notFound(err)
	}
	h.invalidate(c)

	c.AddFlash("success", train.LineName+" "+train.TrainNumber+" updated successfully!")
	return seeOther(c, trainsPath+"/"+train.ID.String())
}

func (h *TrainsHandler) delete(c web.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.trains.DeleteTrain(c, id); err != nil {
		return notFound(err)
	}
	h.invalidate(c)

	c.AddFlash("success", "Train deleted successfully!")
	return seeOther(c, trainsPath)
}

func (h *TrainsHandler) find(c web.Context) (repository.Train, error) {
	id, err := parseID(c)
	if err != nil {
		return repository.Train{}, err
	}
	train, err := h.trains.GetTrain(c, id)
	return train, notFound(err)
}

// invalidate drops the cached timetable. The warm task refills it.
func (h *TrainsHandler) invalidate(c web.Context) {
	if err := tasks.InvalidateTransportation(c, h.cache); err != nil {
		c.LogWarn("invalidate transportation cache", slog.Any("error", err))
	}
}
