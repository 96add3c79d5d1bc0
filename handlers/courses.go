package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	web "github.com/bbyeodagung/web"
	"github.com/bbyeodagung/web/pkg/storage"
	"github.com/bbyeodagung/web/repository"
	"github.com/bbyeodagung/web/requests"
	"github.com/bbyeodagung/web/views"
)

const (
	coursesPath  = "/courses"
	imagePrefix  = "courses"
	imageFormKey = "image"
)

// CoursesHandler manages courses and their cover images.
type CoursesHandler struct {
	courses CourseStore
}

func NewCoursesHandler(courses CourseStore) *CoursesHandler {
	return &CoursesHandler{courses: courses}
}

func (h *CoursesHandler) Routes(r web.Router) {
	r.Route(coursesPath, func(r web.Router) {
		r.GET("/", h.index)
		r.GET("/new", h.new)
		r.POST("/create", h.create)
		r.GET("/{id}", h.show)
		r.GET("/{id}/edit", h.edit)
		r.PUT("/{id}/update", h.update)
		r.DELETE("/{id}/delete", h.delete)
	})
}

func (h *CoursesHandler) index(c web.Context) error {
	courses, err := h.courses.ListCourses(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Courses(page(c, "Courses"), courses))
}

func (h *CoursesHandler) new(c web.Context) error {
	return c.Render(http.StatusOK, views.CourseForm(page(c, "New course"), uuid.Nil, requests.Course{}, "", nil))
}

func (h *CoursesHandler) create(c web.Context) error {
	var form requests.Course
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	rerender := func() error {
		return invalid(c, views.CourseForm(page(c, "New course"), uuid.Nil, form, "", errs))
	}
	if !errs.IsEmpty() {
		return rerender()
	}

	imageKey, err := h.upload(c, form.Title, &errs)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return rerender()
	}

	course, err := h.courses.CreateCourse(c, repository.CreateCourseParams{
		Title:       form.Title,
		Description: form.Description,
		MaxStudents: form.MaxStudents,
		Cost:        form.Cost,
		ImageKey:    imageKey,
	})
	if err != nil {
		h.discard(c, imageKey)
		if duplicate(err, &errs) {
			return rerender()
		}
		return err
	}

	c.AddFlash("success", course.Title+" created successfully!")
	return seeOther(c, coursesPath)
}

func (h *CoursesHandler) show(c web.Context) error {
	course, err := h.find(c)
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, views.Course(page(c, course.Title), course))
}

func (h *CoursesHandler) edit(c web.Context) error {
	course, err := h.find(c)
	if err != nil {
		return err
	}
	form := requests.Course{
		Title:       course.Title,
		Description: course.Description,
		MaxStudents: course.MaxStudents,
		Cost:        course.Cost,
	}
	return c.Render(http.StatusOK, views.CourseForm(page(c, "Edit course"), course.ID, form, course.ImageKey, nil))
}

func (h *CoursesHandler) update(c web.Context) error {
	current, err := h.find(c)
	if err != nil {
		return err
	}

	var form requests.Course
	errs, err := c.Bind(&form)
	if err != nil {
		return err
	}
	rerender := func() error {
		return invalid(c, views.CourseForm(page(c, "Edit course"), current.ID, form, current.ImageKey, errs))
	}
	if !errs.IsEmpty() {
		return rerender()
	}

	uploaded, err := h.upload(c, form.Title, &errs)
	if err != nil {
		return err
	}
	if !errs.IsEmpty() {
		return rerender()
	}

	imageKey := current.ImageKey
	switch {
	case uploaded != "":
		imageKey = uploaded
	case form.RemoveImage:
		imageKey = ""
	}

	course, err := h.courses.UpdateCourse(c, repository.UpdateCourseParams{
		ID:          current.ID,
		Title:       form.Title,
		Description: form.Description,
		MaxStudents: form.MaxStudents,
		Cost:        form.Cost,
		ImageKey:    imageKey,
	})
	if err != nil {
		h.discard(c, uploaded)
		if duplicate(err, &errs) {
			return rerender()
		}
		return notFound(err)
	}
	if current.ImageKey != imageKey {
		h.discard(c, current.ImageKey)
	}

	c.AddFlash("success", course.Title+" updated successfully!")
	return seeOther(c, coursesPath+"/"+course.ID.String())
}

func (h *CoursesHandler) delete(c web.Context) error {
	course, err := h.find(c)
	if err != nil {
		return err
	}
	if err := h.courses.DeleteCourse(c, course.ID); err != nil {
		return notFound(err)
	}
	h.discard(c, course.ImageKey)

	c.AddFlash("success", course.Title+" deleted successfully!")
	return seeOther(c, coursesPath)
}

func (h *CoursesHandler) find(c web.Context) (repository.Course, error) {
	id, err := parseID(c)
	if err != nil {
		return repository.Course{}, err
	}
	course, err := h.courses.GetCourse(c, id)
	return course, notFound(err)
}

// upload stores the cover image, if one was sent, and returns its key.
// Problems with the file itself become form errors.
func (h *CoursesHandler) upload(c web.Context, title string, errs *web.ValidationErrors) (string, error) {
	fh := uploadedFile(c, imageFormKey)
	if fh == nil {
		return "", nil
	}

	obj, err := c.UploadImage(fh, imagePrefix, title)
	switch {
	case err == nil:
		return obj.Key, nil
	case errors.Is(err, storage.ErrNotConfigured):
		errs.Add(imageFormKey, "uploads are disabled")
	case errors.Is(err, storage.ErrFileTooLarge):
		errs.Add(imageFormKey, "is too large")
	case errors.Is(err, storage.ErrInvalidMIME):
		errs.Add(imageFormKey, "must be an image")
	case storage.IsUserError(err):
		errs.Add(imageFormKey, "is empty")
	default:
		return "", err
	}
	return "", nil
}

// discard removes an image that is no longer referenced.
func (h *CoursesHandler) discard(c web.Context, key string) {
	if key == "" {
		return
	}
	if err := c.DeleteFile(key); err != nil {
		c.LogWarn("delete course image", slog.String("key", key), slog.Any("error", err))
	}
}
