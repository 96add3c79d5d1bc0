package repository

import (
	"context"

	"github.com/google/uuid"
)

const courseColumns = `id, title, description, max_students, cost, image_key, created_at, updated_at`

const listCourses = `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC`

func (q *Queries) ListCourses(ctx context.Context) ([]Course, error) {
	return list[Course](ctx, q.db, "list courses", listCourses)
}

const getCourse = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

func (q *Queries) GetCourse(ctx context.Context, id uuid.UUID) (Course, error) {
	return getOne[Course](ctx, q.db, "get course", getCourse, id)
}

const createCourse = `INSERT INTO courses (id, title, description, max_students, cost, image_key)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + courseColumns

type CreateCourseParams struct {
	Title       string
	Description string
	MaxStudents int
	Cost        int
	ImageKey    string
}

func (q *Queries) CreateCourse(ctx context.Context, arg CreateCourseParams) (Course, error) {
	return getOne[Course](ctx, q.db, "create course", createCourse,
		uuid.New(), arg.Title, arg.Description, arg.MaxStudents, arg.Cost, arg.ImageKey)
}

const updateCourse = `UPDATE courses SET
    title = $2,
    description = $3,
    max_students = $4,
    cost = $5,
    image_key = $6,
    updated_at = now()
WHERE id = $1
RETURNING ` + courseColumns

type UpdateCourseParams struct {
	ID          uuid.UUID
	Title       string
	Description string
	MaxStudents int
	Cost        int
	ImageKey    string
}

func (q *Queries) UpdateCourse(ctx context.Context, arg UpdateCourseParams) (Course, error) {
	return getOne[Course](ctx, q.db, "update course", updateCourse,
		arg.ID, arg.Title, arg.Description, arg.MaxStudents, arg.Cost, arg.ImageKey)
}

const deleteCourse = `DELETE FROM courses WHERE id = $1`

func (q *Queries) DeleteCourse(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, q.db, "delete course", deleteCourse, id)
}
