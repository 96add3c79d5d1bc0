package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const talkColumns = `id, title, speaker, description, scheduled_at, location, created_at, updated_at`

const listTalks = `SELECT ` + talkColumns + ` FROM talks ORDER BY created_at DESC`

func (q *Queries) ListTalks(ctx context.Context) ([]Talk, error) {
	return list[Talk](ctx, q.db, "list talks", listTalks)
}

const getTalk = `SELECT ` + talkColumns + ` FROM talks WHERE id = $1`

func (q *Queries) GetTalk(ctx context.Context, id uuid.UUID) (Talk, error) {
	return getOne[Talk](ctx, q.db, "get talk", getTalk, id)
}

const createTalk = `INSERT INTO talks (id, title, speaker, description, scheduled_at, location)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + talkColumns

type CreateTalkParams struct {
	Title       string
	Speaker     string
	Description string
	ScheduledAt time.Time
	Location    string
}

func (q *Queries) CreateTalk(ctx context.Context, arg CreateTalkParams) (Talk, error) {
	return getOne[Talk](ctx, q.db, "create talk", createTalk,
		uuid.New(), arg.Title, arg.Speaker, arg.Description, arg.ScheduledAt, arg.Location)
}

const updateTalk = `UPDATE talks SET
    title = $2,
    speaker = $3,
    description = $4,
    scheduled_at = $5,
    location = $6,
    updated_at = now()
WHERE id = $1
RETURNING ` + talkColumns

type UpdateTalkParams struct {
	ID          uuid.UUID
	Title       string
	Speaker     string
	Description string
	ScheduledAt time.Time
	Location    string
}

func (q *Queries) UpdateTalk(ctx context.Context, arg UpdateTalkParams) (Talk, error) {
	return getOne[Talk](ctx, q.db, "update talk", updateTalk,
		arg.ID, arg.Title, arg.Speaker, arg.Description, arg.ScheduledAt, arg.Location)
}

const deleteTalk = `DELETE FROM talks WHERE id = $1`

func (q *Queries) DeleteTalk(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, q.db, "delete talk", deleteTalk, id)
}
