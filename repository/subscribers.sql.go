package repository

import (
	"context"

	"github.com/google/uuid"
)

const subscriberColumns = `id, name, email, zip_code, created_at, updated_at`

const listSubscribers = `SELECT ` + subscriberColumns + ` FROM subscribers ORDER BY created_at DESC`

func (q *Queries) ListSubscribers(ctx context.Context) ([]Subscriber, error) {
	return list[Subscriber](ctx, q.db, "list subscribers", listSubscribers)
}

const getSubscriber = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE id = $1`

func (q *Queries) GetSubscriber(ctx context.Context, id uuid.UUID) (Subscriber, error) {
	return getOne[Subscriber](ctx, q.db, "get subscriber", getSubscriber, id)
}

const getSubscriberByEmail = `SELECT ` + subscriberColumns + ` FROM subscribers WHERE email = lower($1)`

func (q *Queries) GetSubscriberByEmail(ctx context.Context, email string) (Subscriber, error) {
	return getOne[Subscriber](ctx, q.db, "get subscriber by email", getSubscriberByEmail, email)
}

const createSubscriber = `INSERT INTO subscribers (id, name, email, zip_code)
VALUES ($1, $2, lower($3), $4)
RETURNING ` + subscriberColumns

type CreateSubscriberParams struct {
	Name    string
	Email   string
	ZipCode string
}

func (q *Queries) CreateSubscriber(ctx context.Context, arg CreateSubscriberParams) (Subscriber, error) {
	return getOne[Subscriber](ctx, q.db, "create subscriber", createSubscriber,
		uuid.New(), arg.Name, arg.Email, arg.ZipCode)
}

const updateSubscriber = `UPDATE subscribers SET
    name = $2,
    email = lower($3),
    zip_code = $4,
    updated_at = now()
WHERE id = $1
RETURNING ` + subscriberColumns

type UpdateSubscriberParams struct {
	ID      uuid.UUID
	Name    string
	Email   string
	ZipCode string
}

func (q *Queries) UpdateSubscriber(ctx context.Context, arg UpdateSubscriberParams) (Subscriber, error) {
	return getOne[Subscriber](ctx, q.db, "update subscriber", updateSubscriber,
		arg.ID, arg.Name, arg.Email, arg.ZipCode)
}

const deleteSubscriber = `DELETE FROM subscribers WHERE id = $1`

func (q *Queries) DeleteSubscriber(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, q.db, "delete subscriber", deleteSubscriber, id)
}
