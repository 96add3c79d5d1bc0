package repository

import (
	"context"

	"github.com/google/uuid"
)

const userColumns = `id, first_name, last_name, email, zip_code, password_hash, subscriber_id, created_at, updated_at`

const listUsers = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`

func (q *Queries) ListUsers(ctx context.Context) ([]User, error) {
	return list[User](ctx, q.db, "list users", listUsers)
}

const getUser = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

func (q *Queries) GetUser(ctx context.Context, id uuid.UUID) (User, error) {
	return getOne[User](ctx, q.db, "get user", getUser, id)
}

const getUserByEmail = `SELECT ` + userColumns + ` FROM users WHERE email = lower($1)`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	return getOne[User](ctx, q.db, "get user by email", getUserByEmail, email)
}

const createUser = `INSERT INTO users (id, first_name, last_name, email, zip_code, password_hash, subscriber_id)
VALUES ($1, $2, $3, lower($4), $5, $6, $7)
RETURNING ` + userColumns

type CreateUserParams struct {
	FirstName    string
	LastName     string
	Email        string
	ZipCode      string
	PasswordHash string
	SubscriberID *uuid.UUID
}

func (q *Queries) CreateUser(ctx context.Context, arg CreateUserParams) (User, error) {
	return getOne[User](ctx, q.db, "create user", createUser,
		uuid.New(), arg.FirstName, arg.LastName, arg.Email, arg.ZipCode, arg.PasswordHash, arg.SubscriberID)
}

// An empty PasswordHash keeps the stored one.
const updateUser = `UPDATE users SET
    first_name = $2,
    last_name = $3,
    email = lower($4),
    zip_code = $5,
    password_hash = COALESCE(NULLIF($6, ''), password_hash),
    subscriber_id = $7,
    updated_at = now()
WHERE id = $1
RETURNING ` + userColumns

type UpdateUserParams struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	ZipCode      string
	PasswordHash string
	SubscriberID *uuid.UUID
}

func (q *Queries) UpdateUser(ctx context.Context, arg UpdateUserParams) (User, error) {
	return getOne[User](ctx, q.db, "update user", updateUser,
		arg.ID, arg.FirstName, arg.LastName, arg.Email, arg.ZipCode, arg.PasswordHash, arg.SubscriberID)
}

const deleteUser = `DELETE FROM users WHERE id = $1`

func (q *Queries) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return execOne(ctx, q.db, "delete user", deleteUser, id)
}
