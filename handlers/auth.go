package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bbyeodagung/web/middlewares"
	"github.com/bbyeodagung/web/repository"
)

// UserGetter is the part of UserStore the current-user middleware needs.
type UserGetter interface {
	GetUser(ctx context.Context, id uuid.UUID) (repository.User, error)
}

// LoadUser resolves session user ids for middlewares.CurrentUser.
func LoadUser(users UserGetter) middlewares.UserLoader[*repository.User] {
	return func(ctx context.Context, userID string) (*repository.User, error) {
		id, err := uuid.Parse(userID)
		if err != nil {
			return nil, middlewares.ErrUserNotFound
		}
		u, err := users.GetUser(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, middlewares.ErrUserNotFound
		}
		if err != nil {
			return nil, err
		}
		return &u, nil
	}
}
