package session

import (
	"context"
	"time"
)

// Store persists sessions. Tokens are the lookup key for Get; IDs are stable
// across token rotation and are used for everything else.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get returns the session for token.
	// Returns ErrNotFound or ErrExpired.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves s. The token may have changed since the last save.
	Update(ctx context.Context, s *Session) error

	// Delete removes the session with the given ID.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes every session bound to userID.
	DeleteByUserID(ctx context.Context, userID string) error

	// Touch updates LastActiveAt only.
	Touch(ctx context.Context, id string, lastActiveAt time.Time) error
}
