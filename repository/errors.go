package repository

import (
	"errors"
	"fmt"

	"github.com/bbyeodagung/web/pkg/db"
)

var (
	ErrNotFound  = errors.New("repository: record not found")
	ErrDuplicate = errors.New("repository: duplicate value")
)

// DuplicateError names the form field whose unique constraint was violated.
type DuplicateError struct {
	Field      string
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("repository: %s already taken (%s)", e.Field, e.Constraint)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// DuplicateField returns the offending field when err is a DuplicateError.
func DuplicateField(err error) (string, bool) {
	var de *DuplicateError
	if errors.As(err, &de) {
		return de.Field, true
	}
	return "", false
}

var uniqueFields = map[string]string{
	"users_email_key":       "email",
	"subscribers_email_key": "email",
	"courses_title_key":     "title",
}

// classify maps driver errors onto the package sentinels.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if db.IsNotFound(err) {
		return ErrNotFound
	}
	if constraint, ok := db.UniqueViolation(err); ok {
		field := uniqueFields[constraint]
		if field == "" {
			field = constraint
		}
		return &DuplicateError{Field: field, Constraint: constraint}
	}
	return fmt.Errorf("repository: %s: %w", op, err)
}
