package internal_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/internal"
)

func TestAsHTTPError(t *testing.T) {
	t.Parallel()

	forbidden := internal.ErrForbidden("You can only change your own account.")

	tests := []struct {
		name string
		err  error
		want *internal.HTTPError
	}{
		{"direct", forbidden, forbidden},
		{"wrapped", fmt.Errorf("update user: %w", forbidden), forbidden},
		{"wrapped twice", fmt.Errorf("a: %w", fmt.Errorf("b: %w", forbidden)), forbidden},
		{"plain error", errors.New("db down"), nil},
		{"nil", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Same(t, tt.want, internal.AsHTTPError(tt.err))
		})
	}
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	t.Run("wrap keeps cause out of message", func(t *testing.T) {
		t.Parallel()
		cause := errors.New("no rows")
		err := internal.ErrNotFound("Course not found").Wrap(cause)

		assert.Equal(t, http.StatusNotFound, err.Code)
		assert.Equal(t, "Course not found", err.Error())
		require.ErrorIs(t, err, cause)
	})

	t.Run("empty message uses status text", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Method Not Allowed", internal.ErrMethodNotAllowed("").Message)
		assert.Equal(t, http.StatusBadRequest, internal.ErrBadRequest("").Code)
	})
}
