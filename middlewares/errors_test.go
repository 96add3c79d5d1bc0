package middlewares_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/middlewares"
)

func TestPanicError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "something went wrong", "panic: something went wrong"},
		{"int", 42, "panic: 42"},
		{"nil", nil, "panic: <nil>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := &middlewares.PanicError{Value: tt.value}
			require.Equal(t, tt.want, err.Error())
		})
	}
}

func TestAsPanicError(t *testing.T) {
	t.Parallel()

	pe := &middlewares.PanicError{Value: "boom"}
	wrapped := fmt.Errorf("handler: %w", pe)

	require.True(t, middlewares.IsPanicError(wrapped))
	got, ok := middlewares.AsPanicError(wrapped)
	require.True(t, ok)
	require.Same(t, pe, got)

	require.False(t, middlewares.IsPanicError(errors.New("plain")))
	_, ok = middlewares.AsPanicError(nil)
	require.False(t, ok)
}
