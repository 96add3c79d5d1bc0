package id

import (
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	t.Parallel()

	t.Run("length and alphabet", func(t *testing.T) {
		t.Parallel()

		v := NewULID()
		assert.Len(t, v, ulidLen)
		require.Regexp(t, regexp.MustCompile(`^[0-9A-HJ-NP-TV-Z]+$`), v)
	})

	t.Run("unique", func(t *testing.T) {
		t.Parallel()

		seen := make(map[string]struct{}, 1000)
		for range 1000 {
			v := NewULID()
			_, dup := seen[v]
			require.False(t, dup, "duplicate ULID %s", v)
			seen[v] = struct{}{}
		}
	})

	t.Run("sortable by time", func(t *testing.T) {
		t.Parallel()

		base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		ids := make([]string, 0, 50)
		for i := range 50 {
			ids = append(ids, newULIDAt(base.Add(time.Duration(i)*time.Millisecond)))
		}
		assert.True(t, sort.StringsAreSorted(ids))
	})

	t.Run("zero time encodes as zeros", func(t *testing.T) {
		t.Parallel()

		v := newULIDAt(time.UnixMilli(0))
		assert.Equal(t, "0000000000", v[:10])
	})
}
