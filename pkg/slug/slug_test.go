package slug_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bbyeodagung/web/pkg/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		opts  []slug.Option
		want  string
	}{
		{"simple", "Hello, World!", nil, "hello-world"},
		{"diacritics", "Café Crème Brûlée", nil, "cafe-creme-brulee"},
		{"collapses punctuation", "  Kimchi -- & -- Rice  ", nil, "kimchi-rice"},
		{"digits kept", "Course 101: Basics", nil, "course-101-basics"},
		{"hangul only", "한국 요리", nil, ""},
		{"mixed hangul", "한식 Cooking 2024", nil, "cooking-2024"},
		{"separator", "Product Name", []slug.Option{slug.Separator("_")}, "product_name"},
		{"max length trims trailing separator", "very long title here", []slug.Option{slug.MaxLength(10)}, "very-long"},
		{"empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, slug.Make(tt.input, tt.opts...))
		})
	}
}

func TestMake_WithSuffix(t *testing.T) {
	t.Parallel()

	s := slug.Make("Korean Cooking", slug.WithSuffix(6))
	assert.Regexp(t, regexp.MustCompile(`^korean-cooking-[a-z0-9]{6}$`), s)
	assert.NotEqual(t, s, slug.Make("Korean Cooking", slug.WithSuffix(6)))

	assert.Regexp(t, `^[a-z0-9]{6}$`, slug.Make("한국", slug.WithSuffix(6)))

	limited := slug.Make("a very long course title", slug.WithSuffix(4), slug.MaxLength(12))
	assert.LessOrEqual(t, len(limited), 12)
	assert.True(t, strings.HasPrefix(limited, "a-very"))

	assert.Len(t, slug.Make("title", slug.WithSuffix(8), slug.MaxLength(5)), 5)
}
