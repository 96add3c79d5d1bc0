package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbyeodagung/web/pkg/sanitizer"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"script injection", `<p>Hello</p><script>alert('xss')</script>`, "Hello"},
		{"nested tags", `<p>Hello <strong>world</strong></p>`, "Hello world"},
		{"event handler", `<img src="x" onerror="alert('xss')">`, ""},
		{"javascript url", `<a href="javascript:alert('xss')">click</a>`, "click"},
		{"ampersand survives", "Fish & Chips", "Fish & Chips"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, sanitizer.StripHTML(tt.input))
		})
	}
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	out := sanitizer.SanitizeHTML(`<p onclick="x()">Hi <a href="https://example.com">link</a></p><script>bad()</script>`)
	assert.Contains(t, out, "<p>Hi ")
	assert.Contains(t, out, `rel="nofollow"`)
	assert.NotContains(t, out, "script")
	assert.NotContains(t, out, "onclick")
}

func TestStringSanitizers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Kim Minji", sanitizer.Name("  kim   MINJI "))
	assert.Equal(t, "jon@example.com", sanitizer.Email("  Jon@Example.COM "))
	assert.Equal(t, "12345", sanitizer.Digits("12-3 45"))
	assert.Equal(t, "a b c", sanitizer.SingleLine("a\n b\t\tc"))
}

func TestSanitizeStruct(t *testing.T) {
	t.Parallel()

	type inner struct {
		Note string `sanitize:"trim,xss"`
	}
	type form struct {
		Name    string   `sanitize:"trim,name"`
		Email   string   `sanitize:"trim,lower"`
		Tags    []string `sanitize:"trim,lower"`
		Raw     string
		Count   int `sanitize:"trim"`
		Details inner
	}

	f := form{
		Name:    "  lee  seo-yeon ",
		Email:   " A@B.COM ",
		Tags:    []string{" Go ", "WEB"},
		Raw:     "  untouched ",
		Count:   3,
		Details: inner{Note: " <b>bold</b> "},
	}
	require.NoError(t, sanitizer.SanitizeStruct(&f))

	assert.Equal(t, "Lee Seo-yeon", f.Name)
	assert.Equal(t, "a@b.com", f.Email)
	assert.Equal(t, []string{"go", "web"}, f.Tags)
	assert.Equal(t, "  untouched ", f.Raw)
	assert.Equal(t, 3, f.Count)
	assert.Equal(t, "bold", f.Details.Note)
}

func TestSanitizeStruct_Embedded(t *testing.T) {
	t.Parallel()

	type contact struct {
		Email string `sanitize:"trim,lower"`
	}
	type signup struct {
		contact
		Name string `sanitize:"trim"`
	}

	f := signup{contact: contact{Email: " Kim@Example.COM "}, Name: " Kim "}
	require.NoError(t, sanitizer.SanitizeStruct(&f))
	assert.Equal(t, "kim@example.com", f.Email)
	assert.Equal(t, "Kim", f.Name)
}

func TestSanitizeStructErrors(t *testing.T) {
	t.Parallel()

	var s struct{ A string }
	require.ErrorIs(t, sanitizer.SanitizeStruct(s), sanitizer.ErrNotStructPointer)

	bad := struct {
		A string `sanitize:"nope"`
	}{}
	require.Error(t, sanitizer.SanitizeStruct(&bad))
}
