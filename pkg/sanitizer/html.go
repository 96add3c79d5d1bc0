package sanitizer

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	plainText = sync.OnceValue(bluemonday.StrictPolicy)

	// richText allows what a course or talk description needs and nothing
	// that can run script.
	richText = sync.OnceValue(func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowElements("p", "br", "strong", "b", "em", "i", "ul", "ol", "li")
		p.AllowStandardURLs()
		p.AllowAttrs("href").OnElements("a")
		p.RequireNoFollowOnLinks(true)
		return p
	})
)

// StripHTML reduces s to plain text. The entities bluemonday emits are
// decoded again because html/template escapes on output.
func StripHTML(s string) string {
	return html.UnescapeString(plainText().Sanitize(s))
}

// SanitizeHTML keeps basic formatting and links and removes everything
// else, including event handler attributes and javascript: URLs.
func SanitizeHTML(s string) string {
	return richText().Sanitize(s)
}
