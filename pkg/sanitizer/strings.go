// Package sanitizer normalizes user input before validation.
//
// Struct fields opt in through a `sanitize` tag holding a comma separated list
// of sanitizer names, applied left to right:
//
//	type SubscriberForm struct {
//		Email string `form:"email" sanitize:"trim,lower,email"`
//	}
package sanitizer

import (
	"strings"
	"unicode"
)

// Func transforms a single string value.
type Func func(string) string

var registry = map[string]Func{
	"trim":   strings.TrimSpace,
	"lower":  strings.ToLower,
	"upper":  strings.ToUpper,
	"name":   Name,
	"email":  Email,
	"digits": Digits,
	"xss":    StripHTML,
	"html":   SanitizeHTML,
	"single": SingleLine,
}

// Lookup returns the sanitizer registered under name.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Name collapses inner whitespace and title-cases each word.
func Name(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// Email trims and lower-cases an address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Digits drops every non-digit rune.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// SingleLine replaces line breaks and tabs with spaces and collapses runs.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
