// Package slug turns titles into lowercase ASCII identifiers suitable for
// URLs and object-storage keys.
package slug

import (
	"crypto/rand"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

type config struct {
	separator string
	maxLength int
	suffixLen int
}

type Option func(*config)

// MaxLength caps the slug length in bytes, suffix included. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) { c.maxLength = max(n, 0) }
}

// Separator replaces the default "-".
func Separator(sep string) Option {
	return func(c *config) { c.separator = sep }
}

// WithSuffix appends n random lowercase alphanumerics.
func WithSuffix(n int) Option {
	return func(c *config) { c.suffixLen = max(n, 0) }
}

// Make folds diacritics ("Café" → "cafe"), lowercases, and joins each run
// of ASCII letters and digits with the separator. Characters outside ASCII
// after folding (Hangul, for example) act as separators, so the result can
// be empty.
func Make(s string, opts ...Option) string {
	cfg := config{separator: "-"}
	for _, opt := range opts {
		opt(&cfg)
	}

	folded, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		s,
	)
	if err != nil {
		folded = s
	}

	words := strings.FieldsFunc(strings.ToLower(folded), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})

	var suffix string
	if cfg.suffixLen > 0 {
		suffix = randomSuffix(cfg.suffixLen)
	}

	limit := cfg.maxLength
	if limit > 0 && suffix != "" {
		limit -= len(suffix)
		if len(words) > 0 {
			limit -= len(cfg.separator)
		}
		if limit <= 0 {
			return suffix[:min(len(suffix), cfg.maxLength)]
		}
	}

	out := strings.Join(words, cfg.separator)
	if limit > 0 && len(out) > limit {
		out = strings.TrimRight(out[:limit], cfg.separator)
	}

	switch {
	case suffix == "":
		return out
	case out == "":
		return suffix
	default:
		return out + cfg.separator + suffix
	}
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b)
}
