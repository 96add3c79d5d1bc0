package validator

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

// Rule pairs a check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// Apply runs every rule and returns ValidationErrors if any failed.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs = append(errs, r.Error)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func newError(field, key, msg string, values map[string]any) ValidationError {
	if values == nil {
		values = map[string]any{}
	}
	values["field"] = field
	return ValidationError{Field: field, Message: msg, TranslationKey: key, TranslationValues: values}
}

func RequiredString(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: newError(field, "validation.required", "is required", nil),
	}
}

func RequiredNum[T number](field string, value T) Rule {
	return Rule{
		Check: func() bool { return value != 0 },
		Error: newError(field, "validation.required", "is required", nil),
	}
}

func MinLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= n },
		Error: newError(field, "validation.min_length",
			fmt.Sprintf("must be at least %d characters long", n), map[string]any{"min": n}),
	}
}

func MaxLenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= n },
		Error: newError(field, "validation.max_length",
			fmt.Sprintf("must not exceed %d characters", n), map[string]any{"max": n}),
	}
}

func LenString(field, value string, n int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) == n },
		Error: newError(field, "validation.exact_length",
			fmt.Sprintf("must be exactly %d characters long", n), map[string]any{"length": n}),
	}
}

func MinNum[T number](field string, value, minimum T) Rule {
	return Rule{
		Check: func() bool { return value >= minimum },
		Error: newError(field, "validation.min",
			fmt.Sprintf("must be at least %v", minimum), map[string]any{"min": minimum}),
	}
}

func MaxNum[T number](field string, value, maximum T) Rule {
	return Rule{
		Check: func() bool { return value <= maximum },
		Error: newError(field, "validation.max",
			fmt.Sprintf("must not exceed %v", maximum), map[string]any{"max": maximum}),
	}
}

// Email accepts a bare address (no display name). Empty values pass; combine
// with RequiredString when the field is mandatory.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			addr, err := mail.ParseAddress(value)
			return err == nil && addr.Address == value && strings.Contains(value[strings.LastIndex(value, "@"):], ".")
		},
		Error: newError(field, "validation.email", "must be a valid email address", nil),
	}
}

// Digits accepts strings made only of ASCII digits. Empty values pass.
func Digits(field, value string) Rule {
	return Rule{
		Check: func() bool {
			for _, r := range value {
				if r < '0' || r > '9' {
					return false
				}
			}
			return true
		},
		Error: newError(field, "validation.digits", "must contain only digits", nil),
	}
}

// Clock accepts a 24h "HH:MM" time of day. Empty values pass.
func Clock(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}
			var h, m int
			if len(value) != 5 || value[2] != ':' {
				return false
			}
			if _, err := fmt.Sscanf(value, "%02d:%02d", &h, &m); err != nil {
				return false
			}
			return h >= 0 && h < 24 && m >= 0 && m < 60
		},
		Error: newError(field, "validation.clock", "must be a time like 09:30", nil),
	}
}
