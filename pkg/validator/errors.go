// Package validator checks bound request structs.
//
// Rules are either built in code:
//
//	err := validator.Apply(
//		validator.RequiredString("email", form.Email),
//		validator.MinLenString("password", form.Password, 8),
//	)
//
// or declared with a `validate` tag and checked by ValidateStruct:
//
//	Email string `form:"email" validate:"required;email"`
//	Zip   string `form:"zip_code" validate:"required;len:5;digits"`
package validator

import (
	"errors"
	"strings"
)

// ErrValidation marks every error returned by Apply and ValidateStruct.
var ErrValidation = errors.New("validation failed")

// ValidationError describes one failed rule for one field. TranslationKey and
// TranslationValues identify the message independently of its English text.
type ValidationError struct {
	TranslationValues map[string]any `json:"-"`
	Field             string         `json:"field"`
	Message           string         `json:"message"`
	TranslationKey    string         `json:"-"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors is the list of failures for a single struct or rule set.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	parts := make([]string, len(ve))
	for i, e := range ve {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func (ve ValidationErrors) Unwrap() error { return ErrValidation }

func (ve ValidationErrors) IsEmpty() bool { return len(ve) == 0 }

// Has reports whether field failed any rule.
func (ve ValidationErrors) Has(field string) bool {
	for _, e := range ve {
		if e.Field == field {
			return true
		}
	}
	return false
}

// GetErrors returns the failures recorded for field.
func (ve ValidationErrors) GetErrors(field string) []ValidationError {
	var out []ValidationError
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e)
		}
	}
	return out
}

// First returns the first message recorded for field, or "".
func (ve ValidationErrors) First(field string) string {
	for _, e := range ve {
		if e.Field == field {
			return e.Message
		}
	}
	return ""
}

// Messages returns every message prefixed with its field name.
func (ve ValidationErrors) Messages() []string {
	out := make([]string, len(ve))
	for i, e := range ve {
		out[i] = e.Field + " " + e.Message
	}
	return out
}

// Add records a custom failure, e.g. a uniqueness violation found in storage.
func (ve *ValidationErrors) Add(field, message string) {
	*ve = append(*ve, ValidationError{Field: field, Message: message, TranslationKey: "validation.custom"})
}

// IsValidationError reports whether err carries ValidationErrors.
func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// ExtractValidationErrors returns the ValidationErrors inside err, or nil.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}
