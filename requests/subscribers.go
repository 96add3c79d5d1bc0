package requests

import (
	"strconv"

	"github.com/bbyeodagung/web/pkg/validator"
)

type Subscriber struct {
	Name    string `form:"name"     sanitize:"trim,name"        validate:"required;min:2;max:100"`
	Email   string `form:"email"    sanitize:"trim,lower,email" validate:"required;email;max:254"`
	ZipCode string `form:"zip_code" sanitize:"trim"             validate:"required;len:5;digits"`
}

// Validate keeps zip codes in the 10000..99999 range.
func (s Subscriber) Validate() error {
	n, err := strconv.Atoi(s.ZipCode)
	if err != nil {
		return nil
	}
	return validator.Apply(
		validator.MinNum("zip_code", n, 10000),
		validator.MaxNum("zip_code", n, 99999),
	)
}
