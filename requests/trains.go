package requests

import "github.com/bbyeodagung/web/pkg/validator"

type Train struct {
	LineName    string `form:"line_name"    sanitize:"trim,single,xss" validate:"required;max:100"`
	TrainNumber string `form:"train_number" sanitize:"trim,upper"      validate:"required;max:20"`
	Origin      string `form:"origin"       sanitize:"trim,single,xss" validate:"required;max:100"`
	Destination string `form:"destination"  sanitize:"trim,single,xss" validate:"required;max:100"`
	DepartsAt   string `form:"departs_at"   sanitize:"trim"            validate:"required;clock"`
	ArrivesAt   string `form:"arrives_at"   sanitize:"trim"            validate:"required;clock"`
	Fare        int    `form:"fare"                                    validate:"min:0"`
}

// Validate rejects a train that arrives where it departs.
func (t Train) Validate() error {
	return validator.Apply(validator.Rule{
		Check: func() bool { return t.Origin == "" || t.Origin != t.Destination },
		Error: validator.ValidationError{
			Field:          "destination",
			Message:        "must differ from the origin",
			TranslationKey: "validation.different",
		},
	})
}
