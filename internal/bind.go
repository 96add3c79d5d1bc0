package internal

import (
	"errors"
	"fmt"

	"github.com/bbyeodagung/web/pkg/binder"
	"github.com/bbyeodagung/web/pkg/sanitizer"
	"github.com/bbyeodagung/web/pkg/validator"
)

// selfValidator is implemented by forms with rules tags cannot express,
// such as password confirmation. Validate runs after the tag rules.
type selfValidator interface {
	Validate() error
}

func (c *requestContext) Bind(v any) (ValidationErrors, error) {
	var errs ValidationErrors

	if err := binder.Form()(c.r, v); err != nil {
		var conv binder.FieldErrors
		if !errors.As(err, &conv) {
			return nil, ErrBadRequest("The request could not be read.").Wrap(fmt.Errorf("bind form: %w", err))
		}
		for _, fe := range conv {
			errs.Add(fe.Field, fe.Message())
		}
	}

	if err := sanitizer.SanitizeStruct(v); err != nil {
		return nil, fmt.Errorf("sanitize: %w", err)
	}

	rules := []func() error{func() error { return validator.ValidateStruct(v) }}
	if sv, ok := v.(selfValidator); ok {
		rules = append(rules, sv.Validate)
	}
	for _, rule := range rules {
		err := rule()
		if err == nil {
			continue
		}
		if !validator.IsValidationError(err) {
			return nil, fmt.Errorf("validate: %w", err)
		}
		// A conversion error already explains the field better.
		for _, fe := range validator.ExtractValidationErrors(err) {
			if !errs.Has(fe.Field) {
				errs = append(errs, fe)
			}
		}
	}

	if errs.IsEmpty() {
		return nil, nil
	}
	return errs, nil
}
