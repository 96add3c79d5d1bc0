package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ErrNotStruct is returned when ValidateStruct gets anything but a struct or
// a pointer to one.
var ErrNotStruct = errors.New("validator: expected struct")

var timeType = reflect.TypeFor[time.Time]()

// ValidateStruct checks the `validate` tags of v's exported fields.
// Supported rules: required, email, digits, clock, len:N, min:N, max:N.
// min/max bound the length of strings and the value of numbers.
// Field names in errors come from the form tag, then the json tag.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ErrNotStruct
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return ErrNotStruct
	}

	rules, err := structRules(rv)
	if err != nil {
		return err
	}
	return Apply(rules...)
}

func structRules(rv reflect.Value) ([]Rule, error) {
	var rules []Rule
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() && !embedsStruct(field) {
			continue
		}
		fv := rv.Field(i)

		if field.Type.Kind() == reflect.Struct && field.Type != timeType && field.Tag.Get("validate") == "" {
			nested, err := structRules(fv)
			if err != nil {
				return nil, err
			}
			rules = append(rules, nested...)
			continue
		}

		tag := field.Tag.Get("validate")
		if tag == "" || tag == "-" {
			continue
		}
		name := fieldName(field)
		for _, spec := range strings.Split(tag, ";") {
			spec = strings.TrimSpace(spec)
			if spec == "" {
				continue
			}
			rule, err := buildRule(name, spec, fv)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			rules = append(rules, rule)
		}
	}
	return rules, nil
}

func buildRule(name, spec string, fv reflect.Value) (Rule, error) {
	key, arg, _ := strings.Cut(spec, ":")

	switch key {
	case "required":
		return required(name, fv), nil
	case "email":
		return Email(name, stringOf(fv)), nil
	case "digits":
		return Digits(name, stringOf(fv)), nil
	case "clock":
		return Clock(name, stringOf(fv)), nil
	}

	n, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return Rule{}, fmt.Errorf("validator: rule %q needs a numeric argument", spec)
	}

	switch {
	case key == "len" && fv.Kind() == reflect.String:
		return LenString(name, fv.String(), int(n)), nil
	case key == "min" && fv.Kind() == reflect.String:
		return MinLenString(name, fv.String(), int(n)), nil
	case key == "max" && fv.Kind() == reflect.String:
		return MaxLenString(name, fv.String(), int(n)), nil
	case key == "min" && isNumber(fv):
		return MinNum(name, numberOf(fv), n), nil
	case key == "max" && isNumber(fv):
		return MaxNum(name, numberOf(fv), n), nil
	}
	return Rule{}, fmt.Errorf("validator: unsupported rule %q for %s", spec, fv.Kind())
}

func required(name string, fv reflect.Value) Rule {
	switch {
	case fv.Kind() == reflect.String:
		return RequiredString(name, fv.String())
	case fv.Type() == timeType:
		t := fv.Interface().(time.Time)
		return Rule{
			Check: func() bool { return !t.IsZero() },
			Error: newError(name, "validation.required", "is required", nil),
		}
	case isNumber(fv):
		return RequiredNum(name, numberOf(fv))
	}
	zero := fv.IsZero()
	return Rule{
		Check: func() bool { return !zero },
		Error: newError(name, "validation.required", "is required", nil),
	}
}

func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"form", "json"} {
		if v, _, _ := strings.Cut(f.Tag.Get(tag), ","); v != "" && v != "-" {
			return v
		}
	}
	return strings.ToLower(f.Name)
}

func stringOf(fv reflect.Value) string {
	if fv.Kind() == reflect.String {
		return fv.String()
	}
	return fmt.Sprint(fv.Interface())
}

func isNumber(fv reflect.Value) bool {
	switch fv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func numberOf(fv reflect.Value) float64 {
	switch {
	case fv.CanInt():
		return float64(fv.Int())
	case fv.CanUint():
		return float64(fv.Uint())
	case fv.CanFloat():
		return fv.Float()
	}
	return 0
}

// embedsStruct reports an anonymous struct field. Its exported fields are
// promoted even when the struct type itself is unexported.
func embedsStruct(f reflect.StructField) bool {
	return f.Anonymous && f.Type.Kind() == reflect.Struct
}
