// Package binder copies request data into tagged structs.
//
// Form reads `form` tags from urlencoded and multipart bodies. Values that cannot be converted to the field type are collected as
// FieldErrors instead of aborting, so callers can report them next to
// validation failures.
package binder

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// DefaultMaxMemory bounds the in-memory part of multipart forms.
const DefaultMaxMemory = 32 << 20

var (
	ErrInvalidTarget = errors.New("binder: target must be a non-nil pointer to struct")
	ErrInvalidValue  = errors.New("binder: invalid value")
	ErrBodyTooLarge  = errors.New("binder: body too large")
)

// FieldError reports a value that could not be converted.
type FieldError struct {
	Field string
	Value string
	Kind  reflect.Kind
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: cannot use %q as %s", e.Field, e.Value, e.Kind)
}

// Message is a short user-facing description.
func (e FieldError) Message() string {
	switch e.Kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be a whole number"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.Bool:
		return "must be true or false"
	case reflect.Struct:
		return "must be a valid date and time"
	}
	return "is invalid"
}

// FieldErrors is returned when one or more values failed conversion.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, e := range fe {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) Unwrap() error { return ErrInvalidValue }

// Func binds r into v.
type Func func(r *http.Request, v any) error

// Form binds urlencoded and multipart bodies (and the query string, which
// net/http merges into r.Form).
func Form() Func {
	return func(r *http.Request, v any) error {
		if err := parseForm(r); err != nil {
			return err
		}
		return bindValues(r.Form, v)
	}
}

func parseForm(r *http.Request) error {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if ct == "multipart/form-data" {
		if r.MultipartForm != nil {
			return nil
		}
		err = r.ParseMultipartForm(DefaultMaxMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return ErrBodyTooLarge
		}
		return fmt.Errorf("binder: parse form: %w", err)
	}
	return nil
}

func checkTarget(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	return nil
}

func bindValues(values url.Values, v any) error {
	if err := checkTarget(v); err != nil {
		return err
	}
	var errs FieldErrors
	bindStruct(values, reflect.ValueOf(v).Elem(), &errs)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

var timeType = reflect.TypeFor[time.Time]()

// Layouts accepted for time.Time fields, in order. The first matches
// <input type="datetime-local">.
var timeLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func bindStruct(values url.Values, rv reflect.Value, errs *FieldErrors) {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() && !embedsStruct(field) {
			continue
		}
		fv := rv.Field(i)

		name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			if field.Type.Kind() == reflect.Struct && field.Type != timeType {
				bindStruct(values, fv, errs)
			}
			continue
		}

		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}

		if fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String {
			fv.Set(reflect.ValueOf(append([]string(nil), raw...)).Convert(fv.Type()))
			continue
		}
		if err := setValue(fv, raw[0]); err != nil {
			*errs = append(*errs, FieldError{Field: name, Value: raw[0], Kind: fv.Kind()})
		}
	}
}

func setValue(fv reflect.Value, raw string) error {
	if fv.Kind() == reflect.Pointer {
		if raw == "" {
			fv.SetZero()
			return nil
		}
		ptr := reflect.New(fv.Type().Elem())
		if err := setValue(ptr.Elem(), raw); err != nil {
			return err
		}
		fv.Set(ptr)
		return nil
	}

	if fv.Type() == timeType {
		if raw == "" {
			fv.SetZero()
			return nil
		}
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
				fv.Set(reflect.ValueOf(t))
				return nil
			}
		}
		return ErrInvalidValue
	}

	if fv.Kind() == reflect.String {
		fv.SetString(raw)
		return nil
	}

	raw = strings.TrimSpace(raw)
	switch fv.Kind() {
	case reflect.Bool:
		switch strings.ToLower(raw) {
		case "on", "yes", "1", "true":
			fv.SetBool(true)
		case "", "off", "no", "0", "false":
			fv.SetBool(false)
		default:
			return ErrInvalidValue
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			fv.SetInt(0)
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if raw == "" {
			fv.SetUint(0)
			return nil
		}
		n, err := strconv.ParseUint(raw, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			fv.SetFloat(0)
			return nil
		}
		n, err := strconv.ParseFloat(raw, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(n)
	default:
		return ErrInvalidValue
	}
	return nil
}

// embedsStruct reports an anonymous struct field. Its exported fields are
// promoted even when the struct type itself is unexported.
func embedsStruct(f reflect.StructField) bool {
	return f.Anonymous && f.Type.Kind() == reflect.Struct
}
