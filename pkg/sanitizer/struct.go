package sanitizer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrNotStructPointer is returned when SanitizeStruct gets anything other
// than a non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("sanitizer: expected pointer to struct")

// SanitizeStruct applies `sanitize` tags to the string and []string fields
// of v, recursing into nested structs.
func SanitizeStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	return sanitizeValue(rv.Elem())
}

func sanitizeValue(rv reflect.Value) error {
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() && !embedsStruct(field) {
			continue
		}
		fv := rv.Field(i)

		if field.Type.Kind() == reflect.Struct && field.Type.PkgPath() != "time" {
			if err := sanitizeValue(fv); err != nil {
				return err
			}
			continue
		}

		tag := field.Tag.Get("sanitize")
		if tag == "" || tag == "-" {
			continue
		}
		fns, err := parseTag(tag)
		if err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}

		switch {
		case fv.Kind() == reflect.String:
			fv.SetString(apply(fv.String(), fns))
		case fv.Kind() == reflect.Slice && fv.Type().Elem().Kind() == reflect.String:
			for j := range fv.Len() {
				fv.Index(j).SetString(apply(fv.Index(j).String(), fns))
			}
		}
	}
	return nil
}

func parseTag(tag string) ([]Func, error) {
	names := strings.Split(tag, ",")
	fns := make([]Func, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fn, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("sanitizer: unknown sanitizer %q", name)
		}
		fns = append(fns, fn)
	}
	return fns, nil
}

func apply(s string, fns []Func) string {
	for _, fn := range fns {
		s = fn(s)
	}
	return s
}

// embedsStruct reports an anonymous struct field. Its exported fields are
// promoted even when the struct type itself is unexported.
func embedsStruct(f reflect.StructField) bool {
	return f.Anonymous && f.Type.Kind() == reflect.Struct
}
