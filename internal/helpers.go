package internal

import "github.com/google/uuid"

// ContextValue returns the value stored with Set under key, or T's zero
// value when it is missing or of another type.
func ContextValue[T any](c Context, key any) T {
	v, _ := c.Get(key).(T)
	return v
}

// ParamUUID parses a URL parameter as a UUID.
func ParamUUID(c Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Param(name))
}
