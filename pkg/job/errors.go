package job

import (
	"encoding/json"
	"errors"
)

var (
	ErrNotConfigured     = errors.New("job: not configured")
	ErrUnknownTask       = errors.New("job: unknown task")
	ErrInvalidPayload    = errors.New("job: invalid payload")
	ErrAlreadyStarted    = errors.New("job: already started")
	ErrNotStarted        = errors.New("job: not started")
	ErrPoolRequired      = errors.New("job: pool is required")
	ErrHealthcheckFailed = errors.New("job: healthcheck failed")
	ErrMigrate           = errors.New("job: river migration failed")
)

func marshalPayload(v any) (json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrInvalidPayload, err)
	}
	return raw, nil
}
