package health

import "errors"

// ErrCheckTimeout marks a check cut off by the shared deadline.
var ErrCheckTimeout = errors.New("health: check timeout")
