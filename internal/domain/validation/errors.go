package validation

import "errors"

// ErrInvalid marks a draft that failed validation. Errors wraps it.
var ErrInvalid = errors.New("invalid player")
