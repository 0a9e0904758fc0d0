package model

import "errors"

// ErrUnknownValue is returned when text does not name a valid enum value or date.
var ErrUnknownValue = errors.New("unknown value")
