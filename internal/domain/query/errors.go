package query

import "errors"

// Sentinel kinds for query parsing errors.
var (
	ErrUnknownColumn   = errors.New("unknown filter column")
	ErrUnknownOperator = errors.New("unknown filter operator")
)
