package analytics

import "errors"

var (
	// ErrNoData means the input contained no rows at all.
	ErrNoData = errors.New("no data")
	// ErrTargetNotFound means the requested entity or player is absent from the input.
	ErrTargetNotFound = errors.New("target not found")
)
