package broadcast

import "errors"

// Broadcast errors.
var (
	// ErrTimeout is returned (wrapped) when an attempt or the whole send
	// exceeds its time bound.
	ErrTimeout = errors.New("broadcast: timed out")

	// ErrInvalidConfig is returned when Config validation fails.
	ErrInvalidConfig = errors.New("broadcast: invalid configuration")
)
