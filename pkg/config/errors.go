package config

import "errors"

// Configuration errors.
var (
	// ErrInvalidLogLevel is returned for an unrecognised log level.
	ErrInvalidLogLevel = errors.New("config: invalid log level")

	// ErrInvalidDuration is returned for a malformed or negative duration.
	ErrInvalidDuration = errors.New("config: invalid duration")
)
