package config

import (
	"fmt"
	"strings"
	"time"
)

// ParseDurationField parses a duration string such as "5s". Empty means zero.
// path names the field in error messages.
func ParseDurationField(path, raw string) (time.Duration, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %q: %w", ErrInvalidDuration, path, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s: must be >= 0", ErrInvalidDuration, path)
	}
	return d, nil
}

// ParseDurationOrDefault is ParseDurationField with def substituted for zero.
func ParseDurationOrDefault(path, raw string, def time.Duration) (time.Duration, error) {
	d, err := ParseDurationField(path, raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return def, nil
	}
	return d, nil
}
