package registry

import "errors"

// Registry errors.
var (
	// ErrNotFound is returned when no device matches the lookup.
	ErrNotFound = errors.New("registry: device not found")

	// ErrDuplicateName is returned when adding a device whose name is taken.
	ErrDuplicateName = errors.New("registry: device name already exists")

	// ErrEmptyName is returned when a device name is empty after trimming.
	ErrEmptyName = errors.New("registry: device name is empty")

	// ErrInvalidMAC is returned (wrapping the parse error) when a device MAC
	// cannot be parsed.
	ErrInvalidMAC = errors.New("registry: invalid MAC address")

	// ErrClosed is returned when using a closed store.
	ErrClosed = errors.New("registry: store closed")

	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("registry: unknown driver")
)
