package transport

import (
	"errors"
	"fmt"
)

// Transport errors.
var (
	// ErrClosed is returned when an operation is attempted on a closed listener.
	ErrClosed = errors.New("transport: closed")

	// ErrAlreadyStarted is returned when Start is called on a running listener.
	ErrAlreadyStarted = errors.New("transport: already started")

	// ErrNoHandler is returned when no packet handler is configured.
	ErrNoHandler = errors.New("transport: no packet handler configured")

	// ErrInvalidTarget is returned for a destination that is not an IPv4 UDP address.
	ErrInvalidTarget = errors.New("transport: invalid target address")

	// ErrNoInterface is returned when the interface policy matches no usable
	// IPv4 interface.
	ErrNoInterface = errors.New("transport: no interface matches policy")

	// ErrShortWrite is returned when fewer bytes than the packet size were sent.
	ErrShortWrite = errors.New("transport: short write")

	// ErrUnknownKind is returned for an unrecognised transport kind.
	ErrUnknownKind = errors.New("transport: unknown transport kind")
)

// Error records which step of a transmit failed.
// Its message is the human-readable diagnostic reported to callers.
type Error struct {
	// Transport is the Name of the failing transport.
	Transport string
	// Op is the step that failed, e.g. "dial" or "send packet".
	Op string
	// Err is the underlying error, usually from the OS.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Transport, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
