package magic

import (
	"errors"
	"fmt"
)

// Parse and decode errors.
var (
	// ErrInvalidLength is returned when a MAC address does not contain exactly
	// 12 characters once separators are removed.
	ErrInvalidLength = errors.New("magic: invalid MAC address length")

	// ErrInvalidHex is returned when a MAC address has the right length but
	// contains non-hexadecimal characters.
	ErrInvalidHex = errors.New("magic: invalid hex in MAC address")

	// ErrNotMagicPacket is returned by Decode when a payload is not a valid
	// magic packet.
	ErrNotMagicPacket = errors.New("magic: not a magic packet")
)

// ParseError describes a MAC address that could not be parsed.
type ParseError struct {
	// Input is the string passed to ParseMAC.
	Input string
	// Err is ErrInvalidLength or ErrInvalidHex.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Input)
}

// Unwrap returns the underlying sentinel error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
