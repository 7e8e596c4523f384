package transport

import "strings"

// Kind identifies a transport implementation.
type Kind int

const (
	// KindUnknown is the zero value for an unknown transport.
	KindUnknown Kind = iota
	// KindConnected is the dial-then-write transport.
	KindConnected
	// KindDatagram is the raw datagram socket transport.
	KindDatagram
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindConnected:
		return "connected"
	case KindDatagram:
		return "datagram"
	default:
		return "unknown"
	}
}

// IsValid returns true if the kind is a known transport.
func (k Kind) IsValid() bool {
	return k == KindConnected || k == KindDatagram
}

// ParseKind parses "connected" or "datagram" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "connected":
		return KindConnected, nil
	case "datagram":
		return KindDatagram, nil
	default:
		return KindUnknown, ErrUnknownKind
	}
}
