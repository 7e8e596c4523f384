package magic

import (
	"encoding/hex"
	"strings"
)

// MACLength is the size of a MAC-48 address in bytes.
const MACLength = 6

// MAC is a 48-bit hardware address.
// It is a comparable value type and can be used as a map key.
type MAC [MACLength]byte

// ParseMAC parses a human-entered MAC address.
//
// Every ':', '-', '.' and whitespace character is removed first. The
// remainder must be exactly 12 characters (ErrInvalidLength) and every pair
// must decode as a hex byte (ErrInvalidHex). Both upper and lower case digits
// are accepted.
func ParseMAC(s string) (MAC, error) {
	clean := stripSeparators(s)
	if len(clean) != 2*MACLength {
		return MAC{}, &ParseError{Input: s, Err: ErrInvalidLength}
	}

	var mac MAC
	if _, err := hex.Decode(mac[:], []byte(clean)); err != nil {
		return MAC{}, &ParseError{Input: s, Err: ErrInvalidHex}
	}
	return mac, nil
}

// MustParseMAC is like ParseMAC but panics on error.
// Intended for tests and package-level variables.
func MustParseMAC(s string) MAC {
	mac, err := ParseMAC(s)
	if err != nil {
		panic(err)
	}
	return mac
}

// String returns the lowercase colon-separated form, e.g. "00:11:22:aa:bb:cc".
func (m MAC) String() string {
	return m.Format(":")
}

// Format returns the address as lowercase hex pairs joined by sep.
// An empty sep yields the bare 12-digit form.
func (m MAC) Format(sep string) string {
	var sb strings.Builder
	sb.Grow(2*MACLength + (MACLength-1)*len(sep))
	for i, b := range m {
		if i > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(hex.EncodeToString([]byte{b}))
	}
	return sb.String()
}

// IsZero reports whether m is 00:00:00:00:00:00.
func (m MAC) IsZero() bool {
	return m == MAC{}
}

// stripSeparators removes separator and whitespace characters.
// The result is measured in bytes, so any multi-byte rune left behind
// fails the length or hex check rather than being silently accepted.
func stripSeparators(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ':', '-', '.', ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
