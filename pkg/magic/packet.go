package magic

import "bytes"

// Magic packet layout.
const (
	// Port is the well-known Wake-on-LAN UDP port (discard).
	Port = 9

	// SyncStreamSize is the number of leading 0xFF bytes.
	SyncStreamSize = 6

	// Repetitions is how many times the MAC follows the sync stream.
	Repetitions = 16

	// PacketSize is the total payload length: 6 + 16*6 = 102 bytes.
	PacketSize = SyncStreamSize + Repetitions*MACLength
)

// Packet is a complete magic packet payload.
type Packet [PacketSize]byte

// Build assembles the magic packet for mac.
// The result depends only on mac; repeated calls are byte-identical.
func Build(mac MAC) Packet {
	var p Packet
	for i := range SyncStreamSize {
		p[i] = 0xFF
	}
	for r := range Repetitions {
		copy(p[SyncStreamSize+r*MACLength:], mac[:])
	}
	return p
}

// Bytes returns a copy of the packet as a slice, ready to be written to a
// socket.
func (p Packet) Bytes() []byte {
	b := make([]byte, PacketSize)
	copy(b, p[:])
	return b
}

// MAC returns the target address encoded in the packet.
func (p Packet) MAC() MAC {
	var m MAC
	copy(m[:], p[SyncStreamSize:SyncStreamSize+MACLength])
	return m
}

var syncStream = bytes.Repeat([]byte{0xFF}, SyncStreamSize)

// Decode validates a received payload and returns the target MAC.
//
// The payload must be exactly PacketSize bytes, start with the sync stream
// and carry 16 identical copies of the address.
func Decode(b []byte) (MAC, error) {
	if len(b) != PacketSize {
		return MAC{}, ErrNotMagicPacket
	}
	if !bytes.Equal(b[:SyncStreamSize], syncStream) {
		return MAC{}, ErrNotMagicPacket
	}

	first := b[SyncStreamSize : SyncStreamSize+MACLength]
	for r := 1; r < Repetitions; r++ {
		off := SyncStreamSize + r*MACLength
		if !bytes.Equal(b[off:off+MACLength], first) {
			return MAC{}, ErrNotMagicPacket
		}
	}

	var m MAC
	copy(m[:], first)
	return m, nil
}
