// Package magic builds and decodes Wake-on-LAN magic packets.
//
// A magic packet is a fixed 102-byte payload: a synchronization stream of six
// 0xFF bytes followed by the target's 48-bit MAC address repeated 16 times.
// The package has no I/O and no state; every function is safe for concurrent
// use.
//
// # Parsing
//
// ParseMAC is deliberately tolerant of human input. Separators ':', '-', '.'
// and whitespace are stripped before decoding, so all of the following yield
// the same address:
//
//	00:11:22:33:44:55
//	00-11-22-33-44-55
//	0011.2233.4455
//	00-11:22.33 44-55
//
// # Building
//
//	mac, err := magic.ParseMAC("00:11:22:33:44:55")
//	if err != nil {
//	    return err
//	}
//	pkt := magic.Build(mac)
//	conn.Write(pkt.Bytes())
package magic
