//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package transport

import (
	"context"
	"net"
)

// send falls back to the net package where golang.org/x/sys/unix is not
// available. The runtime enables SO_BROADCAST on UDP sockets.
func (d *Datagram) send(ctx context.Context, b []byte) (string, error) {
	conn, err := net.ListenUDP("udp4", nil)
	if err != nil {
		return "create socket", err
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetWriteDeadline(deadline); err != nil {
			return "set send timeout", err
		}
	}

	n, err := conn.WriteToUDP(b, d.target)
	if err != nil {
		return "send packet", err
	}
	if n != len(b) {
		return "send packet", ErrShortWrite
	}
	return "", nil
}
