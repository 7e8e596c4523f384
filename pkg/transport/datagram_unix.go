//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package transport

import (
	"context"
	"time"

	"golang.org/x/sys/unix"
)

// send performs socket/setsockopt/sendto/close. It returns the name of the
// failing step with the error.
func (d *Datagram) send(ctx context.Context, b []byte) (string, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	if err != nil {
		return "create socket", err
	}
	defer unix.Close(fd)
	unix.CloseOnExec(fd)

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
		return "set broadcast option", err
	}

	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "send packet", context.DeadlineExceeded
		}
		tv := unix.NsecToTimeval(remaining.Nanoseconds())
		if err := unix.SetsockoptTimeval(fd, unix.SOL_SOCKET, unix.SO_SNDTIMEO, &tv); err != nil {
			return "set send timeout", err
		}
	}

	sa := &unix.SockaddrInet4{Port: d.target.Port}
	copy(sa.Addr[:], d.target.IP.To4())

	if err := unix.Sendto(fd, b, 0, sa); err != nil {
		return "send packet", err
	}
	return "", nil
}
