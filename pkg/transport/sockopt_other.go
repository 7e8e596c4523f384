//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package transport

// configureSocket is a no-op; the Go runtime already enables broadcast on
// UDP sockets and the system TTL is used.
func configureSocket(any, int) error {
	return nil
}
