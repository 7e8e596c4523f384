// Package transport delivers Wake-on-LAN magic packets over UDP broadcast.
//
// Two interchangeable implementations satisfy Transport:
//
//   - Connected dials a broadcast "connection" through a pion transport.Net,
//     optionally bound to an interface chosen by an InterfacePolicy, and
//     writes the packet once the dial has succeeded.
//   - Datagram opens a raw datagram socket, sets SO_BROADCAST and sends the
//     packet with a single sendto call.
//
// Each Transmit owns its socket exclusively and closes it on every exit
// path. Neither transport retries; retry and fallback policy belongs to the
// caller (see package broadcast).
//
// Listener is the receive side, useful for verifying that packets leave the
// host.
package transport

import (
	"context"
	"fmt"

	"github.com/backkem/wol/pkg/magic"
	"github.com/pion/logging"
	pnet "github.com/pion/transport/v3"
)

// Transport sends a magic packet as one UDP datagram.
type Transport interface {
	// Name identifies the transport in diagnostics.
	Name() string

	// Transmit sends p once. A nil error means the datagram was handed to
	// the network stack; nothing is acknowledged by the target.
	// Implementations must return promptly once ctx is done.
	Transmit(ctx context.Context, p magic.Packet) error
}

// Options holds the settings shared by all transport kinds.
type Options struct {
	// Net is the network used by the connected transport and the listener.
	// If nil, the host network stack is used.
	Net pnet.Net

	// Target is the destination "ip:port". Empty means 255.255.255.255:9.
	Target string

	// Policy restricts the connected transport to matching interfaces.
	// The zero value allows any interface.
	Policy InterfacePolicy

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// New creates a transport of the given kind.
func New(kind Kind, opts Options) (Transport, error) {
	target, err := ParseTarget(opts.Target)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindConnected:
		return NewConnected(ConnectedConfig{
			Net:           opts.Net,
			Target:        target,
			Policy:        opts.Policy,
			LoggerFactory: opts.LoggerFactory,
		})
	case KindDatagram:
		return NewDatagram(DatagramConfig{
			Target:        target,
			LoggerFactory: opts.LoggerFactory,
		})
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}
