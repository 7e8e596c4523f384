package transport

import (
	"context"
	"net"

	"github.com/backkem/wol/pkg/magic"
	"github.com/pion/logging"
)

// DatagramConfig configures the datagram transport.
type DatagramConfig struct {
	// Target is the broadcast destination. If nil, DefaultTarget is used.
	Target *net.UDPAddr

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Datagram is the fallback transport. It talks to the socket API directly:
// create an AF_INET datagram socket, set SO_BROADCAST, sendto the target,
// close. Any OS error is surfaced with the step that produced it.
type Datagram struct {
	target *net.UDPAddr
	log    logging.LeveledLogger
}

// NewDatagram creates a datagram transport.
func NewDatagram(config DatagramConfig) (*Datagram, error) {
	d := &Datagram{
		target: cloneUDPAddr(config.Target),
	}

	if config.LoggerFactory != nil {
		d.log = config.LoggerFactory.NewLogger("transport-datagram")
	}

	if d.target == nil {
		d.target = DefaultTarget()
	}
	if d.target.IP.To4() == nil {
		return nil, ErrInvalidTarget
	}

	return d, nil
}

// Name returns "datagram".
func (d *Datagram) Name() string {
	return KindDatagram.String()
}

// Target returns the destination address.
func (d *Datagram) Target() *net.UDPAddr {
	return cloneUDPAddr(d.target)
}

// Transmit sends p with a single sendto call.
func (d *Datagram) Transmit(ctx context.Context, p magic.Packet) error {
	if err := ctx.Err(); err != nil {
		return d.fail("create socket", err)
	}

	if d.log != nil {
		d.log.Debugf("sending %d bytes to %v", magic.PacketSize, d.target)
	}

	if op, err := d.send(ctx, p.Bytes()); err != nil {
		return d.fail(op, err)
	}

	if d.log != nil {
		d.log.Debugf("sent %d bytes to %v", magic.PacketSize, d.target)
	}
	return nil
}

func (d *Datagram) fail(op string, err error) error {
	if d.log != nil {
		d.log.Warnf("%s failed: %v", op, err)
	}
	return &Error{Transport: d.Name(), Op: op, Err: err}
}

// Verify Datagram implements Transport.
var _ Transport = (*Datagram)(nil)
