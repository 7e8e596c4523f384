package transport

import (
	"context"
	"net"

	"github.com/backkem/wol/pkg/magic"
	"github.com/pion/logging"
	pnet "github.com/pion/transport/v3"
	"github.com/pion/transport/v3/stdnet"
)

// DefaultHopLimit is the TTL used by the connected transport.
const DefaultHopLimit = 3

// ConnectedConfig configures the connected transport.
type ConnectedConfig struct {
	// Net is the network to dial through. If nil, the host network stack
	// (stdnet) is used. Tests pass a vnet.Net.
	Net pnet.Net

	// Target is the broadcast destination. If nil, DefaultTarget is used.
	Target *net.UDPAddr

	// Policy restricts which interface the datagram leaves from.
	Policy InterfacePolicy

	// HopLimit is the IPv4 TTL of the packet (default: 3).
	HopLimit int

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Connected is the primary transport. It dials a UDP "connection" to the
// broadcast address, waits for the dial to complete (the ready state) and
// writes the packet. Dial failures such as refused, unreachable or missing
// source address are reported as terminal.
type Connected struct {
	net      pnet.Net
	target   *net.UDPAddr
	policy   InterfacePolicy
	hopLimit int
	log      logging.LeveledLogger
}

// NewConnected creates a connected transport.
func NewConnected(config ConnectedConfig) (*Connected, error) {
	c := &Connected{
		net:      config.Net,
		target:   cloneUDPAddr(config.Target),
		policy:   config.Policy,
		hopLimit: config.HopLimit,
	}
	if c.hopLimit <= 0 {
		c.hopLimit = DefaultHopLimit
	}

	if config.LoggerFactory != nil {
		c.log = config.LoggerFactory.NewLogger("transport-connected")
	}

	if c.target == nil {
		c.target = DefaultTarget()
	}
	if c.target.IP.To4() == nil {
		return nil, ErrInvalidTarget
	}

	if c.net == nil {
		n, err := stdnet.NewNet()
		if err != nil {
			return nil, err
		}
		c.net = n
	}

	return c, nil
}

// Name returns "connected".
func (c *Connected) Name() string {
	return KindConnected.String()
}

// Target returns the destination address.
func (c *Connected) Target() *net.UDPAddr {
	return cloneUDPAddr(c.target)
}

// Transmit dials the target and writes p.
func (c *Connected) Transmit(ctx context.Context, p magic.Packet) error {
	if err := ctx.Err(); err != nil {
		return c.fail("dial", err)
	}

	laddr, ifName, err := c.policy.localAddr(c.net)
	if err != nil {
		return c.fail("select interface", err)
	}

	if c.log != nil {
		if ifName != "" {
			c.log.Debugf("dialing %v from %s (%v)", c.target, ifName, laddr.IP)
		} else {
			c.log.Debugf("dialing %v", c.target)
		}
	}

	conn, err := c.dial(ctx, laddr)
	if err != nil {
		return c.fail("dial", err)
	}
	defer conn.Close()

	if err := configureSocket(conn, c.hopLimit); err != nil {
		return c.fail("configure socket", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		// vnet connections never block on write and ignore the deadline.
		_ = conn.SetWriteDeadline(deadline)
	}

	n, err := conn.Write(p.Bytes())
	if err != nil {
		return c.fail("send packet", err)
	}
	if n != magic.PacketSize {
		return c.fail("send packet", ErrShortWrite)
	}

	if c.log != nil {
		c.log.Debugf("sent %d bytes to %v", n, c.target)
	}
	return nil
}

// dial runs DialUDP on its own goroutine so ctx expiry is honoured even if
// the network stack stalls. A connection that arrives after ctx is done is
// closed.
func (c *Connected) dial(ctx context.Context, laddr *net.UDPAddr) (pnet.UDPConn, error) {
	type result struct {
		conn pnet.UDPConn
		err  error
	}

	done := make(chan result, 1)
	go func() {
		conn, err := c.net.DialUDP("udp4", laddr, cloneUDPAddr(c.target))
		done <- result{conn: conn, err: err}
	}()

	select {
	case r := <-done:
		return r.conn, r.err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.conn != nil {
				r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

func (c *Connected) fail(op string, err error) error {
	if c.log != nil {
		c.log.Warnf("%s failed: %v", op, err)
	}
	return &Error{Transport: c.Name(), Op: op, Err: err}
}

// Verify Connected implements Transport.
var _ Transport = (*Connected)(nil)
