package transport

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/backkem/wol/pkg/magic"
	"github.com/pion/logging"
	pnet "github.com/pion/transport/v3"
	"github.com/pion/transport/v3/stdnet"
)

// maxDatagramSize bounds a single read; anything larger than a magic packet
// is rejected by magic.Decode anyway.
const maxDatagramSize = 1500

// Received is a magic packet observed by a Listener.
type Received struct {
	// MAC is the target address carried by the packet.
	MAC magic.MAC
	// From is the sender's address.
	From net.Addr
	// At is when the packet was read.
	At time.Time
}

// Handler is called for each valid magic packet.
// Implementations should return quickly to avoid blocking the read loop.
type Handler func(r Received)

// ListenerConfig configures a Listener.
type ListenerConfig struct {
	// Conn is an optional pre-existing PacketConn to use.
	// If nil, a new connection is created on ListenAddr.
	Conn net.PacketConn

	// Net creates the connection when Conn is nil. Defaults to stdnet.
	Net pnet.Net

	// ListenAddr is the address to listen on. Defaults to ":9".
	// Ignored if Conn is provided.
	ListenAddr string

	// Handler is called for each received magic packet.
	// Required.
	Handler Handler

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Listener receives and decodes magic packets. Datagrams that are not magic
// packets are dropped.
type Listener struct {
	conn    net.PacketConn
	handler Handler
	closeCh chan struct{}
	wg      sync.WaitGroup
	log     logging.LeveledLogger

	mu      sync.RWMutex
	started bool
	closed  bool
	dropped uint64
}

// NewListener creates a listener with the given configuration.
func NewListener(config ListenerConfig) (*Listener, error) {
	if config.Handler == nil {
		return nil, ErrNoHandler
	}

	l := &Listener{
		conn:    config.Conn,
		handler: config.Handler,
		closeCh: make(chan struct{}),
	}

	if config.LoggerFactory != nil {
		l.log = config.LoggerFactory.NewLogger("transport-listener")
	}

	if l.conn == nil {
		n := config.Net
		if n == nil {
			sn, err := stdnet.NewNet()
			if err != nil {
				return nil, err
			}
			n = sn
		}

		addr := config.ListenAddr
		if addr == "" {
			addr = fmt.Sprintf(":%d", magic.Port)
		}

		conn, err := n.ListenPacket("udp4", addr)
		if err != nil {
			return nil, err
		}
		l.conn = conn
	}

	return l, nil
}

// Start begins the read loop.
func (l *Listener) Start() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.started {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}
	l.started = true
	l.mu.Unlock()

	if l.log != nil {
		l.log.Infof("listening for magic packets on %s", l.conn.LocalAddr())
	}

	l.wg.Add(1)
	go l.readLoop()

	return nil
}

// Stop closes the listener and waits for the read loop to exit.
func (l *Listener) Stop() error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	l.closed = true
	l.mu.Unlock()

	close(l.closeCh)

	// Unblock any pending read.
	l.conn.SetReadDeadline(time.Now())
	l.conn.Close()
	l.wg.Wait()

	if l.log != nil {
		l.log.Info("listener stopped")
	}
	return nil
}

// LocalAddr returns the address the listener is bound to.
func (l *Listener) LocalAddr() net.Addr {
	return l.conn.LocalAddr()
}

// Dropped returns how many datagrams were discarded as not being magic packets.
func (l *Listener) Dropped() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.dropped
}

func (l *Listener) readLoop() {
	defer l.wg.Done()

	buf := make([]byte, maxDatagramSize)

	for {
		select {
		case <-l.closeCh:
			return
		default:
		}

		n, addr, err := l.conn.ReadFrom(buf)
		if err != nil {
			select {
			case <-l.closeCh:
				return
			default:
				if errors.Is(err, net.ErrClosed) {
					return
				}
				if l.log != nil {
					l.log.Warnf("read error: %v", err)
				}
				continue
			}
		}

		mac, err := magic.Decode(buf[:n])
		if err != nil {
			l.mu.Lock()
			l.dropped++
			l.mu.Unlock()
			if l.log != nil {
				l.log.Debugf("dropping %d bytes from %v: %v", n, addr, err)
			}
			continue
		}

		if l.log != nil {
			l.log.Debugf("magic packet for %s from %v", mac, addr)
		}

		l.handler(Received{MAC: mac, From: addr, At: time.Now()})
	}
}
