package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/backkem/wol/pkg/magic"
	pnet "github.com/pion/transport/v3"
	"github.com/pion/transport/v3/vnet"
)

func TestConnectedTransmit(t *testing.T) {
	tests := []struct {
		name   string
		policy InterfacePolicy
	}{
		{"any interface", AnyInterface()},
		{"named interface", NamedInterface("eth0")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, chunks := newVirtualLAN(t)

			c, err := NewConnected(ConnectedConfig{Net: host, Policy: tt.policy})
			if err != nil {
				t.Fatalf("NewConnected() error = %v", err)
			}

			mac := magic.MustParseMAC("00:11:22:33:44:55")
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			if err := c.Transmit(ctx, magic.Build(mac)); err != nil {
				t.Fatalf("Transmit() error = %v", err)
			}

			select {
			case chunk := <-chunks:
				assertBroadcastChunk(t, chunk, mac)
			case <-time.After(time.Second):
				t.Fatal("timeout waiting for broadcast chunk")
			}
		})
	}
}

func assertBroadcastChunk(t *testing.T, chunk vnet.Chunk, mac magic.MAC) {
	t.Helper()

	if got := chunk.Network(); got != "udp" {
		t.Errorf("Network() = %q, want udp", got)
	}
	if got := chunk.DestinationAddr().String(); got != "255.255.255.255:9" {
		t.Errorf("DestinationAddr() = %s, want 255.255.255.255:9", got)
	}
	src, ok := chunk.SourceAddr().(*net.UDPAddr)
	if !ok || !src.IP.Equal(net.ParseIP(virtualHostIP)) {
		t.Errorf("SourceAddr() = %v, want %s", chunk.SourceAddr(), virtualHostIP)
	}

	data := chunk.UserData()
	if len(data) != magic.PacketSize {
		t.Fatalf("payload length = %d, want %d", len(data), magic.PacketSize)
	}
	got, err := magic.Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != mac {
		t.Errorf("decoded MAC = %v, want %v", got, mac)
	}
}

func TestConnectedPolicyMismatch(t *testing.T) {
	host, chunks := newVirtualLAN(t)

	c, err := NewConnected(ConnectedConfig{Net: host, Policy: WirelessInterfaces()})
	if err != nil {
		t.Fatalf("NewConnected() error = %v", err)
	}

	err = c.Transmit(context.Background(), magic.Build(magic.MAC{1, 2, 3, 4, 5, 6}))
	if !errors.Is(err, ErrNoInterface) {
		t.Fatalf("Transmit() error = %v, want %v", err, ErrNoInterface)
	}

	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("Transmit() error type = %T, want *Error", err)
	}
	if te.Transport != "connected" || te.Op != "select interface" {
		t.Errorf("Error = {%q, %q}, want {connected, select interface}", te.Transport, te.Op)
	}

	select {
	case chunk := <-chunks:
		t.Errorf("unexpected chunk %v", chunk)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestConnectedUnroutable(t *testing.T) {
	// A host that was never attached to a router has no eth0 address, so the
	// write cannot pick a source address.
	host, err := vnet.NewNet(&vnet.NetConfig{})
	if err != nil {
		t.Fatalf("NewNet() error = %v", err)
	}

	c, err := NewConnected(ConnectedConfig{Net: host})
	if err != nil {
		t.Fatalf("NewConnected() error = %v", err)
	}

	err = c.Transmit(context.Background(), magic.Build(magic.MAC{1, 2, 3, 4, 5, 6}))
	if err == nil {
		t.Fatal("Transmit() error = nil, want failure")
	}
	var te *Error
	if !errors.As(err, &te) || te.Op != "send packet" {
		t.Errorf("Transmit() error = %v, want send packet *Error", err)
	}
}

func TestConnectedCancelled(t *testing.T) {
	host, _ := newVirtualLAN(t)

	c, err := NewConnected(ConnectedConfig{Net: host})
	if err != nil {
		t.Fatalf("NewConnected() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = c.Transmit(ctx, magic.Build(magic.MAC{1, 2, 3, 4, 5, 6}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Transmit() error = %v, want %v", err, context.Canceled)
	}
}

func TestNewConnectedDefaults(t *testing.T) {
	host, _ := newVirtualLAN(t)

	c, err := NewConnected(ConnectedConfig{Net: host})
	if err != nil {
		t.Fatalf("NewConnected() error = %v", err)
	}
	if got := c.Target().String(); got != "255.255.255.255:9" {
		t.Errorf("Target() = %s, want 255.255.255.255:9", got)
	}
	if c.Name() != "connected" {
		t.Errorf("Name() = %q, want connected", c.Name())
	}

	_, err = NewConnected(ConnectedConfig{
		Net:    host,
		Target: &net.UDPAddr{IP: net.ParseIP("ff02::1"), Port: 9},
	})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("NewConnected(ipv6) error = %v, want %v", err, ErrInvalidTarget)
	}
}

// stalledNet holds DialUDP until release is closed and reports when the
// connection it eventually returns is closed.
type stalledNet struct {
	pnet.Net
	release chan struct{}
	closed  chan struct{}
}

func (n *stalledNet) DialUDP(network string, laddr, raddr *net.UDPAddr) (pnet.UDPConn, error) {
	<-n.release
	conn, err := n.Net.DialUDP(network, laddr, raddr)
	if err != nil {
		return nil, err
	}
	return &closeNotifyConn{UDPConn: conn, closed: n.closed}, nil
}

type closeNotifyConn struct {
	pnet.UDPConn
	once   sync.Once
	closed chan struct{}
}

func (c *closeNotifyConn) Close() error {
	c.once.Do(func() { close(c.closed) })
	return c.UDPConn.Close()
}

func TestConnectedTransmit_DialStalls(t *testing.T) {
	host, _ := newVirtualLAN(t)
	n := &stalledNet{
		Net:     host,
		release: make(chan struct{}),
		closed:  make(chan struct{}),
	}

	c, err := NewConnected(ConnectedConfig{Net: n})
	if err != nil {
		t.Fatalf("NewConnected() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	errc := make(chan error, 1)
	go func() {
		errc <- c.Transmit(ctx, magic.Build(magic.MustParseMAC("00:11:22:33:44:55")))
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Transmit() error = %v, want %v", err, context.DeadlineExceeded)
		}
		var te *Error
		if !errors.As(err, &te) || te.Op != "dial" {
			t.Errorf("Transmit() error = %#v, want dial *Error", err)
		}
	case <-time.After(2 * time.Second):
		close(n.release)
		t.Fatal("Transmit() did not return after context expiry")
	}

	// Let the stalled dial finish; its connection must be closed.
	close(n.release)
	select {
	case <-n.closed:
	case <-time.After(2 * time.Second):
		t.Fatal("late connection was not closed")
	}
}
