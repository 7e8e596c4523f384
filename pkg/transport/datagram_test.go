package transport

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/backkem/wol/pkg/magic"
)

// startLoopbackListener starts a Listener on an ephemeral loopback port.
func startLoopbackListener(t *testing.T) (*Listener, <-chan Received) {
	t.Helper()

	received := make(chan Received, 4)
	l, err := NewListener(ListenerConfig{
		ListenAddr: "127.0.0.1:0",
		Handler:    func(r Received) { received <- r },
	})
	if err != nil {
		t.Fatalf("NewListener() error = %v", err)
	}
	if err := l.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() { l.Stop() })

	return l, received
}

func TestDatagramTransmit(t *testing.T) {
	l, received := startLoopbackListener(t)

	d, err := NewDatagram(DatagramConfig{Target: l.LocalAddr().(*net.UDPAddr)})
	if err != nil {
		t.Fatalf("NewDatagram() error = %v", err)
	}

	mac := magic.MustParseMAC("de:ad:be:ef:00:01")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := d.Transmit(ctx, magic.Build(mac)); err != nil {
		t.Fatalf("Transmit() error = %v", err)
	}

	select {
	case r := <-received:
		if r.MAC != mac {
			t.Errorf("received MAC = %v, want %v", r.MAC, mac)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for packet")
	}
}

func TestDatagramCancelled(t *testing.T) {
	d, err := NewDatagram(DatagramConfig{})
	if err != nil {
		t.Fatalf("NewDatagram() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = d.Transmit(ctx, magic.Build(magic.MAC{1, 2, 3, 4, 5, 6}))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Transmit() error = %v, want %v", err, context.Canceled)
	}
	var te *Error
	if !errors.As(err, &te) || te.Transport != "datagram" {
		t.Errorf("Transmit() error = %v, want datagram *Error", err)
	}
}

func TestNewDatagramDefaults(t *testing.T) {
	d, err := NewDatagram(DatagramConfig{})
	if err != nil {
		t.Fatalf("NewDatagram() error = %v", err)
	}
	if got := d.Target().String(); got != "255.255.255.255:9" {
		t.Errorf("Target() = %s, want 255.255.255.255:9", got)
	}
	if d.Name() != "datagram" {
		t.Errorf("Name() = %q, want datagram", d.Name())
	}

	_, err = NewDatagram(DatagramConfig{Target: &net.UDPAddr{IP: net.IPv6loopback, Port: 9}})
	if !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("NewDatagram(ipv6) error = %v, want %v", err, ErrInvalidTarget)
	}
}
