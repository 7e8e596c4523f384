package transport

import (
	"errors"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		kind  Kind
		str   string
		valid bool
	}{
		{KindUnknown, "unknown", false},
		{KindConnected, "connected", true},
		{KindDatagram, "datagram", true},
		{Kind(99), "unknown", false},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.str {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.str)
		}
		if got := tt.kind.IsValid(); got != tt.valid {
			t.Errorf("Kind(%d).IsValid() = %v, want %v", tt.kind, got, tt.valid)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"connected", "Connected", " datagram "} {
		k, err := ParseKind(s)
		if err != nil || !k.IsValid() {
			t.Errorf("ParseKind(%q) = %v, %v", s, k, err)
		}
	}

	if _, err := ParseKind("carrier-pigeon"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ParseKind() error = %v, want %v", err, ErrUnknownKind)
	}
}

func TestNew(t *testing.T) {
	tr, err := New(KindDatagram, Options{Target: "10.0.0.255"})
	if err != nil {
		t.Fatalf("New(datagram) error = %v", err)
	}
	if tr.Name() != "datagram" {
		t.Errorf("Name() = %q, want datagram", tr.Name())
	}

	host, _ := newVirtualLAN(t)
	tr, err = New(KindConnected, Options{Net: host})
	if err != nil {
		t.Fatalf("New(connected) error = %v", err)
	}
	if tr.Name() != "connected" {
		t.Errorf("Name() = %q, want connected", tr.Name())
	}

	if _, err := New(KindUnknown, Options{}); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New(unknown) error = %v, want %v", err, ErrUnknownKind)
	}
	if _, err := New(KindDatagram, Options{Target: "::1"}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("New(bad target) error = %v, want %v", err, ErrInvalidTarget)
	}
}
