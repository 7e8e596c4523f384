package transport

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/backkem/wol/pkg/magic"
)

// LimitedBroadcast is 255.255.255.255, delivered to every host on the local
// segment.
var LimitedBroadcast = net.IPv4bcast

// DefaultTarget returns the limited broadcast address on the Wake-on-LAN port.
func DefaultTarget() *net.UDPAddr {
	return &net.UDPAddr{IP: append(net.IP(nil), LimitedBroadcast.To4()...), Port: magic.Port}
}

// ParseTarget parses an IPv4 destination of the form "ip" or "ip:port".
// A missing port defaults to magic.Port and an empty string yields
// DefaultTarget.
func ParseTarget(s string) (*net.UDPAddr, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultTarget(), nil
	}

	host, port := s, strconv.Itoa(magic.Port)
	if h, p, err := net.SplitHostPort(s); err == nil {
		host, port = h, p
	}

	ip := net.ParseIP(host)
	if ip == nil || ip.To4() == nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTarget, s)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return nil, fmt.Errorf("%w: bad port in %q", ErrInvalidTarget, s)
	}

	return &net.UDPAddr{IP: ip.To4(), Port: n}, nil
}

func cloneUDPAddr(a *net.UDPAddr) *net.UDPAddr {
	if a == nil {
		return nil
	}
	c := *a
	c.IP = append(net.IP(nil), a.IP...)
	return &c
}
