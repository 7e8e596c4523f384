package transport

import (
	"fmt"
	"net"
	"strings"

	pnet "github.com/pion/transport/v3"
)

// InterfacePolicy decides which local interfaces the connected transport may
// send from. The zero value allows any interface and leaves source address
// selection to the operating system.
type InterfacePolicy struct {
	desc  string
	match func(ifc *pnet.Interface) bool
}

// AnyInterface allows every interface.
func AnyInterface() InterfacePolicy {
	return InterfacePolicy{}
}

// NamedInterface restricts sending to the interface with the given name.
func NamedInterface(name string) InterfacePolicy {
	return InterfacePolicy{
		desc: name,
		match: func(ifc *pnet.Interface) bool {
			return ifc.Name == name
		},
	}
}

// WirelessInterfaces restricts sending to wireless interfaces, recognised by
// the Linux "wl" name prefix (wlan0, wlp2s0).
func WirelessInterfaces() InterfacePolicy {
	return InterfacePolicy{
		desc: "wireless",
		match: func(ifc *pnet.Interface) bool {
			return strings.HasPrefix(ifc.Name, "wl")
		},
	}
}

// ParsePolicy maps a configuration value to a policy:
// "" or "any" allows any interface, "wireless" selects wireless interfaces,
// anything else is taken as an interface name.
func ParsePolicy(s string) InterfacePolicy {
	switch v := strings.TrimSpace(s); strings.ToLower(v) {
	case "", "any":
		return AnyInterface()
	case "wireless":
		return WirelessInterfaces()
	default:
		return NamedInterface(v)
	}
}

// String returns the policy description.
func (p InterfacePolicy) String() string {
	if p.match == nil {
		return "any"
	}
	return p.desc
}

// IsAny reports whether the policy places no restriction.
func (p InterfacePolicy) IsAny() bool {
	return p.match == nil
}

// localAddr returns the local address to bind for this policy, or nil when
// any interface may be used.
func (p InterfacePolicy) localAddr(n pnet.Net) (*net.UDPAddr, string, error) {
	if p.match == nil {
		return nil, "", nil
	}

	ifcs, err := n.Interfaces()
	if err != nil {
		return nil, "", fmt.Errorf("list interfaces: %w", err)
	}

	for _, ifc := range ifcs {
		if ifc.Flags&net.FlagUp == 0 || ifc.Flags&net.FlagLoopback != 0 {
			continue
		}
		if !p.match(ifc) {
			continue
		}
		if ip := firstIPv4(ifc); ip != nil {
			return &net.UDPAddr{IP: ip}, ifc.Name, nil
		}
	}

	return nil, "", fmt.Errorf("%w %q", ErrNoInterface, p.String())
}

func firstIPv4(ifc *pnet.Interface) net.IP {
	addrs, err := ifc.Addrs()
	if err != nil {
		return nil
	}
	for _, addr := range addrs {
		var ip net.IP
		switch a := addr.(type) {
		case *net.IPNet:
			ip = a.IP
		case *net.IPAddr:
			ip = a.IP
		}
		if v4 := ip.To4(); v4 != nil {
			return v4
		}
	}
	return nil
}
