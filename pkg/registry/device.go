package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/backkem/wol/pkg/magic"
)

// Device is a named Wake-on-LAN target.
type Device struct {
	ID   int64
	Name string
	MAC  magic.MAC
}

// String returns "name (mac)".
func (d Device) String() string {
	return fmt.Sprintf("%s (%s)", d.Name, d.MAC)
}

// Store persists devices. Implementations are safe for concurrent use.
type Store interface {
	// List returns all devices sorted by name.
	List(ctx context.Context) ([]Device, error)

	// Get returns the device with the given name.
	Get(ctx context.Context, name string) (Device, error)

	// Add registers a new device and returns it with its assigned ID.
	Add(ctx context.Context, name, mac string) (Device, error)

	// Delete removes the device with the given ID.
	Delete(ctx context.Context, id int64) error

	// Close releases the store's resources.
	Close() error
}

// normalize validates a name/MAC pair for Add.
func normalize(name, mac string) (string, magic.MAC, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", magic.MAC{}, ErrEmptyName
	}
	m, err := magic.ParseMAC(mac)
	if err != nil {
		return "", magic.MAC{}, fmt.Errorf("%w: %w", ErrInvalidMAC, err)
	}
	return name, m, nil
}
