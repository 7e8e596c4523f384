package registry

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/pion/logging"
)

// MemoryStore is an in-memory Store. Data is lost when the process exits.
//
// All methods are safe for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	devices map[int64]Device
	byName  map[string]int64
	nextID  int64
	closed  bool

	log logging.LeveledLogger
}

// NewMemoryStore creates an empty in-memory store. loggerFactory may be nil.
func NewMemoryStore(loggerFactory logging.LoggerFactory) *MemoryStore {
	m := &MemoryStore{
		devices: make(map[int64]Device),
		byName:  make(map[string]int64),
		nextID:  1,
	}
	if loggerFactory != nil {
		m.log = loggerFactory.NewLogger("registry")
	}
	return m
}

// List returns all devices sorted by name.
func (m *MemoryStore) List(ctx context.Context) ([]Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	result := make([]Device, 0, len(m.devices))
	for _, d := range m.devices {
		result = append(result, d)
	}
	slices.SortFunc(result, func(a, b Device) int {
		return strings.Compare(a.Name, b.Name)
	})
	return result, nil
}

// Get returns the device with the given name.
func (m *MemoryStore) Get(ctx context.Context, name string) (Device, error) {
	if err := ctx.Err(); err != nil {
		return Device{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return Device{}, ErrClosed
	}

	id, ok := m.byName[strings.TrimSpace(name)]
	if !ok {
		return Device{}, ErrNotFound
	}
	return m.devices[id], nil
}

// Add registers a new device.
func (m *MemoryStore) Add(ctx context.Context, name, mac string) (Device, error) {
	if err := ctx.Err(); err != nil {
		return Device{}, err
	}

	name, hw, err := normalize(name, mac)
	if err != nil {
		return Device{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return Device{}, ErrClosed
	}
	if _, exists := m.byName[name]; exists {
		return Device{}, ErrDuplicateName
	}

	d := Device{ID: m.nextID, Name: name, MAC: hw}
	m.nextID++
	m.devices[d.ID] = d
	m.byName[name] = d.ID

	if m.log != nil {
		m.log.Debugf("added %s", d)
	}
	return d, nil
}

// Delete removes the device with the given ID.
func (m *MemoryStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	d, ok := m.devices[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.devices, id)
	delete(m.byName, d.Name)

	if m.log != nil {
		m.log.Debugf("removed %s", d)
	}
	return nil
}

// Close marks the store closed. Subsequent calls return ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	return nil
}
