package registry

import (
	"fmt"
	"strings"

	"github.com/pion/logging"
)

// Driver names accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config selects and configures a Store.
type Config struct {
	// Driver is DriverSQLite (default) or DriverMemory.
	Driver string

	// Path is the SQLite database file. Required for DriverSQLite.
	Path string

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Open creates the configured store.
func Open(config Config) (Store, error) {
	driver := strings.ToLower(strings.TrimSpace(config.Driver))
	switch driver {
	case "", DriverSQLite, "sqlite3":
		return OpenSQLite(config.Path, config.LoggerFactory)
	case DriverMemory:
		return NewMemoryStore(config.LoggerFactory), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, config.Driver)
	}
}
