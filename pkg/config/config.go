package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/backkem/wol/pkg/broadcast"
	"github.com/backkem/wol/pkg/registry"
	"github.com/backkem/wol/pkg/transport"
	"github.com/pion/logging"
	yaml "go.yaml.in/yaml/v3"
)

// Defaults.
const (
	DefaultTarget   = "255.255.255.255:9"
	DefaultLogLevel = "warn"
	appDir          = "wol"
)

// Config is the wol configuration file.
type Config struct {
	Broadcast BroadcastConfig `yaml:"broadcast"`
	Registry  RegistryConfig  `yaml:"registry"`
	Log       LogConfig       `yaml:"log"`
}

// BroadcastConfig configures the broadcaster and its transports.
type BroadcastConfig struct {
	Target         string `yaml:"target"`          // host:port, IPv4 only (default: 255.255.255.255:9)
	AttemptTimeout string `yaml:"attempt_timeout"` // primary attempt bound (default: 5s)
	Timeout        string `yaml:"timeout"`         // overall bound (default: 6s)
	Interface      string `yaml:"interface"`       // "", "any", "wireless" or an interface name
}

// RegistryConfig configures the device store.
type RegistryConfig struct {
	Driver string `yaml:"driver"` // sqlite (default) | memory
	Path   string `yaml:"path"`   // database file; "~/" expands to the home directory
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // default: warn
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// DefaultPath returns the default config file location,
// <user config dir>/wol/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, appDir, "config.yaml")
}

// DefaultRegistryPath returns the default device database location,
// <user config dir>/wol/devices.db.
func DefaultRegistryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "devices.db"
	}
	return filepath.Join(dir, appDir, "devices.db")
}

// Load reads the file at path. A missing file yields Default().
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	c := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if _, err := transport.ParseTarget(c.Broadcast.Target); err != nil {
		return fmt.Errorf("broadcast.target: %w", err)
	}
	attempt, err := ParseDurationOrDefault("broadcast.attempt_timeout", c.Broadcast.AttemptTimeout, broadcast.DefaultAttemptTimeout)
	if err != nil {
		return err
	}
	timeout, err := ParseDurationOrDefault("broadcast.timeout", c.Broadcast.Timeout, broadcast.DefaultTimeout)
	if err != nil {
		return err
	}
	if attempt >= timeout {
		return fmt.Errorf("broadcast.attempt_timeout: %w: %v must be shorter than broadcast.timeout %v",
			broadcast.ErrInvalidConfig, attempt, timeout)
	}

	switch strings.ToLower(strings.TrimSpace(c.Registry.Driver)) {
	case registry.DriverSQLite, "sqlite3":
		if strings.TrimSpace(c.Registry.Path) == "" {
			return errors.New("registry.path: required for sqlite")
		}
	case registry.DriverMemory:
	default:
		return fmt.Errorf("registry.driver: %w: %q", registry.ErrUnknownDriver, c.Registry.Driver)
	}

	if _, err := ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// applyDefaults fills in default values for unset fields.
func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Broadcast.Target) == "" {
		c.Broadcast.Target = DefaultTarget
	}
	if strings.TrimSpace(c.Broadcast.AttemptTimeout) == "" {
		c.Broadcast.AttemptTimeout = broadcast.DefaultAttemptTimeout.String()
	}
	if strings.TrimSpace(c.Broadcast.Timeout) == "" {
		c.Broadcast.Timeout = broadcast.DefaultTimeout.String()
	}

	if strings.TrimSpace(c.Registry.Driver) == "" {
		c.Registry.Driver = registry.DriverSQLite
	}
	if strings.TrimSpace(c.Registry.Path) == "" {
		c.Registry.Path = DefaultRegistryPath()
	}
	c.Registry.Path = expandHome(c.Registry.Path)

	if strings.TrimSpace(c.Log.Level) == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Broadcaster builds a broadcaster with a connected primary and datagram
// secondary transport, both aimed at the configured target.
func (c *Config) Broadcaster(lf logging.LoggerFactory) (*broadcast.Broadcaster, error) {
	attempt, err := ParseDurationOrDefault("broadcast.attempt_timeout", c.Broadcast.AttemptTimeout, broadcast.DefaultAttemptTimeout)
	if err != nil {
		return nil, err
	}
	timeout, err := ParseDurationOrDefault("broadcast.timeout", c.Broadcast.Timeout, broadcast.DefaultTimeout)
	if err != nil {
		return nil, err
	}

	opts := transport.Options{
		Target:        c.Broadcast.Target,
		Policy:        transport.ParsePolicy(c.Broadcast.Interface),
		LoggerFactory: lf,
	}
	primary, err := transport.New(transport.KindConnected, opts)
	if err != nil {
		return nil, err
	}
	secondary, err := transport.New(transport.KindDatagram, opts)
	if err != nil {
		return nil, err
	}

	return broadcast.New(broadcast.Config{
		Primary:        primary,
		Secondary:      secondary,
		AttemptTimeout: attempt,
		Timeout:        timeout,
		LoggerFactory:  lf,
	})
}

// OpenRegistry opens the configured device store.
func (c *Config) OpenRegistry(lf logging.LoggerFactory) (registry.Store, error) {
	return registry.Open(registry.Config{
		Driver:        c.Registry.Driver,
		Path:          c.Registry.Path,
		LoggerFactory: lf,
	})
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
