package broadcast

import (
	"fmt"
	"time"

	"github.com/backkem/wol/pkg/transport"
	"github.com/pion/logging"
)

// Default time bounds.
const (
	// DefaultAttemptTimeout bounds the primary attempt before falling back.
	DefaultAttemptTimeout = 5 * time.Second

	// DefaultTimeout bounds the whole send, fallback included.
	DefaultTimeout = 6 * time.Second
)

// Config configures a Broadcaster.
type Config struct {
	// Primary is tried first. Defaults to a connected transport.
	Primary transport.Transport

	// Secondary is tried once if Primary fails or times out.
	// Defaults to a datagram transport.
	Secondary transport.Transport

	// AttemptTimeout bounds the primary attempt (default: 5s).
	// It must be shorter than Timeout.
	AttemptTimeout time.Duration

	// Timeout bounds the whole send (default: 6s).
	Timeout time.Duration

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.AttemptTimeout < 0 {
		return fmt.Errorf("%w: negative attempt timeout %v", ErrInvalidConfig, c.AttemptTimeout)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: negative timeout %v", ErrInvalidConfig, c.Timeout)
	}

	// The primary must give up while the fallback still has time to run.
	attempt, overall := c.AttemptTimeout, c.Timeout
	if attempt == 0 {
		attempt = DefaultAttemptTimeout
	}
	if overall == 0 {
		overall = DefaultTimeout
	}
	if attempt >= overall {
		return fmt.Errorf("%w: attempt timeout %v must be shorter than timeout %v", ErrInvalidConfig, attempt, overall)
	}
	return nil
}

// applyDefaults fills in default values for unset fields.
func (c *Config) applyDefaults() error {
	if c.AttemptTimeout == 0 {
		c.AttemptTimeout = DefaultAttemptTimeout
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	if c.Primary == nil {
		t, err := transport.New(transport.KindConnected, transport.Options{
			LoggerFactory: c.LoggerFactory,
		})
		if err != nil {
			return fmt.Errorf("creating primary transport: %w", err)
		}
		c.Primary = t
	}

	if c.Secondary == nil {
		t, err := transport.New(transport.KindDatagram, transport.Options{
			LoggerFactory: c.LoggerFactory,
		})
		if err != nil {
			return fmt.Errorf("creating secondary transport: %w", err)
		}
		c.Secondary = t
	}

	return nil
}
