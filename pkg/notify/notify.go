package notify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pion/logging"
)

// Event describes the result of one wake request.
type Event struct {
	// Device is the device name, or the MAC when no name is known.
	Device string

	// Success reports whether the packet was handed to the network.
	Success bool

	// Transport names the transport that delivered the packet, if any.
	Transport string

	// Detail is the broadcaster's diagnostic message.
	Detail string

	// At is when the result was known.
	At time.Time
}

// Text returns the user-facing sentence for the event.
func (e Event) Text() string {
	if e.Success {
		if e.Transport == "" {
			return fmt.Sprintf("Successfully sent wake-up packet to %s", e.Device)
		}
		return fmt.Sprintf("Successfully sent wake-up packet to %s using %s", e.Device, e.Transport)
	}
	return fmt.Sprintf("Failed to send wake-up packet to %s. Please check your network settings.", e.Device)
}

// Notifier delivers events.
type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Func adapts a function to the Notifier interface.
type Func func(ctx context.Context, e Event) error

// Notify calls f(ctx, e).
func (f Func) Notify(ctx context.Context, e Event) error {
	return f(ctx, e)
}

// LogNotifier writes events to a pion logger under the "notify" scope:
// successes at Info, failures at Warn with the detail.
type LogNotifier struct {
	log logging.LeveledLogger
}

// NewLogNotifier creates a LogNotifier. A nil factory yields a notifier that
// discards events.
func NewLogNotifier(loggerFactory logging.LoggerFactory) *LogNotifier {
	n := &LogNotifier{}
	if loggerFactory != nil {
		n.log = loggerFactory.NewLogger("notify")
	}
	return n
}

// Notify logs the event.
func (n *LogNotifier) Notify(_ context.Context, e Event) error {
	if n.log == nil {
		return nil
	}
	if e.Success {
		n.log.Info(e.Text())
	} else {
		n.log.Warnf("%s (%s)", e.Text(), e.Detail)
	}
	return nil
}

// WriterNotifier writes one line per event to w. With Verbose set the
// detail is appended.
type WriterNotifier struct {
	mu      sync.Mutex
	w       io.Writer
	Verbose bool
}

// NewWriterNotifier creates a WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify writes the event text.
func (n *WriterNotifier) Notify(_ context.Context, e Event) error {
	line := e.Text()
	if n.Verbose && e.Detail != "" {
		line += " [" + e.Detail + "]"
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := fmt.Fprintln(n.w, line)
	return err
}

// Multi fans an event out to every notifier. All notifiers are called; their
// errors are joined.
type Multi []Notifier

// Notify delivers e to each notifier in order.
func (m Multi) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range m {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
