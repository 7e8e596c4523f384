package wol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/backkem/wol/pkg/broadcast"
	"github.com/backkem/wol/pkg/magic"
	"github.com/backkem/wol/pkg/notify"
	"github.com/backkem/wol/pkg/registry"
	"github.com/pion/logging"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel sends in WakeAll.
const DefaultConcurrency = 4

// Sender broadcasts a magic packet for a parsed MAC.
// *broadcast.Broadcaster implements it.
type Sender interface {
	SendMAC(ctx context.Context, mac magic.MAC) broadcast.Outcome
}

// Config configures a Service.
type Config struct {
	Broadcaster Sender          // Required
	Registry    registry.Store  // Optional; without it only MACs can be woken
	Notifier    notify.Notifier // Optional
	Concurrency int             // WakeAll parallelism (default: 4)

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Service wakes devices by name or MAC.
type Service struct {
	sender      Sender
	store       registry.Store
	notifier    notify.Notifier
	concurrency int
	log         logging.LeveledLogger
}

// Result pairs a wake target with its outcome.
type Result struct {
	Target  string
	Device  string
	Outcome broadcast.Outcome
	Err     error
}

// New creates a Service.
func New(config Config) (*Service, error) {
	if config.Broadcaster == nil {
		return nil, ErrNoBroadcaster
	}
	if config.Concurrency <= 0 {
		config.Concurrency = DefaultConcurrency
	}

	s := &Service{
		sender:      config.Broadcaster,
		store:       config.Registry,
		notifier:    config.Notifier,
		concurrency: config.Concurrency,
	}
	if config.LoggerFactory != nil {
		s.log = config.LoggerFactory.NewLogger("wol")
	}
	return s, nil
}

// Wake resolves target and broadcasts its magic packet. The Outcome carries
// the delivery result; the error is non-nil only if target could not be
// resolved.
func (s *Service) Wake(ctx context.Context, target string) (broadcast.Outcome, error) {
	r := s.wake(ctx, target)
	return r.Outcome, r.Err
}

func (s *Service) wake(ctx context.Context, target string) Result {
	name, mac, err := s.resolve(ctx, target)
	if err != nil {
		msg := err.Error()
		if s.store == nil {
			msg = "invalid MAC address format: " + msg
		}
		return Result{
			Target:  target,
			Device:  target,
			Outcome: broadcast.Outcome{Message: msg, Err: err},
			Err:     err,
		}
	}

	if s.log != nil {
		s.log.Debugf("resolved %q to %s", target, mac)
	}

	out := s.sender.SendMAC(ctx, mac)

	if s.notifier != nil {
		e := notify.Event{
			Device:    name,
			Success:   out.Success,
			Transport: out.Transport,
			Detail:    out.Message,
			At:        time.Now(),
		}
		if nerr := s.notifier.Notify(ctx, e); nerr != nil && s.log != nil {
			s.log.Warnf("notify %s: %v", name, nerr)
		}
	}
	return Result{Target: target, Device: name, Outcome: out}
}

// WakeAll wakes every target concurrently and returns results in input
// order. Failures do not stop the remaining sends.
func (s *Service) WakeAll(ctx context.Context, targets ...string) []Result {
	results := make([]Result, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, target := range targets {
		g.Go(func() error {
			results[i] = s.wake(gctx, target)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Devices lists registered devices sorted by name.
func (s *Service) Devices(ctx context.Context) ([]registry.Device, error) {
	if s.store == nil {
		return nil, ErrNoRegistry
	}
	return s.store.List(ctx)
}

// AddDevice registers a device.
func (s *Service) AddDevice(ctx context.Context, name, mac string) (registry.Device, error) {
	if s.store == nil {
		return registry.Device{}, ErrNoRegistry
	}
	d, err := s.store.Add(ctx, name, mac)
	if err == nil && s.log != nil {
		s.log.Infof("registered %s", d)
	}
	return d, err
}

// RemoveDevice removes a device by ID.
func (s *Service) RemoveDevice(ctx context.Context, id int64) error {
	if s.store == nil {
		return ErrNoRegistry
	}
	err := s.store.Delete(ctx, id)
	if err == nil && s.log != nil {
		s.log.Infof("removed device %d", id)
	}
	return err
}

// resolve maps a device name or MAC to a display name and address.
// Registered names take precedence over MAC parsing.
func (s *Service) resolve(ctx context.Context, target string) (string, magic.MAC, error) {
	if s.store != nil {
		d, err := s.store.Get(ctx, target)
		switch {
		case err == nil:
			return d.Name, d.MAC, nil
		case !errors.Is(err, registry.ErrNotFound):
			return "", magic.MAC{}, fmt.Errorf("wol: looking up %q: %w", target, err)
		}
	}

	mac, err := magic.ParseMAC(target)
	if err != nil {
		if s.store == nil {
			return "", magic.MAC{}, err
		}
		return "", magic.MAC{}, fmt.Errorf("%w %q: %w", ErrUnknownDevice, target, err)
	}
	return mac.String(), mac, nil
}
