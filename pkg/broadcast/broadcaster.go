package broadcast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/backkem/wol/pkg/magic"
	"github.com/backkem/wol/pkg/transport"
	"github.com/pion/logging"
)

// invalidMACMessage is reported for any MAC that fails to parse.
const invalidMACMessage = "invalid MAC address format"

// Broadcaster sends magic packets with a primary transport and a single
// fallback.
type Broadcaster struct {
	primary        transport.Transport
	secondary      transport.Transport
	attemptTimeout time.Duration
	timeout        time.Duration
	log            logging.LeveledLogger
}

// New creates a Broadcaster. Unset fields in config take their defaults.
func New(config Config) (*Broadcaster, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if err := config.applyDefaults(); err != nil {
		return nil, err
	}
	if config.Primary == config.Secondary {
		return nil, fmt.Errorf("%w: primary and secondary are the same transport", ErrInvalidConfig)
	}

	b := &Broadcaster{
		primary:        config.Primary,
		secondary:      config.Secondary,
		attemptTimeout: config.AttemptTimeout,
		timeout:        config.Timeout,
	}

	if config.LoggerFactory != nil {
		b.log = config.LoggerFactory.NewLogger("broadcast")
	}

	return b, nil
}

// AttemptTimeout returns the bound on the primary attempt.
func (b *Broadcaster) AttemptTimeout() time.Duration {
	return b.attemptTimeout
}

// Timeout returns the bound on a whole send.
func (b *Broadcaster) Timeout() time.Duration {
	return b.timeout
}

// Send parses mac and broadcasts its magic packet, blocking until an outcome
// is known or Timeout elapses. It never panics and always returns exactly one
// Outcome.
func (b *Broadcaster) Send(ctx context.Context, mac string) Outcome {
	m, err := magic.ParseMAC(mac)
	if err != nil {
		if b.log != nil {
			b.log.Warnf("rejecting MAC %q: %v", mac, err)
		}
		return Outcome{Message: invalidMACMessage + ": " + err.Error(), Err: err}
	}
	return b.SendMAC(ctx, m)
}

// SendAsync runs Send on a new goroutine and calls done exactly once with the
// result. done may be nil.
func (b *Broadcaster) SendAsync(ctx context.Context, mac string, done func(success bool, message string)) {
	go func() {
		out := b.Send(ctx, mac)
		if done != nil {
			done(out.Success, out.Message)
		}
	}()
}

// Go runs Send on a new goroutine. The returned channel receives exactly one
// Outcome and is never closed.
func (b *Broadcaster) Go(ctx context.Context, mac string) <-chan Outcome {
	ch := make(chan Outcome, 1)
	go func() {
		ch <- b.Send(ctx, mac)
	}()
	return ch
}

// SendMAC broadcasts the magic packet for an already parsed address.
func (b *Broadcaster) SendMAC(ctx context.Context, mac magic.MAC) Outcome {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	pkt := magic.Build(mac)

	if b.log != nil {
		b.log.Infof("waking %s", mac)
	}

	first := b.attempt(ctx, b.primary, pkt, b.attemptTimeout)
	if first.ok {
		return b.succeed(mac, first)
	}

	// The overall bound (or the caller) ended the send during the primary
	// attempt; there is no budget left for the fallback.
	if err := ctx.Err(); err != nil {
		return b.abort(mac, err, first.err)
	}

	if b.log != nil {
		b.log.Infof("%s failed (%v), falling back to %s", first.transport, first.err, b.secondary.Name())
	}

	second := b.attempt(ctx, b.secondary, pkt, 0)
	if second.ok {
		return b.succeed(mac, second)
	}

	if err := ctx.Err(); err != nil {
		return b.abort(mac, err, first.err, second.err)
	}

	if b.log != nil {
		b.log.Warnf("waking %s failed: %v", mac, second.err)
	}
	return Outcome{
		Message: "failed to send Wake-on-LAN packet: " + second.detail(),
		Err:     errors.Join(first.err, second.err),
	}
}

// attempt runs one Transmit on its own goroutine, bounded by limit (if > 0)
// and by ctx. The result channel is buffered and written exactly once, so an
// abandoned attempt never blocks.
func (b *Broadcaster) attempt(ctx context.Context, t transport.Transport, pkt magic.Packet, limit time.Duration) attempt {
	actx, cancel := ctx, context.CancelFunc(func() {})
	if limit > 0 {
		actx, cancel = context.WithTimeout(ctx, limit)
	}
	// Cancelling releases the transport's socket if it is still in flight.
	defer cancel()

	result := make(chan error, 1)
	go func() {
		result <- t.Transmit(actx, pkt)
	}()

	a := attempt{transport: t.Name()}

	select {
	case err := <-result:
		a.ok = err == nil
		a.err = err
	case <-actx.Done():
	}

	// A transport that gave up because its context ended reports the same
	// error as one that was abandoned.
	if !a.ok && actx.Err() != nil {
		a.err = fmt.Errorf("%s: %w", t.Name(), attemptError(ctx, actx, limit))
	}

	if b.log != nil {
		if a.ok {
			b.log.Debugf("%s: sent", a.transport)
		} else {
			b.log.Debugf("%s: %v", a.transport, a.err)
		}
	}
	return a
}

func (b *Broadcaster) succeed(mac magic.MAC, a attempt) Outcome {
	if b.log != nil {
		b.log.Infof("woke %s via %s", mac, a.transport)
	}
	return Outcome{
		Success:   true,
		Transport: a.transport,
		Message:   "Wake-on-LAN packet sent successfully via " + a.transport,
	}
}

// abort reports a send ended by its context rather than by a transport.
func (b *Broadcaster) abort(mac magic.MAC, ctxErr error, errs ...error) Outcome {
	var msg string
	if errors.Is(ctxErr, context.DeadlineExceeded) {
		msg = fmt.Sprintf("sending Wake-on-LAN packet timed out after %v", b.timeout)
		ctxErr = fmt.Errorf("%w: %w", ErrTimeout, ctxErr)
	} else {
		msg = "sending Wake-on-LAN packet cancelled"
	}

	if b.log != nil {
		b.log.Warnf("waking %s: %s", mac, msg)
	}
	return Outcome{
		Message: msg,
		Err:     errors.Join(append([]error{ctxErr}, errs...)...),
	}
}

// attemptError describes why actx ended. The attempt's own limit is only
// reported when it fired before the parent ctx did.
func attemptError(ctx, actx context.Context, limit time.Duration) error {
	if err := ctx.Err(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return err
	}
	if !errors.Is(actx.Err(), context.DeadlineExceeded) {
		return actx.Err()
	}
	if limit > 0 {
		return fmt.Errorf("%w after %v", ErrTimeout, limit)
	}
	return ErrTimeout
}
