package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/backkem/wol/pkg/magic"
)

// fakeTransport is a scripted transport.Transport.
type fakeTransport struct {
	name  string
	err   error
	hang  bool          // block until the context ends
	delay time.Duration // sleep before returning err

	calls atomic.Int32

	mu      sync.Mutex
	packets []magic.Packet
	log     *callLog
}

func (f *fakeTransport) Name() string { return f.name }

func (f *fakeTransport) Transmit(ctx context.Context, p magic.Packet) error {
	f.calls.Add(1)
	f.mu.Lock()
	f.packets = append(f.packets, p)
	f.mu.Unlock()
	if f.log != nil {
		f.log.record(f.name)
	}

	if f.hang {
		<-ctx.Done()
		return ctx.Err()
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func (f *fakeTransport) lastPacket() (magic.Packet, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.packets) == 0 {
		return magic.Packet{}, false
	}
	return f.packets[len(f.packets)-1], true
}

// callLog records the order in which transports were invoked.
type callLog struct {
	mu    sync.Mutex
	names []string
}

func (l *callLog) record(name string) {
	l.mu.Lock()
	l.names = append(l.names, name)
	l.mu.Unlock()
}

func (l *callLog) order() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.names...)
}
