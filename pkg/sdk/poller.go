package sdk

import (
	"context"
	"sync"
	"time"
)

// Poller periodically fetches a full snapshot and hands it to Apply. Every
// snapshot replaces the previous one; consumers never merge, so a rider
// missing from one response disappears rather than going stale. Fetch
// errors go to OnError and leave the last applied snapshot in place.
type Poller[T any] struct {
	Interval time.Duration
	Fetch    func(context.Context) (T, error)
	Apply    func(T)
	OnError  func(error)

	mu      sync.Mutex
	stopped bool
}

// Start issues one immediate fetch, then one per interval, until the
// returned stop function is called or ctx is cancelled. Stop is idempotent.
// A snapshot that resolves after stop is discarded, never applied.
func (p *Poller[T]) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	go p.run(ctx)
	return func() {
		p.mu.Lock()
		p.stopped = true
		p.mu.Unlock()
		cancel()
	}
}

func (p *Poller[T]) run(ctx context.Context) {
	p.poll(ctx)
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller[T]) poll(ctx context.Context) {
	snapshot, err := p.Fetch(ctx)

	p.mu.Lock()
	stopped := p.stopped
	p.mu.Unlock()
	if stopped || ctx.Err() != nil {
		return
	}

	if err != nil {
		if p.OnError != nil {
			p.OnError(err)
		}
		return
	}
	p.Apply(snapshot)
}
