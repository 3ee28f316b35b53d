package source

import (
	"context"
	"sync"
	"time"

	"github.com/okian/pulse/pkg/logger"
)

// Refresher keeps the snapshot warm by forcing a refresh on a fixed
// interval, so interactive requests rarely pay the fetch cost. A failed
// background refresh only logs; the cache keeps serving the stale
// snapshot until the next tick succeeds.
type Refresher struct {
	cache    *Cache
	interval time.Duration
	logger   logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRefresher constructs a Refresher over a cache.
func NewRefresher(cache *Cache, interval time.Duration, l logger.Logger) *Refresher {
	return &Refresher{
		cache:    cache,
		interval: interval,
		logger:   l,
	}
}

// Start launches the refresh loop. It is a no-op when already running.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(loopCtx)
}

// Stop halts the refresh loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel = nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Refresher) loop(ctx context.Context) {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.cache.Load(ctx, true); err != nil && r.logger != nil {
				r.logger.Warn(ctx, "background refresh failed; serving stale snapshot", logger.Error(err))
			}
		}
	}
}
