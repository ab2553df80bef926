package availability

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Watcher re-resolves a query on a fixed interval and hands fresh snapshots
// to a callback, for flows that keep an availability view live while open.
//
// Each tick resolves in its own goroutine so a slow fetch never blocks the
// next tick. A cycle that finishes after a newer one has already been
// published is discarded by sequence number rather than arrival order.
type Watcher struct {
	service  Service
	query    Query
	interval time.Duration
	logger   zerolog.Logger

	mu        sync.Mutex
	running   bool
	stopCh    chan struct{}
	published uint64
}

// NewWatcher creates a watcher for one query. Start it with go w.Start(...).
func NewWatcher(service Service, query Query, interval time.Duration, logger zerolog.Logger) *Watcher {
	return &Watcher{
		service:  service,
		query:    query,
		interval: interval,
		logger:   logger.With().Str("component", "availability-watcher").Logger(),
		stopCh:   make(chan struct{}),
	}
}

// Start begins the polling loop and blocks until the context is cancelled or
// Stop is called. An immediate first cycle runs before the first tick.
func (w *Watcher) Start(ctx context.Context, fn func(*Snapshot)) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info().
		Str("service_id", w.query.ServiceID).
		Dur("interval", w.interval).
		Msg("availability watcher started")

	go w.cycle(ctx, fn)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("availability watcher stopped by context")
			return
		case <-w.stopCh:
			w.logger.Info().Msg("availability watcher stopped")
			return
		case <-ticker.C:
			go w.cycle(ctx, fn)
		}
	}
}

// Stop stops the watcher. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.running {
		w.running = false
		close(w.stopCh)
	}
	w.mu.Unlock()
}

func (w *Watcher) cycle(ctx context.Context, fn func(*Snapshot)) {
	snap, err := w.service.Resolve(ctx, w.query)
	if err != nil {
		w.logger.Warn().Err(err).Msg("resolve cycle failed")
		return
	}
	if w.publish(snap.Seq) {
		fn(snap)
	}
}

// publish records seq as the latest published cycle. It returns false when a
// newer cycle already published, in which case the snapshot must be dropped.
func (w *Watcher) publish(seq uint64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq <= w.published {
		return false
	}
	w.published = seq
	return true
}
