package poller

import (
	"context"
	"sync"
	"time"

	"excer/internal/domain/stocks"
	"excer/pkg/logger"
)

// SnapshotFetcher is the slice of Client the controller needs
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context) (*stocks.Snapshot, error)
}

// Options tune the controller's timers. Zero values fall back to the
// production defaults; tests inject short durations.
type Options struct {
	// RefreshEvery is how long a snapshot stays fresh after its own
	// lastUpdated stamp before the controller starts polling for a new one
	RefreshEvery time.Duration
	// CheckEvery is how often freshness is re-evaluated while idle
	CheckEvery time.Duration
	// PollEvery is the interval between reads during an active poll cycle
	PollEvery time.Duration
}

func (o Options) withDefaults() Options {
	if o.RefreshEvery <= 0 {
		o.RefreshEvery = 15 * time.Minute
	}
	if o.CheckEvery <= 0 {
		o.CheckEvery = 5 * time.Second
	}
	if o.PollEvery <= 0 {
		o.PollEvery = 2 * time.Minute
	}
	return o
}

// Controller watches the server for fresh snapshots. It idles until the
// current snapshot's refresh window elapses, then polls until the server
// hands back a strictly newer one. Everything runs on the goroutine that
// calls Run; the mutex only protects reads from other goroutines.
type Controller struct {
	fetcher  SnapshotFetcher
	opts     Options
	onUpdate func(*stocks.Snapshot)
	log      *logger.Logger

	mu       sync.RWMutex
	snapshot *stocks.Snapshot
	polling  bool
}

// NewController creates a polling controller. onUpdate fires on every
// accepted snapshot, including the initial load; it may be nil.
func NewController(fetcher SnapshotFetcher, opts Options, onUpdate func(*stocks.Snapshot)) *Controller {
	return &Controller{
		fetcher:  fetcher,
		opts:     opts.withDefaults(),
		onUpdate: onUpdate,
		log:      logger.Get().With("component", "poller"),
	}
}

// Snapshot returns the last accepted snapshot, or nil before the first load
func (c *Controller) Snapshot() *stocks.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Run drives the controller until the context is cancelled
func (c *Controller) Run(ctx context.Context) error {
	// The initial load accepts whatever the server has; freshness rules
	// only apply once a baseline exists.
	if snapshot, err := c.fetcher.FetchSnapshot(ctx); err != nil {
		c.log.Warnw("initial snapshot load failed", "error", err)
	} else {
		c.accept(snapshot)
	}

	check := time.NewTicker(c.opts.CheckEvery)
	defer check.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-check.C:
			if c.due(time.Now()) {
				c.pollCycle(ctx)
			}
		}
	}
}

// due reports whether the refresh window has elapsed
func (c *Controller) due(now time.Time) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.polling {
		return false
	}
	if c.snapshot == nil || c.snapshot.LastUpdated == 0 {
		return true
	}

	nextUpdate := c.snapshot.LastUpdated + c.opts.RefreshEvery.Milliseconds()
	return now.UnixMilli() >= nextUpdate
}

// pollCycle reads immediately, then keeps reading on the poll interval
// until a strictly newer snapshot arrives or the context ends. Only one
// cycle runs at a time.
func (c *Controller) pollCycle(ctx context.Context) {
	c.mu.Lock()
	if c.polling {
		c.mu.Unlock()
		return
	}
	c.polling = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.polling = false
		c.mu.Unlock()
	}()

	c.log.Debug("refresh window elapsed, polling for new snapshot")

	if c.pollOnce(ctx) {
		return
	}

	ticker := time.NewTicker(c.opts.PollEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.pollOnce(ctx) {
				return
			}
		}
	}
}

// pollOnce reads the server and reports whether a newer snapshot was
// accepted. Stale or equal timestamps leave the current snapshot untouched.
func (c *Controller) pollOnce(ctx context.Context) bool {
	snapshot, err := c.fetcher.FetchSnapshot(ctx)
	if err != nil {
		c.log.Warnw("snapshot poll failed", "error", err)
		return false
	}

	c.mu.RLock()
	current := c.snapshot
	c.mu.RUnlock()

	if current != nil && snapshot.LastUpdated <= current.LastUpdated {
		c.log.Debugw("snapshot not newer, continuing to poll",
			"server", snapshot.LastUpdated,
			"local", current.LastUpdated,
		)
		return false
	}

	c.accept(snapshot)
	return true
}

func (c *Controller) accept(snapshot *stocks.Snapshot) {
	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	c.log.Infow("snapshot accepted",
		"stocks", len(snapshot.Stocks),
		"last_updated", time.UnixMilli(snapshot.LastUpdated),
		"source", snapshot.DataSource,
	)

	if c.onUpdate != nil {
		c.onUpdate(snapshot)
	}
}
