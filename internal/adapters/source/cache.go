// Package source maintains the time-boxed snapshot of the four row
// collections consumed by the aggregators.
//
// The cache is the only mutable shared state in the service. A single
// mutex guards the refresh path, so concurrent callers observe either the
// prior snapshot or the new one, never a partial replacement. A failed
// fetch surfaces to the caller and leaves the stale snapshot in place for
// everyone else.
package source

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/pulse/internal/domain/model"
	"github.com/okian/pulse/pkg/logger"
	"github.com/okian/pulse/pkg/metrics"
)

// defaultTTL is how long a snapshot is served before refetching.
const defaultTTL = 5 * time.Minute

// Fetcher retrieves one named document from the external store.
type Fetcher interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Documents names the four files fetched on every refresh.
type Documents struct {
	Master    string
	Proposals string
	Summary   string
	Marketing string
}

func defaultDocuments() Documents {
	return Documents{
		Master:    "Master Data.csv",
		Proposals: "Proposal Log.csv",
		Summary:   "Summary.csv",
		Marketing: "Marketing.csv",
	}
}

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithTTL sets the snapshot time-to-live.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithDocuments sets the document names fetched per refresh.
func WithDocuments(docs Documents) Option {
	return func(c *Cache) {
		if docs.Master != "" {
			c.docs = docs
		}
	}
}

// WithClock sets the time source used for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets a logger for refresh events.
func WithLogger(l logger.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// Cache holds the last-fetched snapshot and refreshes it on expiry.
type Cache struct {
	fetcher Fetcher
	docs    Documents
	ttl     time.Duration
	now     func() time.Time
	logger  logger.Logger

	mu   sync.Mutex
	snap *model.Snapshot
}

// New constructs a Cache over a Fetcher.
func New(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher: fetcher,
		docs:    defaultDocuments(),
		ttl:     defaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load returns the current snapshot, refreshing it first when it has
// expired or forceRefresh is set. The mutex spans the whole refresh so a
// refresh in progress is never interleaved with a conflicting one.
func (c *Cache) Load(ctx context.Context, forceRefresh bool) (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snap != nil && !forceRefresh && c.now().Sub(c.snap.FetchedAt) < c.ttl {
		metrics.RecordCacheHit()
		return c.snap, nil
	}
	metrics.RecordCacheMiss()

	start := time.Now()
	snap, err := c.refresh(ctx)
	if err != nil {
		metrics.RecordSnapshotRefreshFailure()
		if c.logger != nil {
			c.logger.Error(ctx, "snapshot refresh failed", logger.Error(err))
		}
		return nil, err
	}
	metrics.RecordSnapshotRefresh(float64(time.Since(start).Milliseconds()))
	metrics.SetSnapshotRows("engagements", len(snap.Engagements.Rows))
	metrics.SetSnapshotRows("proposals", len(snap.Proposals.Rows))
	metrics.SetSnapshotRows("summary", len(snap.Summary.Rows))
	metrics.SetSnapshotRows("clients", len(snap.Clients.Rows))

	c.snap = snap
	if c.logger != nil {
		c.logger.Info(ctx, "snapshot refreshed",
			logger.String("snapshot_id", snap.ID.String()),
			logger.Int("engagements", len(snap.Engagements.Rows)),
			logger.Int("proposals", len(snap.Proposals.Rows)),
			logger.Int("summary", len(snap.Summary.Rows)),
			logger.Int("clients", len(snap.Clients.Rows)),
		)
	}
	return c.snap, nil
}

// Current returns the live snapshot without triggering a refresh. It is
// nil until the first successful Load.
func (c *Cache) Current() *model.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// refresh fetches and parses the four documents into a new snapshot.
func (c *Cache) refresh(ctx context.Context) (*model.Snapshot, error) {
	engagements, err := c.fetchTable(ctx, c.docs.Master)
	if err != nil {
		return nil, err
	}
	proposals, err := c.fetchTable(ctx, c.docs.Proposals, WithStatusSentinel())
	if err != nil {
		return nil, err
	}
	summary, err := c.fetchTable(ctx, c.docs.Summary)
	if err != nil {
		return nil, err
	}
	clients, err := c.fetchTable(ctx, c.docs.Marketing)
	if err != nil {
		return nil, err
	}
	return model.NewSnapshot(engagements, proposals, summary, clients, c.now()), nil
}

func (c *Cache) fetchTable(ctx context.Context, name string, opts ...ParseOption) (model.Table, error) {
	start := time.Now()
	data, err := c.fetcher.Fetch(ctx, name)
	if err != nil {
		metrics.RecordFetchError(name)
		return model.Table{}, fmt.Errorf("fetch %s: %w", name, err)
	}
	metrics.RecordFetchDuration(name, float64(time.Since(start).Milliseconds()))

	table, err := ParseTable(data, opts...)
	if err != nil {
		return model.Table{}, fmt.Errorf("parse %s: %w", name, err)
	}
	return table, nil
}
