// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/okian/pulse/internal/adapters/http/api"
	"github.com/okian/pulse/internal/adapters/source"
	"github.com/okian/pulse/internal/domain/aggregate"
	"github.com/okian/pulse/internal/domain/model"
	"github.com/okian/pulse/pkg/logger"
	"github.com/okian/pulse/pkg/metrics"
)

// Service loads the row snapshot and computes the dashboard views.
type Service struct {
	mu sync.RWMutex

	// Core components
	cache      *source.Cache
	aggregator *aggregate.Aggregator
	refresher  *source.Refresher

	// Configuration
	fetcher           source.Fetcher
	cacheTTL          time.Duration
	documents         source.Documents
	aggregateOpts     []aggregate.Option
	backgroundRefresh bool
	now               func() time.Time

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithFetcher sets the document fetcher backing the snapshot cache.
func WithFetcher(fetcher source.Fetcher) Option {
	return func(s *Service) {
		if fetcher != nil {
			s.fetcher = fetcher
		}
	}
}

// WithCacheTTL sets the snapshot time-to-live.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithDocuments sets the document names fetched per refresh.
func WithDocuments(docs source.Documents) Option {
	return func(s *Service) {
		if docs.Master != "" {
			s.documents = docs
		}
	}
}

// WithAggregateOptions forwards options to the aggregator.
func WithAggregateOptions(opts ...aggregate.Option) Option {
	return func(s *Service) {
		s.aggregateOpts = append(s.aggregateOpts, opts...)
	}
}

// WithBackgroundRefresh keeps the snapshot warm by refreshing it on the
// cache TTL interval instead of only on demand.
func WithBackgroundRefresh(enabled bool) Option {
	return func(s *Service) {
		s.backgroundRefresh = enabled
	}
}

// WithClock sets the time source used for cache expiry and view math.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheTTL: 5 * time.Minute,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components. The snapshot is fetched
// lazily on the first view request, not here, so a slow upstream does
// not block startup.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.fetcher == nil {
		return ErrNoFetcher
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.aggregator = aggregate.New(append(s.aggregateOpts, aggregate.WithClock(s.now))...)

	cacheOpts := []source.Option{
		source.WithTTL(s.cacheTTL),
		source.WithClock(s.now),
		source.WithLogger(s.logger),
	}
	if s.documents.Master != "" {
		cacheOpts = append(cacheOpts, source.WithDocuments(s.documents))
	}
	s.cache = source.New(s.fetcher, cacheOpts...)

	if s.backgroundRefresh {
		s.refresher = source.NewRefresher(s.cache, s.cacheTTL, s.logger)
		s.refresher.Start(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.String("cache_ttl", s.cacheTTL.String()),
		logger.Any("background_refresh", s.backgroundRefresh),
	)
	return nil
}

// Stop shuts the service down, waiting for the background refresher
// when one is running.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	if s.refresher != nil {
		s.refresher.Stop()
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Executive computes the executive summary view.
func (s *Service) Executive(ctx context.Context) (aggregate.ExecutiveSummary, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return aggregate.ExecutiveSummary{}, err
	}
	defer s.observeView("executive", time.Now())
	return s.aggregator.Executive(snap), nil
}

// Pipeline computes the pipeline health view.
func (s *Service) Pipeline(ctx context.Context) (aggregate.Pipeline, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return aggregate.Pipeline{}, err
	}
	defer s.observeView("pipeline", time.Now())
	return s.aggregator.Pipeline(snap), nil
}

// Capacity computes the per-principal capacity view.
func (s *Service) Capacity(ctx context.Context) (map[string]aggregate.TeamCapacity, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	defer s.observeView("capacity", time.Now())
	return s.aggregator.Capacity(snap), nil
}

// Clients computes the client scoring view, optionally filtered by office.
func (s *Service) Clients(ctx context.Context, office string) (aggregate.ClientScores, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return aggregate.ClientScores{}, err
	}
	defer s.observeView("clients", time.Now())
	return s.aggregator.Clients(snap, office), nil
}

// Trends computes the billing trend view.
func (s *Service) Trends(ctx context.Context) (aggregate.Trends, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return aggregate.Trends{}, err
	}
	defer s.observeView("trends", time.Now())
	return s.aggregator.Trends(snap), nil
}

// Refresh discards the cached snapshot and refetches it.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()
	if cache == nil {
		return ErrNotStarted
	}
	_, err := cache.Load(ctx, true)
	return err
}

// KnownOffice reports whether an office filter is configured.
func (s *Service) KnownOffice(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.aggregator == nil {
		return false
	}
	return s.aggregator.KnownOffice(name)
}

// GetStats reports the serving state for the operational endpoints.
func (s *Service) GetStats() api.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := api.Stats{
		Started:         s.started,
		CacheTTLSeconds: s.cacheTTL.Seconds(),
	}

	if s.cache == nil {
		return stats
	}
	snap := s.cache.Current()
	if snap == nil {
		return stats
	}

	stats.SnapshotLoaded = true
	stats.SnapshotID = snap.ID.String()
	stats.SnapshotAgeSeconds = snap.Age(s.now()).Seconds()
	stats.EngagementRows = len(snap.Engagements.Rows)
	stats.ProposalRows = len(snap.Proposals.Rows)
	stats.SummaryRows = len(snap.Summary.Rows)
	stats.ClientRows = len(snap.Clients.Rows)
	return stats
}

// load returns the current snapshot, refreshing it on expiry, and keeps
// the snapshot age gauge current.
func (s *Service) load(ctx context.Context) (*model.Snapshot, error) {
	s.mu.RLock()
	cache := s.cache
	s.mu.RUnlock()
	if cache == nil {
		return nil, ErrNotStarted
	}

	snap, err := cache.Load(ctx, false)
	if err != nil {
		return nil, err
	}
	metrics.SetSnapshotAge(snap.Age(s.now()).Seconds())
	return snap, nil
}

func (s *Service) observeView(view string, start time.Time) {
	metrics.RecordViewLatency(view, float64(time.Since(start).Milliseconds()))
}
