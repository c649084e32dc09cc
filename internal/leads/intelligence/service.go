package intelligence

import (
	"context"
	"errors"
	"time"

	"crm_intel_backend/internal/leads/repository"
	"crm_intel_backend/platform/apperr"
	"crm_intel_backend/platform/cache"
	"crm_intel_backend/platform/config"
	"crm_intel_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MutationFeed is the external change-notification channel. The handler
// receives the raw payload of every lead mutation published by other
// writers; the returned function cancels the subscription.
type MutationFeed interface {
	Subscribe(ctx context.Context, handler func(payload []byte)) (func(), error)
}

// ListResult is the outcome of an intelligent listing. A failed store
// call is reported through Success=false with empty collections; it is
// a recoverable condition, not an error.
type ListResult struct {
	Success  bool
	Leads    []repository.Lead
	Enriched []EnrichedLead
}

// Service orchestrates listing, enrichment, caching and invalidation.
// It owns the only mutable state in the intelligence layer: the two
// caches. External code never touches cache entries directly.
type Service struct {
	store        repository.LeadReader
	rates        repository.SectorRateProvider
	feed         MutationFeed
	log          *logger.Logger
	queryCache   *cache.Cache[string, ListResult]
	enrichCache  *cache.Cache[uuid.UUID, SignalBundle]
	storeTimeout time.Duration
	now          func() time.Time
}

// NewService creates the intelligence service with caches sized and
// aged per configuration. feed may be nil when no mutation stream is
// configured; in-process invalidation still works through the event bus.
func NewService(store repository.LeadReader, rates repository.SectorRateProvider, feed MutationFeed, cfg config.IntelligenceConfig, log *logger.Logger) *Service {
	return &Service{
		store:        store,
		rates:        rates,
		feed:         feed,
		log:          log,
		queryCache:   cache.New[string, ListResult](cfg.GetQueryCacheTTL(), cfg.GetQueryCacheSize()),
		enrichCache:  cache.New[uuid.UUID, SignalBundle](cfg.GetEnrichmentCacheTTL(), cfg.GetEnrichmentCacheSize()),
		storeTimeout: cfg.GetStoreTimeout(),
		now:          time.Now,
	}
}

// WithClock replaces the service clock; intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ListIntelligent returns the filtered listing with every lead enriched.
// Results are cached per filter set; a store failure yields a closed
// failure shape and caches nothing.
func (s *Service) ListIntelligent(ctx context.Context, params repository.ListParams) ListResult {
	key := listCacheKey(params)

	if cached, ok := s.queryCache.Get(key); ok {
		s.log.CacheEvent("query", "hit", key)
		return cached
	}
	s.log.CacheEvent("query", "miss", key)

	listCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	leads, err := s.store.List(listCtx, params)
	if err != nil {
		s.log.DatabaseError("list leads", err)
		return ListResult{Success: false, Leads: []repository.Lead{}, Enriched: []EnrichedLead{}}
	}

	enriched := s.enrichAll(ctx, leads)

	result := ListResult{Success: true, Leads: leads, Enriched: enriched}
	s.queryCache.Set(key, result)
	return result
}

// GetSignals returns the signal bundle for a single lead, serving from
// the enrichment cache when possible.
func (s *Service) GetSignals(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (EnrichedLead, error) {
	lead, err := s.store.GetByID(ctx, id, organizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return EnrichedLead{}, apperr.Wrap(apperr.KindNotFound, "lead not found", err)
		}
		return EnrichedLead{}, err
	}

	if bundle, ok := s.enrichCache.Get(id); ok {
		s.log.CacheEvent("enrichment", "hit", id.String())
		return EnrichedLead{Lead: lead, Signals: bundle}, nil
	}
	s.log.CacheEvent("enrichment", "miss", id.String())

	// Similarity needs the peer population for the same tenant.
	population, err := s.store.List(ctx, repository.ListParams{OrganizationID: organizationID})
	if err != nil {
		// Degrade to a population of one: similarity comes back empty.
		population = []repository.Lead{lead}
	}

	bundle := ComputeBundle(ctx, lead, population, s.rates, s.now())
	s.enrichCache.Set(id, bundle)
	return EnrichedLead{Lead: lead, Signals: bundle}, nil
}

// Analytics lists, enriches and aggregates in one call.
func (s *Service) Analytics(ctx context.Context, params repository.ListParams) (AnalyticsSummary, bool) {
	result := s.ListIntelligent(ctx, params)
	if !result.Success {
		return AnalyticsSummary{}, false
	}
	return Aggregate(result.Enriched), true
}

// AnalyticsFor aggregates over an explicit set of leads, reusing the
// enrichment cache per lead. Unknown IDs are skipped rather than
// failing the whole aggregation.
func (s *Service) AnalyticsFor(ctx context.Context, organizationID uuid.UUID, ids []uuid.UUID) (AnalyticsSummary, error) {
	enriched := make([]EnrichedLead, 0, len(ids))
	for _, id := range ids {
		item, err := s.GetSignals(ctx, id, organizationID)
		if err != nil {
			if apperr.Is(err, apperr.KindNotFound) {
				continue
			}
			return AnalyticsSummary{}, err
		}
		enriched = append(enriched, item)
	}
	return Aggregate(enriched), nil
}

// InvalidateAll clears both cache tiers unconditionally. Invalidation
// is deliberately coarse: any mutation clears everything rather than
// attempting per-lead precision.
func (s *Service) InvalidateAll() {
	s.queryCache.Clear()
	s.enrichCache.Clear()
	s.log.CacheEvent("all", "invalidate", "*")
}

// Subscribe attaches the caller to the mutation feed. Both caches are
// cleared before the payload is forwarded, so a callback that re-reads
// always observes fresh data.
func (s *Service) Subscribe(ctx context.Context, callback func(payload []byte)) (func(), error) {
	if s.feed == nil {
		return func() {}, nil
	}
	return s.feed.Subscribe(ctx, func(payload []byte) {
		s.InvalidateAll()
		if callback != nil {
			callback(payload)
		}
	})
}

// enrichAll computes bundles for every lead concurrently, reusing
// cached bundles where present. The whole listing is the similarity
// population for each of its leads.
func (s *Service) enrichAll(ctx context.Context, leads []repository.Lead) []EnrichedLead {
	started := time.Now()
	enriched := make([]EnrichedLead, len(leads))
	now := s.now()

	g, gctx := errgroup.WithContext(ctx)
	for i, lead := range leads {
		i, lead := i, lead
		g.Go(func() error {
			bundle, ok := s.enrichCache.Get(lead.ID)
			if !ok {
				bundle = ComputeBundle(gctx, lead, leads, s.rates, now)
				s.enrichCache.Set(lead.ID, bundle)
			}
			enriched[i] = EnrichedLead{Lead: lead, Signals: bundle}
			return nil
		})
	}
	_ = g.Wait()

	s.log.EnrichmentDuration(len(leads), float64(time.Since(started).Milliseconds()))
	return enriched
}
