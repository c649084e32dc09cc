package intelligence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"crm_intel_backend/internal/leads/repository"
	"crm_intel_backend/platform/apperr"
	"crm_intel_backend/platform/config"
	"crm_intel_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeStore struct {
	mu        sync.Mutex
	leads     []repository.Lead
	listErr   error
	getErr    error
	listCalls int
	getCalls  int
}

func (f *fakeStore) List(ctx context.Context, params repository.ListParams) ([]repository.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]repository.Lead, len(f.leads))
	copy(out, f.leads)
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (repository.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return repository.Lead{}, f.getErr
	}
	for _, lead := range f.leads {
		if lead.ID == id {
			return lead, nil
		}
	}
	return repository.Lead{}, repository.ErrNotFound
}

func (f *fakeStore) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.getCalls
}

type fakeFeed struct {
	mu      sync.Mutex
	handler func(payload []byte)
	closed  bool
}

func (f *fakeFeed) Subscribe(ctx context.Context, handler func(payload []byte)) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handler = handler
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.closed = true
	}, nil
}

func (f *fakeFeed) emit(payload []byte) {
	f.mu.Lock()
	handler := f.handler
	f.mu.Unlock()
	if handler != nil {
		handler(payload)
	}
}

func testConfig() *config.Config {
	return &config.Config{
		QueryCacheTTL:       time.Minute,
		QueryCacheSize:      50,
		EnrichmentCacheTTL:  5 * time.Minute,
		EnrichmentCacheSize: 500,
		StoreTimeout:        time.Second,
	}
}

func newTestService(store *fakeStore, feed MutationFeed) *Service {
	svc := NewService(store, fixedRate(0.5), feed, testConfig(), logger.New("production"))
	return svc.WithClock(func() time.Time { return testNow })
}

func seedLeads(orgID uuid.UUID, n int) []repository.Lead {
	leads := make([]repository.Lead, 0, n)
	for i := 0; i < n; i++ {
		lead := newLead("Lead")
		lead.OrganizationID = orgID
		lead.Score = 50 + i
		lead.Status = "new"
		leads = append(leads, lead)
	}
	return leads
}

func TestListIntelligentEnrichesEveryLead(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{leads: seedLeads(orgID, 3)}
	svc := newTestService(store, nil)

	result := svc.ListIntelligent(context.Background(), repository.ListParams{OrganizationID: orgID})
	if !result.Success {
		t.Fatal("expected success")
	}
	if len(result.Leads) != 3 || len(result.Enriched) != 3 {
		t.Fatalf("expected 3 leads and 3 bundles, got %d/%d", len(result.Leads), len(result.Enriched))
	}
	for i, item := range result.Enriched {
		if item.Lead.ID != result.Leads[i].ID {
			t.Fatalf("enriched order diverges from listing order at %d", i)
		}
		if item.Signals.PriorityTier == "" {
			t.Fatalf("lead %d missing composite signals", i)
		}
	}
}

func TestListIntelligentServesRepeatFromCache(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{leads: seedLeads(orgID, 2)}
	svc := newTestService(store, nil)
	params := repository.ListParams{OrganizationID: orgID}

	first := svc.ListIntelligent(context.Background(), params)
	second := svc.ListIntelligent(context.Background(), params)

	if listCalls, _ := store.calls(); listCalls != 1 {
		t.Fatalf("expected one store call, got %d", listCalls)
	}
	if len(first.Enriched) != len(second.Enriched) {
		t.Fatalf("cached result diverges: %d vs %d", len(first.Enriched), len(second.Enriched))
	}
}

func TestListIntelligentCachesPerFilterSet(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{leads: seedLeads(orgID, 2)}
	svc := newTestService(store, nil)

	svc.ListIntelligent(context.Background(), repository.ListParams{OrganizationID: orgID})
	status := "new"
	svc.ListIntelligent(context.Background(), repository.ListParams{OrganizationID: orgID, Status: &status})

	if listCalls, _ := store.calls(); listCalls != 2 {
		t.Fatalf("expected distinct filters to miss independently, got %d store calls", listCalls)
	}
}

func TestListIntelligentStoreFailureNotCached(t *testing.T) {
	store := &fakeStore{listErr: errors.New("connection refused")}
	svc := newTestService(store, nil)
	params := repository.ListParams{OrganizationID: uuid.New()}

	result := svc.ListIntelligent(context.Background(), params)
	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Leads == nil || result.Enriched == nil {
		t.Fatal("expected empty, non-nil collections on failure")
	}
	if len(result.Leads) != 0 || len(result.Enriched) != 0 {
		t.Fatalf("expected empty collections, got %d/%d", len(result.Leads), len(result.Enriched))
	}

	// The failure must not be served from cache once the store recovers.
	store.mu.Lock()
	store.listErr = nil
	store.leads = seedLeads(params.OrganizationID, 1)
	store.mu.Unlock()

	recovered := svc.ListIntelligent(context.Background(), params)
	if !recovered.Success || len(recovered.Leads) != 1 {
		t.Fatalf("expected recovery on next call, got %+v", recovered)
	}
}

func TestGetSignalsServesRepeatFromEnrichmentCache(t *testing.T) {
	orgID := uuid.New()
	leads := seedLeads(orgID, 2)
	store := &fakeStore{leads: leads}
	svc := newTestService(store, nil)

	first, err := svc.GetSignals(context.Background(), leads[0].ID, orgID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetSignals(context.Background(), leads[0].ID, orgID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	listCalls, getCalls := store.calls()
	if getCalls != 2 {
		t.Fatalf("lead fetch happens per call, expected 2, got %d", getCalls)
	}
	if listCalls != 1 {
		t.Fatalf("population fetch must be skipped on cache hit, got %d", listCalls)
	}
	if first.Signals.HealthScore != second.Signals.HealthScore {
		t.Fatal("cached bundle diverges from computed bundle")
	}
}

func TestGetSignalsUnknownLead(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	_, err := svc.GetSignals(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound in the chain, got %v", err)
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected a typed not-found error, got %v", err)
	}
}

func TestGetSignalsDegradesWithoutPopulation(t *testing.T) {
	orgID := uuid.New()
	leads := seedLeads(orgID, 1)
	store := &fakeStore{leads: leads, listErr: errors.New("listing broken")}
	svc := newTestService(store, nil)

	enriched, err := svc.GetSignals(context.Background(), leads[0].ID, orgID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(enriched.Signals.SimilarLeads) != 0 {
		t.Fatalf("expected empty similar leads without a population, got %+v", enriched.Signals.SimilarLeads)
	}
}

func TestAnalyticsAggregatesListing(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{leads: seedLeads(orgID, 4)}
	svc := newTestService(store, nil)

	summary, ok := svc.Analytics(context.Background(), repository.ListParams{OrganizationID: orgID})
	if !ok {
		t.Fatal("expected success")
	}
	if summary.Total != 4 {
		t.Fatalf("expected total 4, got %d", summary.Total)
	}
}

func TestAnalyticsForSkipsUnknownLeads(t *testing.T) {
	orgID := uuid.New()
	leads := seedLeads(orgID, 2)
	store := &fakeStore{leads: leads}
	svc := newTestService(store, nil)

	ids := []uuid.UUID{leads[0].ID, uuid.New(), leads[1].ID}
	summary, err := svc.AnalyticsFor(context.Background(), orgID, ids)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Total != 2 {
		t.Fatalf("expected unknown IDs to be skipped, got total %d", summary.Total)
	}
}

func TestAnalyticsReportsStoreFailure(t *testing.T) {
	store := &fakeStore{listErr: errors.New("down")}
	svc := newTestService(store, nil)

	if _, ok := svc.Analytics(context.Background(), repository.ListParams{OrganizationID: uuid.New()}); ok {
		t.Fatal("expected failure to propagate")
	}
}

func TestInvalidateAllForcesFreshRead(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{leads: seedLeads(orgID, 2)}
	svc := newTestService(store, nil)
	params := repository.ListParams{OrganizationID: orgID}

	svc.ListIntelligent(context.Background(), params)
	svc.InvalidateAll()
	svc.ListIntelligent(context.Background(), params)

	if listCalls, _ := store.calls(); listCalls != 2 {
		t.Fatalf("expected invalidation to force a store read, got %d calls", listCalls)
	}
}

func TestSubscribeClearsCachesBeforeForwarding(t *testing.T) {
	orgID := uuid.New()
	store := &fakeStore{leads: seedLeads(orgID, 2)}
	feed := &fakeFeed{}
	svc := newTestService(store, feed)
	params := repository.ListParams{OrganizationID: orgID}

	var forwarded []byte
	cancel, err := svc.Subscribe(context.Background(), func(payload []byte) {
		forwarded = payload
		// Re-reading inside the callback must observe fresh data.
		svc.ListIntelligent(context.Background(), params)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer cancel()

	svc.ListIntelligent(context.Background(), params)
	feed.emit([]byte(`{"op":"update"}`))

	if string(forwarded) != `{"op":"update"}` {
		t.Fatalf("expected payload to be forwarded, got %q", forwarded)
	}
	if listCalls, _ := store.calls(); listCalls != 2 {
		t.Fatalf("expected the callback read to miss the cache, got %d calls", listCalls)
	}
}

func TestSubscribeWithoutFeedIsNoop(t *testing.T) {
	svc := newTestService(&fakeStore{}, nil)
	cancel, err := svc.Subscribe(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cancel == nil {
		t.Fatal("expected a usable cancel func")
	}
	cancel()
}
