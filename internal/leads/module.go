// Package leads provides the leads bounded context module: the lead
// store, the intelligence layer with its caches, and the HTTP surface.
package leads

import (
	"context"

	"crm_intel_backend/internal/events"
	apphttp "crm_intel_backend/internal/http"
	"crm_intel_backend/internal/leads/handler"
	"crm_intel_backend/internal/leads/intelligence"
	"crm_intel_backend/internal/leads/management"
	"crm_intel_backend/internal/leads/repository"
	"crm_intel_backend/platform/config"
	"crm_intel_backend/platform/logger"
	"crm_intel_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	intel   *intelligence.Service
	mgmt    *management.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module. feed may be nil
// when no external mutation stream is configured.
func NewModule(pool *pgxpool.Pool, feed intelligence.MutationFeed, bus events.Bus, cfg *config.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	intel := intelligence.NewService(repo, repo, feed, cfg, log)
	mgmt := management.New(repo, bus)
	h := handler.New(intel, mgmt, val)

	return &Module{
		handler: h,
		intel:   intel,
		mgmt:    mgmt,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Intelligence returns the intelligence service for external use
// (the backfill command and the mutation stream wiring).
func (m *Module) Intelligence() *intelligence.Service {
	return m.intel
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() *repository.Repository {
	return m.repo
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/leads")
	group.GET("/intelligent", m.handler.ListIntelligent)
	group.GET("/analytics", m.handler.GetAnalytics)
	group.POST("/analytics", m.handler.PostAnalytics)
	group.GET("/:id/signals", m.handler.GetSignals)

	group.POST("", m.handler.CreateLead)
	group.GET("/:id", m.handler.GetLead)
	group.PUT("/:id", m.handler.UpdateLead)
	group.DELETE("/:id", m.handler.DeleteLead)
}

// RegisterHandlers subscribes to domain events so that every in-process
// lead mutation invalidates both cache tiers.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), m)
	bus.Subscribe(events.LeadUpdated{}.EventName(), m)
	bus.Subscribe(events.LeadDeleted{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch event.(type) {
	case events.LeadCreated, events.LeadUpdated, events.LeadDeleted:
		m.intel.InvalidateAll()
		return nil
	default:
		return nil
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
