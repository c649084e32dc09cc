// Package management handles lead CRUD operations. The intelligence
// layer reads leads; this package is the only writer, and it publishes
// a domain event for every mutation so caches can be invalidated.
package management

import (
	"context"
	"errors"

	"crm_intel_backend/internal/events"
	"crm_intel_backend/internal/leads/repository"
	"crm_intel_backend/internal/leads/transport"
	"crm_intel_backend/platform/apperr"

	"github.com/google/uuid"
)

// Repository is the data access interface needed by the management
// service, a consumer-driven subset of the full repository.
type Repository interface {
	repository.LeadReader
	repository.LeadWriter
}

// Service handles lead management operations (CRUD).
type Service struct {
	repo Repository
	bus  events.Bus
}

// New creates a new lead management service.
func New(repo Repository, bus events.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// Create creates a new lead and publishes LeadCreated.
func (s *Service) Create(ctx context.Context, organizationID uuid.UUID, req transport.CreateLeadRequest) (transport.LeadResponse, error) {
	params := repository.CreateLeadParams{
		OrganizationID:  organizationID,
		Name:            req.Name,
		Company:         req.Company,
		Position:        req.Position,
		Source:          req.Source,
		Status:          req.Status,
		Score:           req.Score,
		Interactions:    req.Interactions,
		LastContactAt:   req.LastContactAt,
		NextActionAt:    req.NextActionAt,
		Notes:           req.Notes,
		CompanySize:     req.CompanySize,
		EstimatedBudget: req.EstimatedBudget,
	}
	if params.Status == "" {
		params.Status = "new"
	}

	lead, err := s.repo.Create(ctx, params)
	if err != nil {
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		OrganizationID: lead.OrganizationID,
		Source:         lead.Source,
	})

	return transport.ToLeadResponse(lead), nil
}

// GetByID retrieves a lead by ID.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id, organizationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}
	return transport.ToLeadResponse(lead), nil
}

// Update updates a lead's fields and publishes LeadUpdated.
func (s *Service) Update(ctx context.Context, id uuid.UUID, organizationID uuid.UUID, req transport.UpdateLeadRequest) (transport.LeadResponse, error) {
	params := repository.UpdateLeadParams{
		Name:            req.Name,
		Company:         req.Company,
		Position:        req.Position,
		Source:          req.Source,
		Status:          req.Status,
		Score:           req.Score,
		Interactions:    req.Interactions,
		CompanySize:     req.CompanySize,
		EstimatedBudget: req.EstimatedBudget,
	}
	if req.LastContactAt.Set {
		params.LastContactAt = req.LastContactAt.Value
		params.LastContactSet = true
	}
	if req.NextActionAt.Set {
		params.NextActionAt = req.NextActionAt.Value
		params.NextActionSet = true
	}
	if req.Notes.Set {
		params.Notes = req.Notes.Value
		params.NotesSet = true
	}

	lead, err := s.repo.Update(ctx, id, organizationID, params)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return transport.LeadResponse{}, apperr.NotFound("lead not found")
		}
		return transport.LeadResponse{}, err
	}

	s.bus.Publish(ctx, events.LeadUpdated{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         lead.ID,
		OrganizationID: lead.OrganizationID,
	})

	return transport.ToLeadResponse(lead), nil
}

// Delete removes a lead and publishes LeadDeleted.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, organizationID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("lead not found")
		}
		return err
	}

	s.bus.Publish(ctx, events.LeadDeleted{
		BaseEvent:      events.NewBaseEvent(),
		LeadID:         id,
		OrganizationID: organizationID,
	})

	return nil
}
