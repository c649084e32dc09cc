package transport

import (
	"time"

	"crm_intel_backend/internal/leads/intelligence"
	"crm_intel_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// Request DTOs

type ListLeadsRequest struct {
	Status   string `form:"status" validate:"omitempty,max=50"`
	Source   string `form:"source" validate:"omitempty,max=50"`
	Search   string `form:"search" validate:"omitempty,max=200"`
	MinScore *int   `form:"minScore" validate:"omitempty,min=0,max=100"`
}

// ToListParams converts the request into repository filters.
func (r ListLeadsRequest) ToListParams(organizationID uuid.UUID) repository.ListParams {
	params := repository.ListParams{
		OrganizationID: organizationID,
		Search:         r.Search,
		MinScore:       r.MinScore,
	}
	if r.Status != "" {
		params.Status = &r.Status
	}
	if r.Source != "" {
		params.Source = &r.Source
	}
	return params
}

type CreateLeadRequest struct {
	Name            string     `json:"name" validate:"required,min=1,max=200"`
	Company         string     `json:"company" validate:"omitempty,max=200"`
	Position        string     `json:"position" validate:"omitempty,max=100"`
	Source          string     `json:"source" validate:"omitempty,max=50"`
	Status          string     `json:"status" validate:"omitempty,max=50"`
	Score           int        `json:"score" validate:"min=0,max=100"`
	Interactions    int        `json:"interactions" validate:"min=0"`
	LastContactAt   *time.Time `json:"lastContactAt,omitempty"`
	NextActionAt    *time.Time `json:"nextActionAt,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CompanySize     *int       `json:"companySize,omitempty" validate:"omitempty,min=1"`
	EstimatedBudget *float64   `json:"estimatedBudget,omitempty" validate:"omitempty,min=0"`
}

type UpdateLeadRequest struct {
	Name            *string        `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Company         *string        `json:"company,omitempty" validate:"omitempty,max=200"`
	Position        *string        `json:"position,omitempty" validate:"omitempty,max=100"`
	Source          *string        `json:"source,omitempty" validate:"omitempty,max=50"`
	Status          *string        `json:"status,omitempty" validate:"omitempty,max=50"`
	Score           *int           `json:"score,omitempty" validate:"omitempty,min=0,max=100"`
	Interactions    *int           `json:"interactions,omitempty" validate:"omitempty,min=0"`
	LastContactAt   OptionalTime   `json:"lastContactAt,omitempty" validate:"-"`
	NextActionAt    OptionalTime   `json:"nextActionAt,omitempty" validate:"-"`
	Notes           OptionalString `json:"notes,omitempty" validate:"-"`
	CompanySize     *int           `json:"companySize,omitempty" validate:"omitempty,min=1"`
	EstimatedBudget *float64       `json:"estimatedBudget,omitempty" validate:"omitempty,min=0"`
}

type AnalyticsRequest struct {
	LeadIDs []uuid.UUID `json:"leadIds" validate:"required,min=1"`
}

// Response DTOs

type LeadResponse struct {
	ID              uuid.UUID  `json:"id"`
	OrganizationID  uuid.UUID  `json:"organizationId"`
	Name            string     `json:"name"`
	Company         string     `json:"company,omitempty"`
	Position        string     `json:"position,omitempty"`
	Source          string     `json:"source,omitempty"`
	Status          string     `json:"status"`
	Score           int        `json:"score"`
	Interactions    int        `json:"interactions"`
	LastContactAt   *time.Time `json:"lastContactAt,omitempty"`
	NextActionAt    *time.Time `json:"nextActionAt,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CompanySize     *int       `json:"companySize,omitempty"`
	EstimatedBudget *float64   `json:"estimatedBudget,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

type EnrichedLeadResponse struct {
	Lead    LeadResponse              `json:"lead"`
	Signals intelligence.SignalBundle `json:"signals"`
}

type IntelligentListResponse struct {
	Success  bool                   `json:"success"`
	Leads    []LeadResponse         `json:"leads"`
	Enriched []EnrichedLeadResponse `json:"enriched"`
}

// Mappers

func ToLeadResponse(lead repository.Lead) LeadResponse {
	return LeadResponse{
		ID:              lead.ID,
		OrganizationID:  lead.OrganizationID,
		Name:            lead.Name,
		Company:         lead.Company,
		Position:        lead.Position,
		Source:          lead.Source,
		Status:          lead.Status,
		Score:           lead.Score,
		Interactions:    lead.Interactions,
		LastContactAt:   lead.LastContactAt,
		NextActionAt:    lead.NextActionAt,
		Notes:           lead.Notes,
		CompanySize:     lead.CompanySize,
		EstimatedBudget: lead.EstimatedBudget,
		CreatedAt:       lead.CreatedAt,
		UpdatedAt:       lead.UpdatedAt,
	}
}

func ToEnrichedLeadResponse(item intelligence.EnrichedLead) EnrichedLeadResponse {
	return EnrichedLeadResponse{
		Lead:    ToLeadResponse(item.Lead),
		Signals: item.Signals,
	}
}

func ToIntelligentListResponse(result intelligence.ListResult) IntelligentListResponse {
	leads := make([]LeadResponse, 0, len(result.Leads))
	for _, lead := range result.Leads {
		leads = append(leads, ToLeadResponse(lead))
	}
	enriched := make([]EnrichedLeadResponse, 0, len(result.Enriched))
	for _, item := range result.Enriched {
		enriched = append(enriched, ToEnrichedLeadResponse(item))
	}
	return IntelligentListResponse{
		Success:  result.Success,
		Leads:    leads,
		Enriched: enriched,
	}
}
