package repository

import (
	"context"

	"github.com/google/uuid"
)

// LeadReader provides read access to the lead store.
type LeadReader interface {
	List(ctx context.Context, params ListParams) ([]Lead, error)
	GetByID(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) (Lead, error)
}

// LeadWriter provides mutation access to the lead store.
type LeadWriter interface {
	Create(ctx context.Context, params CreateLeadParams) (Lead, error)
	Update(ctx context.Context, id uuid.UUID, organizationID uuid.UUID, params UpdateLeadParams) (Lead, error)
	Delete(ctx context.Context, id uuid.UUID, organizationID uuid.UUID) error
}

// SectorRateProvider exposes historical conversion rates per sector.
type SectorRateProvider interface {
	SectorConversionRate(company string) float64
}

// LeadsRepository is the full repository contract.
type LeadsRepository interface {
	LeadReader
	LeadWriter
	SectorRateProvider
}

// Compile-time check.
var _ LeadsRepository = (*Repository)(nil)
