package intelligence

import (
	"time"

	"crm_intel_backend/internal/leads/repository"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(n int) *time.Time {
	t := testNow.Add(-time.Duration(n) * 24 * time.Hour)
	return &t
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

func floatPtr(f float64) *float64 { return &f }

// fixedRate is a SectorRateProvider returning the same rate for any company.
type fixedRate float64

func (r fixedRate) SectorConversionRate(string) float64 { return float64(r) }

func newLead(name string) repository.Lead {
	return repository.Lead{
		ID:             uuid.New(),
		OrganizationID: uuid.New(),
		Name:           name,
	}
}
