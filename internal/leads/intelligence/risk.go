package intelligence

import (
	"time"

	"crm_intel_backend/internal/leads/repository"
)

// EstimateRisk accumulates bounded penalties for signs a lead is going
// cold. Always returns a value in [0,100]. A lead that has never been
// contacted carries the full staleness penalty.
func EstimateRisk(lead repository.Lead, now time.Time) float64 {
	risk := 0.0

	switch days := daysSince(lead.LastContactAt, now); {
	case days < 0:
		risk += 35 // never contacted
	case days > 60:
		risk += 35
	case days > 30:
		risk += 20
	}

	if lead.Interactions < 2 {
		risk += 25
	}
	if lead.Score < 40 {
		risk += 20
	}
	if lead.NextActionAt == nil {
		risk += 15
	}

	return clamp(risk, 0, 100)
}
