package intelligence

import (
	"strings"
	"time"

	"crm_intel_backend/internal/leads/repository"
)

const conversionBaseline = 50.0

// Sources that historically close well.
var highQualitySources = map[string]bool{
	"referral": true,
	"partner":  true,
	"webinar":  true,
	"linkedin": true,
}

// EstimateConversion scores how likely a lead is to convert, starting
// from a neutral baseline and adding bounded contributions per factor.
// Always returns a value in [0,100]; a missing rate provider degrades
// to the neutral sector contribution instead of failing.
func EstimateConversion(lead repository.Lead, rates repository.SectorRateProvider, now time.Time) float64 {
	score := conversionBaseline

	// Contact recency
	switch days := daysSince(lead.LastContactAt, now); {
	case days < 0:
		// never contacted, no recency signal either way
	case days <= 3:
		score += 20
	case days <= 7:
		score += 10
	case days > 30:
		score -= 15
	}

	// Base score tier
	if lead.Score > 80 {
		score += 15
	} else if lead.Score > 60 {
		score += 8
	}

	// Interaction volume
	if lead.Interactions > 10 {
		score += 10
	} else if lead.Interactions > 5 {
		score += 5
	}

	// Source quality
	if highQualitySources[strings.ToLower(lead.Source)] {
		score += 8
	}

	// Sector-historical conversion rate, weighted lightly
	sectorRate := 0.5
	if rates != nil {
		sectorRate = rates.SectorConversionRate(lead.Company)
	}
	score += (sectorRate - 0.5) * 20

	// Ideal-customer-profile fit, weighted lightly
	score += (icpFit(lead) - 0.5) * 12

	return clamp(score, 0, 100)
}

// icpFit scores the lead against the ideal customer profile in [0,1].
// Each satisfied criterion contributes equally; unknown fields count
// as unsatisfied rather than erroring.
func icpFit(lead repository.Lead) float64 {
	criteria := 0
	matched := 0

	criteria++
	if lead.CompanySize != nil && *lead.CompanySize >= 50 && *lead.CompanySize <= 1000 {
		matched++
	}

	criteria++
	if lead.EstimatedBudget != nil && *lead.EstimatedBudget >= 10000 {
		matched++
	}

	criteria++
	if isDecisionMaker(lead.Position) {
		matched++
	}

	return float64(matched) / float64(criteria)
}

var decisionMakerTitles = []string{"chief", "ceo", "cto", "cfo", "founder", "owner", "director", "vp", "head"}

func isDecisionMaker(position string) bool {
	normalized := strings.ToLower(position)
	for _, title := range decisionMakerTitles {
		if strings.Contains(normalized, title) {
			return true
		}
	}
	return false
}
