package repository

import "strings"

// Historical conversion rates by sector, expressed as fractions.
// Sourced from aggregate pipeline statistics; a live lookup can replace
// this table behind the SectorRateProvider interface without touching
// the scoring code.
var sectorConversionRates = map[string]float64{
	"software":   0.68,
	"tech":       0.65,
	"saas":       0.70,
	"finance":    0.58,
	"bank":       0.55,
	"insurance":  0.52,
	"health":     0.60,
	"medical":    0.57,
	"retail":     0.45,
	"commerce":   0.48,
	"consulting": 0.62,
	"logistics":  0.50,
	"energy":     0.54,
	"education":  0.42,
	"government": 0.35,
}

const defaultSectorRate = 0.50

// SectorConversionRate returns the historical conversion rate for the
// sector inferred from the company identifier. Unknown sectors get a
// neutral rate; the result is always a finite fraction in [0,1].
func (r *Repository) SectorConversionRate(company string) float64 {
	normalized := strings.ToLower(strings.TrimSpace(company))
	if normalized == "" {
		return defaultSectorRate
	}
	for sector, rate := range sectorConversionRates {
		if strings.Contains(normalized, sector) {
			return rate
		}
	}
	return defaultSectorRate
}
