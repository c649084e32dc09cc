package intelligence

import (
	"sort"
	"strings"

	"crm_intel_backend/internal/leads/repository"
)

const maxSimilarLeads = 3

// FindSimilarLeads scores every other lead in the population against
// the given lead and returns the top matches, descending by score.
// The population is an explicit parameter so the computation is
// reproducible; a nil or single-element population yields an empty
// result rather than an error.
func FindSimilarLeads(lead repository.Lead, population []repository.Lead) []SimilarLead {
	matches := make([]SimilarLead, 0, len(population))

	for _, other := range population {
		if other.ID == lead.ID {
			continue
		}
		score := similarityScore(lead, other)
		if score <= 0 {
			continue
		}
		matches = append(matches, SimilarLead{
			LeadID: other.ID,
			Name:   other.Name,
			Score:  score,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > maxSimilarLeads {
		matches = matches[:maxSimilarLeads]
	}
	return matches
}

// similarityScore is a weighted attribute comparison; each matching
// attribute contributes a fixed point value, 100 max.
func similarityScore(a, b repository.Lead) float64 {
	score := 0.0

	if a.Company != "" && strings.EqualFold(a.Company, b.Company) {
		score += 30
	}
	if diff := a.Score - b.Score; diff >= -10 && diff <= 10 {
		score += 25
	}
	if a.Source != "" && strings.EqualFold(a.Source, b.Source) {
		score += 25
	}
	if a.Status != "" && strings.EqualFold(a.Status, b.Status) {
		score += 20
	}

	return score
}
