package intelligence

import (
	"fmt"
	"time"

	"crm_intel_backend/internal/leads/repository"
)

// GenerateInsights turns signal combinations into human-readable
// records. Each rule independently appends at most one insight; the
// output preserves the rule evaluation order and may be empty.
func GenerateInsights(lead repository.Lead, bundle SignalBundle, now time.Time) []Insight {
	insights := make([]Insight, 0, 3)

	if bundle.ConversionProbability > 80 {
		insights = append(insights, Insight{
			Kind:    InsightOpportunity,
			Icon:    "flame",
			Title:   "Hot lead",
			Message: fmt.Sprintf("%s has a %.0f%% conversion likelihood. Prioritize this week.", lead.Name, bundle.ConversionProbability),
		})
	}

	if bundle.Sentiment.Score < -30 {
		insights = append(insights, Insight{
			Kind:    InsightWarning,
			Icon:    "alert-triangle",
			Title:   "Negative sentiment",
			Message: fmt.Sprintf("Recent notes on %s read negative. Address concerns before pitching.", lead.Name),
		})
	}

	if days := daysSince(lead.LastContactAt, now); days > 14 && bundle.ConversionProbability > 50 {
		insights = append(insights, Insight{
			Kind:            InsightAction,
			Icon:            "clock",
			Title:           "Going cold",
			Message:         fmt.Sprintf("No contact with %s for %d days despite good conversion odds.", lead.Name, days),
			SuggestedAction: string(bundle.NextAction.Kind),
		})
	}

	return insights
}
