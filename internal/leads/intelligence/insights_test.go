package intelligence

import (
	"testing"

	"crm_intel_backend/internal/leads/repository"
)

func TestGenerateInsightsHotLead(t *testing.T) {
	lead := newLead("Alpha")
	lead.LastContactAt = daysAgo(1)
	bundle := SignalBundle{ConversionProbability: 85}

	insights := GenerateInsights(lead, bundle, testNow)
	if len(insights) != 1 {
		t.Fatalf("expected one insight, got %d", len(insights))
	}
	if insights[0].Kind != InsightOpportunity || insights[0].Icon != "flame" {
		t.Fatalf("expected opportunity/flame, got %s/%s", insights[0].Kind, insights[0].Icon)
	}
}

func TestGenerateInsightsNegativeSentiment(t *testing.T) {
	lead := newLead("Alpha")
	lead.LastContactAt = daysAgo(1)
	bundle := SignalBundle{Sentiment: Sentiment{Score: -40, Label: SentimentNegative}}

	insights := GenerateInsights(lead, bundle, testNow)
	if len(insights) != 1 || insights[0].Kind != InsightWarning {
		t.Fatalf("expected a single warning, got %+v", insights)
	}
}

func TestGenerateInsightsGoingColdSuggestsNextAction(t *testing.T) {
	lead := newLead("Alpha")
	lead.LastContactAt = daysAgo(20)
	bundle := SignalBundle{
		ConversionProbability: 60,
		NextAction:            NextAction{Kind: ActionCall},
	}

	insights := GenerateInsights(lead, bundle, testNow)
	if len(insights) != 1 || insights[0].Kind != InsightAction {
		t.Fatalf("expected a single action insight, got %+v", insights)
	}
	if insights[0].SuggestedAction != string(ActionCall) {
		t.Fatalf("expected suggested action %q, got %q", ActionCall, insights[0].SuggestedAction)
	}
}

func TestGenerateInsightsQuietLeadYieldsNothing(t *testing.T) {
	lead := newLead("Alpha")
	lead.LastContactAt = daysAgo(2)
	bundle := SignalBundle{ConversionProbability: 40}

	if insights := GenerateInsights(lead, bundle, testNow); len(insights) != 0 {
		t.Fatalf("expected no insights, got %d", len(insights))
	}
}

func TestGenerateInsightsPreservesRuleOrder(t *testing.T) {
	lead := newLead("Alpha")
	lead.LastContactAt = daysAgo(20)
	bundle := SignalBundle{
		ConversionProbability: 85,
		Sentiment:             Sentiment{Score: -40},
		NextAction:            NextAction{Kind: ActionCall},
	}

	insights := GenerateInsights(lead, bundle, testNow)
	if len(insights) != 3 {
		t.Fatalf("expected three insights, got %d", len(insights))
	}
	wantOrder := []InsightKind{InsightOpportunity, InsightWarning, InsightAction}
	for i, kind := range wantOrder {
		if insights[i].Kind != kind {
			t.Fatalf("expected %s at position %d, got %s", kind, i, insights[i].Kind)
		}
	}
}

func TestGenerateInsightsNeverContactedNotGoingCold(t *testing.T) {
	lead := repository.Lead{Name: "Alpha"}
	bundle := SignalBundle{ConversionProbability: 60}

	if insights := GenerateInsights(lead, bundle, testNow); len(insights) != 0 {
		t.Fatalf("expected no going-cold insight without contact history, got %d", len(insights))
	}
}
