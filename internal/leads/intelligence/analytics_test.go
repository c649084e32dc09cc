package intelligence

import (
	"testing"

	"crm_intel_backend/internal/leads/repository"
)

func TestAggregateEmptyCollection(t *testing.T) {
	summary := Aggregate(nil)
	if summary.Total != 0 || summary.Qualified != 0 || summary.AvgScore != 0 || summary.OverallHealth != 0 {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
	if summary.BySource == nil || summary.ByStatus == nil {
		t.Fatal("expected maps to be initialized even when empty")
	}
}

func TestAggregateComputesAllStatistics(t *testing.T) {
	hot := EnrichedLead{
		Lead:    repository.Lead{Score: 80, Source: "referral", Status: "new"},
		Signals: SignalBundle{ConversionProbability: 80, RiskScore: 10},
	}
	cold := EnrichedLead{
		Lead:    repository.Lead{Score: 40},
		Signals: SignalBundle{ConversionProbability: 20, RiskScore: 70},
	}

	summary := Aggregate([]EnrichedLead{hot, cold})

	if summary.Total != 2 {
		t.Fatalf("expected total 2, got %d", summary.Total)
	}
	if summary.Qualified != 1 || summary.Hot != 1 || summary.Cold != 1 || summary.AtRisk != 1 {
		t.Fatalf("unexpected counts: %+v", summary)
	}
	if summary.BySource["referral"] != 1 || summary.BySource[unknownBucket] != 1 {
		t.Fatalf("unexpected source buckets: %v", summary.BySource)
	}
	if summary.ByStatus["new"] != 1 || summary.ByStatus[unknownBucket] != 1 {
		t.Fatalf("unexpected status buckets: %v", summary.ByStatus)
	}
	if summary.AvgScore != 60 {
		t.Fatalf("expected avg score 60, got %v", summary.AvgScore)
	}
	if summary.AvgConversion != 50 {
		t.Fatalf("expected avg conversion 50, got %v", summary.AvgConversion)
	}
	if summary.ConversionRate != 50 {
		t.Fatalf("expected conversion rate 50, got %v", summary.ConversionRate)
	}
	// (60+50)/2 minus the at-risk share of 50 percent.
	if summary.OverallHealth != 5 {
		t.Fatalf("expected overall health 5, got %v", summary.OverallHealth)
	}
}

func TestAggregateThresholdsAreExclusive(t *testing.T) {
	boundary := EnrichedLead{
		Lead:    repository.Lead{Score: 60},
		Signals: SignalBundle{ConversionProbability: 70, RiskScore: 60},
	}
	summary := Aggregate([]EnrichedLead{boundary})
	if summary.Qualified != 0 || summary.Hot != 0 || summary.AtRisk != 0 {
		t.Fatalf("expected boundary values to stay out of buckets, got %+v", summary)
	}
	if summary.Cold != 0 {
		t.Fatalf("conversion 70 is not cold, got %+v", summary)
	}
}
