package intelligence

import "testing"

func TestHealthScore(t *testing.T) {
	if got := HealthScore(80, 20); got != 60 {
		t.Fatalf("expected 60, got %v", got)
	}
	if got := HealthScore(100, 0); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
}

func TestHealthScoreNeverNegative(t *testing.T) {
	for conv := 0.0; conv <= 100; conv += 25 {
		for risk := 0.0; risk <= 100; risk += 25 {
			got := HealthScore(conv, risk)
			if got < 0 || got > 100 {
				t.Fatalf("health out of range for conv=%v risk=%v: %v", conv, risk, got)
			}
		}
	}
	if got := HealthScore(20, 80); got != 0 {
		t.Fatalf("expected clamp to zero, got %v", got)
	}
}

func TestPriorityTier(t *testing.T) {
	cases := []struct {
		conversion float64
		risk       float64
		want       Tier
	}{
		{80, 10, TierP0Urgent},
		{80, 90, TierP0Urgent}, // conversion rule is checked first
		{60, 20, TierP1High},
		{60, 70, TierP2AtRisk},
		{40, 70, TierP2AtRisk},
		{40, 10, TierP3Normal},
		{55, 45, TierP3Normal},
	}
	for _, tc := range cases {
		if got := PriorityTier(tc.conversion, tc.risk); got != tc.want {
			t.Errorf("PriorityTier(%v, %v): expected %s, got %s", tc.conversion, tc.risk, tc.want, got)
		}
	}
}
