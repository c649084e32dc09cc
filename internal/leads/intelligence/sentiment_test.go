package intelligence

import (
	"strings"
	"testing"

	"crm_intel_backend/internal/leads/repository"
)

func TestAnalyzeSentimentEmptyNotesIsNeutral(t *testing.T) {
	cases := []*string{nil, strPtr(""), strPtr("   ")}
	for _, notes := range cases {
		got := AnalyzeSentiment(repository.Lead{Notes: notes})
		if got.Score != 0 || got.Label != SentimentNeutral {
			t.Fatalf("expected neutral for empty notes, got %v/%s", got.Score, got.Label)
		}
	}
}

func TestAnalyzeSentimentPositiveNotes(t *testing.T) {
	got := AnalyzeSentiment(repository.Lead{Notes: strPtr("Very interested and excited about the demo")})
	if got.Score != 40 || got.Label != SentimentPositive {
		t.Fatalf("expected 40/positive, got %v/%s", got.Score, got.Label)
	}
}

func TestAnalyzeSentimentNegativeNotes(t *testing.T) {
	got := AnalyzeSentiment(repository.Lead{Notes: strPtr("Unhappy with pricing, said it is too expensive")})
	if got.Score != -40 || got.Label != SentimentNegative {
		t.Fatalf("expected -40/negative, got %v/%s", got.Score, got.Label)
	}
}

func TestAnalyzeSentimentMixedNotesCancelOut(t *testing.T) {
	got := AnalyzeSentiment(repository.Lead{Notes: strPtr("interested but too expensive")})
	if got.Score != 0 || got.Label != SentimentNeutral {
		t.Fatalf("expected mixed phrases to cancel, got %v/%s", got.Score, got.Label)
	}
}

func TestAnalyzeSentimentNotInterestedIsNotPositive(t *testing.T) {
	// "not interested" also contains "interested"; both phrases match
	// and the score stays at zero.
	got := AnalyzeSentiment(repository.Lead{Notes: strPtr("They are not interested")})
	if got.Score != 0 || got.Label != SentimentNeutral {
		t.Fatalf("expected neutral, got %v/%s", got.Score, got.Label)
	}
}

func TestAnalyzeSentimentSingleMatchStaysNeutralLabel(t *testing.T) {
	got := AnalyzeSentiment(repository.Lead{Notes: strPtr("seems promising")})
	if got.Score != 20 || got.Label != SentimentNeutral {
		t.Fatalf("expected 20/neutral, got %v/%s", got.Score, got.Label)
	}
}

func TestAnalyzeSentimentIsCaseInsensitive(t *testing.T) {
	got := AnalyzeSentiment(repository.Lead{Notes: strPtr("INTERESTED and EXCITED")})
	if got.Score != 40 || got.Label != SentimentPositive {
		t.Fatalf("expected 40/positive, got %v/%s", got.Score, got.Label)
	}
}

func TestAnalyzeSentimentClampedAtBounds(t *testing.T) {
	all := strings.Join(positiveKeywords, " ")
	got := AnalyzeSentiment(repository.Lead{Notes: &all})
	if got.Score != 100 || got.Label != SentimentPositive {
		t.Fatalf("expected clamp at 100, got %v/%s", got.Score, got.Label)
	}
}
