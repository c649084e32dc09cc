package intelligence

import (
	"strings"

	"crm_intel_backend/internal/leads/repository"
)

const sentimentStep = 20.0

var positiveKeywords = []string{
	"interested", "excited", "great", "excellent", "positive",
	"promising", "keen", "ready", "impressed", "love",
}

var negativeKeywords = []string{
	"not interested", "unhappy", "angry", "frustrated", "cancel",
	"competitor", "too expensive", "delay", "no budget", "unresponsive",
}

// AnalyzeSentiment scans the lead's notes for known positive and
// negative phrases. Each matched phrase moves the score by a fixed
// step; the total is clamped to [-100,100]. Empty notes are neutral.
func AnalyzeSentiment(lead repository.Lead) Sentiment {
	if lead.Notes == nil || strings.TrimSpace(*lead.Notes) == "" {
		return Sentiment{Score: 0, Label: SentimentNeutral}
	}

	notes := strings.ToLower(*lead.Notes)
	score := 0.0

	for _, keyword := range positiveKeywords {
		if strings.Contains(notes, keyword) {
			score += sentimentStep
		}
	}
	for _, keyword := range negativeKeywords {
		if strings.Contains(notes, keyword) {
			score -= sentimentStep
		}
	}

	score = clamp(score, -100, 100)
	return Sentiment{Score: score, Label: sentimentLabel(score)}
}

func sentimentLabel(score float64) SentimentLabel {
	switch {
	case score > 30:
		return SentimentPositive
	case score < -30:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
