// Package intelligence derives decision-support signals for leads: a
// conversion estimate, a recommended next action, sentiment, peer
// similarity, risk, composite health and priority, and human-readable
// insights. Listings and per-lead signal bundles are cached with
// time-bounded caches that are cleared on any lead mutation.
package intelligence

import (
	"time"

	"crm_intel_backend/internal/leads/repository"

	"github.com/google/uuid"
)

// ActionKind is a recommended next step for a lead.
type ActionKind string

const (
	ActionCall     ActionKind = "call"
	ActionEmail    ActionKind = "email"
	ActionReengage ActionKind = "reengage"
	ActionQualify  ActionKind = "qualify"
	ActionNurture  ActionKind = "nurture"
)

// Priority ranks how soon an action should happen.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Tier buckets a lead for triage ordering.
type Tier string

const (
	TierP0Urgent Tier = "P0-Urgent"
	TierP1High   Tier = "P1-High"
	TierP2AtRisk Tier = "P2-AtRisk"
	TierP3Normal Tier = "P3-Normal"
)

// SentimentLabel classifies the sentiment score.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// NextAction is the advisor's recommendation for one lead.
type NextAction struct {
	Kind        ActionKind `json:"kind"`
	Priority    Priority   `json:"priority"`
	Reason      string     `json:"reason"`
	Script      string     `json:"script"`
	DisplayHint string     `json:"displayHint"`
}

// Sentiment is the analyzed tone of a lead's notes.
type Sentiment struct {
	Score float64        `json:"score"`
	Label SentimentLabel `json:"label"`
}

// SimilarLead references a peer lead with its similarity score.
type SimilarLead struct {
	LeadID uuid.UUID `json:"leadId"`
	Name   string    `json:"name"`
	Score  float64   `json:"score"`
}

// InsightKind categorizes an insight.
type InsightKind string

const (
	InsightOpportunity InsightKind = "opportunity"
	InsightWarning     InsightKind = "warning"
	InsightAction      InsightKind = "action"
)

// Insight is a human-readable observation derived from signal combinations.
type Insight struct {
	Kind            InsightKind `json:"kind"`
	Icon            string      `json:"icon"`
	Title           string      `json:"title"`
	Message         string      `json:"message"`
	SuggestedAction string      `json:"suggestedAction,omitempty"`
}

// SignalBundle is the full set of derived signals for one lead.
// Immutable once computed; overwritten wholesale on refresh.
type SignalBundle struct {
	ConversionProbability float64       `json:"conversionProbability"`
	NextAction            NextAction    `json:"nextAction"`
	Sentiment             Sentiment     `json:"sentiment"`
	SimilarLeads          []SimilarLead `json:"similarLeads"`
	RiskScore             float64       `json:"riskScore"`
	HealthScore           float64       `json:"healthScore"`
	PriorityTier          Tier          `json:"priorityTier"`
	Insights              []Insight     `json:"insights"`
}

// EnrichedLead pairs a lead with its signal bundle.
type EnrichedLead struct {
	Lead    repository.Lead
	Signals SignalBundle
}

func clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// daysSince returns whole days between ts and now, or -1 when ts is nil.
func daysSince(ts *time.Time, now time.Time) int {
	if ts == nil {
		return -1
	}
	return int(now.Sub(*ts).Hours() / 24)
}
