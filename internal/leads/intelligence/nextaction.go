package intelligence

import (
	"fmt"
	"time"

	"crm_intel_backend/internal/leads/repository"
)

// AdviseNextAction picks the recommended next step for a lead.
// The rules form a decision table evaluated in strict order; the first
// matching rule wins and every branch is terminal. Reordering the rules
// changes behavior, so keep them exactly as listed.
func AdviseNextAction(lead repository.Lead, conversion float64, now time.Time) NextAction {
	days := daysSince(lead.LastContactAt, now)

	// Rule 1: hot lead going cold, call now.
	if conversion > 70 && days > 3 {
		return NextAction{
			Kind:        ActionCall,
			Priority:    PriorityUrgent,
			Reason:      fmt.Sprintf("High conversion likelihood but no contact for %d days", days),
			Script:      "Reference your last conversation and propose a concrete next step with a date.",
			DisplayHint: "phone-urgent",
		}
	}

	// Rule 2: warm and engaged, keep momentum over email.
	if conversion >= 50 && lead.Interactions > 8 {
		return NextAction{
			Kind:        ActionEmail,
			Priority:    PriorityHigh,
			Reason:      "Strong engagement with good conversion likelihood",
			Script:      "Send a tailored proposal or case study matching their interest.",
			DisplayHint: "mail-high",
		}
	}

	// Rule 3: cold and very stale, try to re-engage.
	if conversion < 40 && days > 30 {
		return NextAction{
			Kind:        ActionReengage,
			Priority:    PriorityMedium,
			Reason:      fmt.Sprintf("Low conversion likelihood and %d days without contact", days),
			Script:      "Open with fresh value: a new feature, pricing change, or relevant insight.",
			DisplayHint: "refresh-medium",
		}
	}

	// Rule 4: no contact history at all, qualify first.
	if lead.LastContactAt == nil {
		return NextAction{
			Kind:        ActionQualify,
			Priority:    PriorityHigh,
			Reason:      "Lead has never been contacted",
			Script:      "Introduce yourself, confirm fit, budget and timeline.",
			DisplayHint: "clipboard-high",
		}
	}

	// Rule 5: everything else stays in nurture.
	return NextAction{
		Kind:        ActionNurture,
		Priority:    PriorityLow,
		Reason:      "No urgent signal detected",
		Script:      "Keep the lead on the regular nurture cadence.",
		DisplayHint: "leaf-low",
	}
}
