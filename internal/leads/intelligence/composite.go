package intelligence

// HealthScore combines conversion likelihood and risk into a single
// number: conversion minus risk, clamped to [0,100].
func HealthScore(conversion, risk float64) float64 {
	return clamp(conversion-risk, 0, 100)
}

// PriorityTier buckets a lead by conversion and risk. Rules are
// evaluated in this fixed order; the first match wins.
func PriorityTier(conversion, risk float64) Tier {
	switch {
	case conversion > 70:
		return TierP0Urgent
	case conversion > 50 && risk < 30:
		return TierP1High
	case risk > 60:
		return TierP2AtRisk
	default:
		return TierP3Normal
	}
}
