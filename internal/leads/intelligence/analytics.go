package intelligence

// AnalyticsSummary is a pure reduction over an enriched lead collection.
type AnalyticsSummary struct {
	Total          int            `json:"total"`
	Qualified      int            `json:"qualified"`
	Hot            int            `json:"hot"`
	Cold           int            `json:"cold"`
	AtRisk         int            `json:"atRisk"`
	BySource       map[string]int `json:"bySource"`
	ByStatus       map[string]int `json:"byStatus"`
	AvgScore       float64        `json:"avgScore"`
	AvgConversion  float64        `json:"avgConversion"`
	ConversionRate float64        `json:"conversionRate"`
	OverallHealth  float64        `json:"overallHealth"`
}

const unknownBucket = "unknown"

// Aggregate reduces the collection into summary statistics. An empty
// collection yields explicit zeroes; averages and rates are guarded
// against division by zero.
func Aggregate(enriched []EnrichedLead) AnalyticsSummary {
	summary := AnalyticsSummary{
		Total:    len(enriched),
		BySource: make(map[string]int),
		ByStatus: make(map[string]int),
	}

	if summary.Total == 0 {
		return summary
	}

	var scoreSum, conversionSum float64
	for _, item := range enriched {
		if item.Lead.Score > 60 {
			summary.Qualified++
		}
		if item.Signals.ConversionProbability > 70 {
			summary.Hot++
		}
		if item.Signals.ConversionProbability < 30 {
			summary.Cold++
		}
		if item.Signals.RiskScore > 60 {
			summary.AtRisk++
		}

		summary.BySource[bucketOrUnknown(item.Lead.Source)]++
		summary.ByStatus[bucketOrUnknown(item.Lead.Status)]++

		scoreSum += float64(item.Lead.Score)
		conversionSum += item.Signals.ConversionProbability
	}

	total := float64(summary.Total)
	summary.AvgScore = scoreSum / total
	summary.AvgConversion = conversionSum / total
	summary.ConversionRate = float64(summary.Qualified) / total * 100
	summary.OverallHealth = (summary.AvgScore+summary.AvgConversion)/2 - float64(summary.AtRisk)/total*100

	return summary
}

func bucketOrUnknown(value string) string {
	if value == "" {
		return unknownBucket
	}
	return value
}
