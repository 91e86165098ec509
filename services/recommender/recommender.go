package recommender

import (
	"stock_advisor_backend/models"
)

// RecommendationEngine narrows an in-memory indicator table down to the
// stocks matching an investor profile. It holds no state and never mutates
// its input, so a single instance is safe for concurrent requests.
type RecommendationEngine struct{}

// NewRecommendationEngine creates a new engine instance
func NewRecommendationEngine() *RecommendationEngine {
	return &RecommendationEngine{}
}

// Recommend runs the four-stage filter cascade over the table and returns
// the deduplicated survivors in first-seen order. An empty table or an
// empty result is a valid outcome; the only error is an unrecognized risk
// preference in the profile.
func (e *RecommendationEngine) Recommend(table []models.StockRecord, profile models.UserProfile) ([]models.StockRecord, error) {
	stages, err := BuildStages(profile)
	if err != nil {
		return nil, err
	}

	survivors := table
	for _, stage := range stages {
		survivors = stage.Apply(survivors)
	}

	return dedupeRecords(survivors), nil
}

// dedupeRecords drops rows that are identical across all five fields,
// keeping the first occurrence. Rows sharing a code but differing in any
// indicator stay distinct.
func dedupeRecords(records []models.StockRecord) []models.StockRecord {
	seen := make(map[models.StockRecord]struct{}, len(records))
	result := make([]models.StockRecord, 0, len(records))

	for _, rec := range records {
		if _, ok := seen[rec]; ok {
			continue
		}
		seen[rec] = struct{}{}
		result = append(result, rec)
	}

	return result
}

// Summary holds the derived metrics shown next to a recommendation list.
// MeanRSI is nil when the result is empty.
type Summary struct {
	Count   int      `json:"count"`
	MeanRSI *float64 `json:"mean_rsi,omitempty"`
}

// Summarize computes the result count and the mean RSI over the result
func Summarize(records []models.StockRecord) Summary {
	summary := Summary{Count: len(records)}
	if len(records) == 0 {
		return summary
	}

	sum := 0.0
	for _, rec := range records {
		sum += rec.RSI
	}
	mean := sum / float64(len(records))
	summary.MeanRSI = &mean

	return summary
}
