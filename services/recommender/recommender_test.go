package recommender

import (
	"testing"

	"stock_advisor_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() []models.StockRecord {
	return []models.StockRecord{
		{Code: "001", K: 20, D: 20, J: 20, RSI: 25},
		{Code: "002", K: 50, D: 50, J: 50, RSI: 50},
		{Code: "003", K: 80, D: 80, J: 80, RSI: 75},
		{Code: "004", K: 50, D: 50, J: 50, RSI: 35},
		{Code: "005", K: 20, D: 25, J: 15, RSI: 45},
	}
}

func TestRecommendConservativeProfile(t *testing.T) {
	engine := NewRecommendationEngine()

	profile := models.UserProfile{
		RiskPreference:        models.RiskAverse,
		AssetSize:             50000,
		MaritalStatus:         models.MaritalMarried,
		ExpectedReturnPercent: 3,
	}

	result, err := engine.Recommend(sampleTable(), profile)
	require.NoError(t, err)

	// Only 001 is cold on all four indicators with RSI below 30
	require.Len(t, result, 1)
	assert.Equal(t, "001", result[0].Code)
}

func TestRecommendRiskAverseFailsAssetBracket(t *testing.T) {
	// Stage 1 passes (K, D, J < 30 and RSI < 50) but the small asset
	// bracket demands RSI < 30, so RSI 40 is filtered out.
	engine := NewRecommendationEngine()

	table := []models.StockRecord{
		{Code: "001", K: 20, D: 20, J: 20, RSI: 40},
	}
	profile := models.UserProfile{
		RiskPreference:        models.RiskAverse,
		AssetSize:             50000,
		MaritalStatus:         models.MaritalMarried,
		ExpectedReturnPercent: 3,
	}

	result, err := engine.Recommend(table, profile)
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRecommendNeutralSingleMidBracket(t *testing.T) {
	engine := NewRecommendationEngine()

	table := []models.StockRecord{
		{Code: "002", K: 50, D: 50, J: 50, RSI: 50},
	}
	profile := models.UserProfile{
		RiskPreference:        models.RiskNeutral,
		AssetSize:             500000,
		MaritalStatus:         models.MaritalSingle,
		ExpectedReturnPercent: 7,
	}

	result, err := engine.Recommend(table, profile)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, models.StockRecord{Code: "002", K: 50, D: 50, J: 50, RSI: 50}, result[0])
}

func TestRecommendEmptyTable(t *testing.T) {
	engine := NewRecommendationEngine()

	result, err := engine.Recommend(nil, models.DefaultProfile())
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestRecommendInvalidRiskPreference(t *testing.T) {
	engine := NewRecommendationEngine()

	profile := models.UserProfile{
		RiskPreference:        "unknown",
		AssetSize:             100000,
		MaritalStatus:         models.MaritalMarried,
		ExpectedReturnPercent: 5,
	}

	result, err := engine.Recommend(sampleTable(), profile)
	require.ErrorIs(t, err, ErrInvalidRiskPreference)
	assert.Nil(t, result)
}

func TestRecommendIsPureAndIdempotent(t *testing.T) {
	engine := NewRecommendationEngine()
	table := sampleTable()
	original := make([]models.StockRecord, len(table))
	copy(original, table)

	profile := models.UserProfile{
		RiskPreference:        models.RiskNeutral,
		AssetSize:             500000,
		MaritalStatus:         models.MaritalSingle,
		ExpectedReturnPercent: 7,
	}

	first, err := engine.Recommend(table, profile)
	require.NoError(t, err)
	second, err := engine.Recommend(table, profile)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, original, table, "input table must not be mutated")
}

func TestRecommendIsSubsetOfInput(t *testing.T) {
	engine := NewRecommendationEngine()
	table := sampleTable()

	inputSet := make(map[models.StockRecord]bool, len(table))
	for _, rec := range table {
		inputSet[rec] = true
	}

	profiles := []models.UserProfile{
		{RiskPreference: models.RiskAverse, AssetSize: 10000, MaritalStatus: models.MaritalMarried, ExpectedReturnPercent: 2},
		{RiskPreference: models.RiskNeutral, AssetSize: 500000, MaritalStatus: models.MaritalSingle, ExpectedReturnPercent: 7},
		{RiskPreference: models.RiskSeeking, AssetSize: 5000000, MaritalStatus: models.MaritalSingle, ExpectedReturnPercent: 20},
	}

	for _, profile := range profiles {
		result, err := engine.Recommend(table, profile)
		require.NoError(t, err)
		for _, rec := range result {
			assert.True(t, inputSet[rec], "result row %+v not present in input", rec)
		}
	}
}

func TestRecommendNarrowsStageOneResult(t *testing.T) {
	// The full cascade can only shrink what the risk stage alone keeps.
	profile := models.UserProfile{
		RiskPreference:        models.RiskNeutral,
		AssetSize:             500000,
		MaritalStatus:         models.MaritalSingle,
		ExpectedReturnPercent: 7,
	}
	table := sampleTable()

	riskStage, err := riskPreferenceStage(profile.RiskPreference)
	require.NoError(t, err)
	stageOneOnly := riskStage.Apply(table)

	stageOneSet := make(map[models.StockRecord]bool, len(stageOneOnly))
	for _, rec := range stageOneOnly {
		stageOneSet[rec] = true
	}

	engine := NewRecommendationEngine()
	full, err := engine.Recommend(table, profile)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(full), len(stageOneOnly))
	for _, rec := range full {
		assert.True(t, stageOneSet[rec])
	}
}

func TestRecommendDeduplicatesExactRows(t *testing.T) {
	engine := NewRecommendationEngine()

	table := []models.StockRecord{
		{Code: "002", K: 50, D: 50, J: 50, RSI: 50},
		{Code: "002", K: 50, D: 50, J: 50, RSI: 50},
		{Code: "002", K: 50, D: 50, J: 50, RSI: 55}, // same code, different RSI, stays
	}
	profile := models.UserProfile{
		RiskPreference:        models.RiskNeutral,
		AssetSize:             500000,
		MaritalStatus:         models.MaritalSingle,
		ExpectedReturnPercent: 7,
	}

	result, err := engine.Recommend(table, profile)
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, 50.0, result[0].RSI)
	assert.Equal(t, 55.0, result[1].RSI)
}

func TestSummarize(t *testing.T) {
	records := []models.StockRecord{
		{Code: "a", RSI: 40},
		{Code: "b", RSI: 60},
	}

	summary := Summarize(records)
	assert.Equal(t, 2, summary.Count)
	require.NotNil(t, summary.MeanRSI)
	assert.InDelta(t, 50.0, *summary.MeanRSI, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Equal(t, 0, summary.Count)
	assert.Nil(t, summary.MeanRSI)
}
