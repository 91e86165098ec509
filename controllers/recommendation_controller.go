package controllers

import (
	"errors"
	"net/http"

	"stock_advisor_backend/models"
	"stock_advisor_backend/services"
	"stock_advisor_backend/services/recommender"

	"github.com/gin-gonic/gin"
)

// RecommendationController handles stock recommendation requests
type RecommendationController struct {
	dataset *services.DatasetService
	engine  *recommender.RecommendationEngine
}

// NewRecommendationController creates a new recommendation controller
func NewRecommendationController(dataset *services.DatasetService) *RecommendationController {
	return &RecommendationController{
		dataset: dataset,
		engine:  recommender.NewRecommendationEngine(),
	}
}

// RecommendationRequest is the user-facing form. Omitted fields fall back
// to the advisory defaults, so numeric fields are pointers to tell "absent"
// apart from a legitimate zero.
type RecommendationRequest struct {
	RiskPreference        models.RiskPreference `json:"risk_preference"`
	AssetSize             *float64              `json:"asset_size"`
	MaritalStatus         models.MaritalStatus  `json:"marital_status"`
	ExpectedReturnPercent *float64              `json:"expected_return_percent"`
}

// toProfile applies defaults and produces the engine input
func (r *RecommendationRequest) toProfile() models.UserProfile {
	profile := models.DefaultProfile()

	if r.RiskPreference != "" {
		profile.RiskPreference = r.RiskPreference
	}
	if r.AssetSize != nil {
		profile.AssetSize = *r.AssetSize
	}
	if r.MaritalStatus != "" {
		profile.MaritalStatus = r.MaritalStatus
	}
	if r.ExpectedReturnPercent != nil {
		profile.ExpectedReturnPercent = *r.ExpectedReturnPercent
	}

	return profile
}

// Recommend filters the dataset against an investor profile
// POST /api/v1/recommendations
func (rc *RecommendationController) Recommend(c *gin.Context) {
	var req RecommendationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rc.respondWithRecommendation(c, req.toProfile())
}

// respondWithRecommendation runs the engine and writes the result envelope
func (rc *RecommendationController) respondWithRecommendation(c *gin.Context, profile models.UserProfile) {
	result, err := rc.engine.Recommend(rc.dataset.Records(), profile)
	if err != nil {
		if errors.Is(err, recommender.ErrInvalidRiskPreference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	summary := recommender.Summarize(result)

	response := gin.H{
		"data":    result,
		"count":   summary.Count,
		"profile": profile,
	}
	if summary.MeanRSI != nil {
		response["mean_rsi"] = *summary.MeanRSI
	} else {
		response["message"] = "No stocks match the given criteria, try adjusting the filters"
	}

	c.JSON(http.StatusOK, response)
}

// GetPresetProfiles returns predefined investor profiles
// GET /api/v1/recommendations/presets
func (rc *RecommendationController) GetPresetProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": presetProfiles()})
}

// RunPreset runs a predefined investor profile
// POST /api/v1/recommendations/presets/:id
func (rc *RecommendationController) RunPreset(c *gin.Context) {
	presetID := c.Param("id")

	var selected models.UserProfile
	found := false

	for _, preset := range presetProfiles() {
		if preset["id"] == presetID {
			if p, ok := preset["profile"].(models.UserProfile); ok {
				selected = p
				found = true
				break
			}
		}
	}

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Preset not found"})
		return
	}

	rc.respondWithRecommendation(c, selected)
}

// presetProfiles returns the predefined investor profiles
func presetProfiles() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"id":          "cautious_saver",
			"name":        "Cautious Saver",
			"description": "Small portfolio, avoids volatility, modest return target",
			"profile": models.UserProfile{
				RiskPreference:        models.RiskAverse,
				AssetSize:             50000,
				MaritalStatus:         models.MaritalMarried,
				ExpectedReturnPercent: 3,
			},
		},
		{
			"id":          "balanced_investor",
			"name":        "Balanced Investor",
			"description": "Mid-size portfolio, balances growth against risk",
			"profile": models.UserProfile{
				RiskPreference:        models.RiskNeutral,
				AssetSize:             500000,
				MaritalStatus:         models.MaritalSingle,
				ExpectedReturnPercent: 7,
			},
		},
		{
			"id":          "aggressive_grower",
			"name":        "Aggressive Grower",
			"description": "Large portfolio chasing momentum, accepts high volatility",
			"profile": models.UserProfile{
				RiskPreference:        models.RiskSeeking,
				AssetSize:             2000000,
				MaritalStatus:         models.MaritalSingle,
				ExpectedReturnPercent: 15,
			},
		},
	}
}
