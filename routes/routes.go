package routes

import (
	"stock_advisor_backend/config"
	"stock_advisor_backend/controllers"
	"stock_advisor_backend/middleware"
	"stock_advisor_backend/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes sets up all API routes
func SetupRoutes(router *gin.Engine, cfg *config.Config) {
	// Initialize controllers
	recommendationController := controllers.NewRecommendationController(services.GlobalDatasetService)
	datasetController := controllers.NewDatasetController(services.GlobalDatasetService)
	authController := controllers.NewAuthController(cfg)

	// API v1 group
	api := router.Group("/api/v1")
	{
		// Recommendation routes
		recommendations := api.Group("/recommendations")
		{
			recommendations.POST("", recommendationController.Recommend)
			recommendations.GET("/presets", recommendationController.GetPresetProfiles)
			recommendations.POST("/presets/:id", recommendationController.RunPreset)
		}

		// Dataset routes
		dataset := api.Group("/dataset")
		{
			dataset.GET("", datasetController.GetDataset)
			dataset.GET("/status", datasetController.GetDatasetStatus)
		}

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/login", middleware.LoginRateLimitMiddleware(), authController.Login)

			actions := admin.Group("/actions")
			actions.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
			{
				actions.POST("/reload-dataset", datasetController.ReloadDataset)
			}
		}
	}

	// Realtime dataset events
	router.GET("/ws", func(c *gin.Context) {
		services.GlobalRealtimeService.HandleWebSocket(c.Writer, c.Request)
	})
}
