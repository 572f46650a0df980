package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/go-recommender/services"
)

// API holds dependencies for API handlers, primarily the recommendation engine.
type API struct {
	engine services.RecommendationEngine
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.RecommendationEngine) *API {
	return &API{engine: engine}
}

// SetupRoutes defines all the API routes for the recommendation service.
// adminToken guards the admin group; an empty token leaves the group open
// (local development).
func SetupRoutes(router *gin.Engine, engine services.RecommendationEngine, adminToken string) {
	apiHandler := NewAPI(engine)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Recommendation route
	router.POST("/recommend", apiHandler.RecommendHandler)

	// Job management routes
	jobRoutes := router.Group("/jobs")
	{
		jobRoutes.GET("", apiHandler.ListJobsHandler)              // List jobs, optional ?status= filter
		jobRoutes.GET("/metrics", apiHandler.GetJobMetricsHandler) // Get job performance metrics
		jobRoutes.GET("/:jobId", apiHandler.GetJobHandler)         // Get job status by ID
	}

	// Admin routes for index lifecycle management
	adminRoutes := router.Group("/admin")
	adminRoutes.Use(AdminTokenMiddleware(adminToken))
	{
		adminRoutes.POST("/rebuild-index", apiHandler.RebuildIndexHandler) // Rebuild the similarity index
		adminRoutes.GET("/index-status", apiHandler.IndexStatusHandler)    // Inspect the cached index
	}
}

// HealthCheckHandler reports service liveness and whether the similarity
// index is currently loaded.
func (api *API) HealthCheckHandler(c *gin.Context) {
	status := api.engine.IndexStatus()
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"index_loaded": status.Loaded,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
