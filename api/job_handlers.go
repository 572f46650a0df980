package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/go-recommender/internal/engine"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// GetJobHandler handles requests to get job status by ID
func (api *API) GetJobHandler(c *gin.Context) {
	jobID := c.Param("jobId")

	if jobManager, ok := api.engine.(services.JobManager); ok {
		job, err := jobManager.GetJob(jobID)
		if err != nil {
			SendJobNotFoundError(c, jobID)
			return
		}

		c.JSON(http.StatusOK, job)
	} else {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job management not supported by this engine"})
	}
}

// ListJobsHandler handles requests to list background jobs
func (api *API) ListJobsHandler(c *gin.Context) {
	statusParam := c.Query("status")

	var statusFilter *model.JobStatus
	if statusParam != "" {
		status := model.JobStatus(statusParam)
		statusFilter = &status
	}

	if jobManager, ok := api.engine.(services.JobManager); ok {
		jobs := jobManager.ListJobs(statusFilter)
		c.JSON(http.StatusOK, gin.H{
			"jobs":  jobs,
			"total": len(jobs),
		})
	} else {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job management not supported by this engine"})
	}
}

// GetJobMetricsHandler handles requests to get job performance metrics
func (api *API) GetJobMetricsHandler(c *gin.Context) {
	if engineWithMetrics, ok := api.engine.(*engine.Engine); ok {
		// Metrics already come back as a copy without the mutex.
		metrics := engineWithMetrics.JobMetrics()

		response := gin.H{
			"metrics":          metrics,
			"success_rate":     engineWithMetrics.JobSuccessRate(),
			"current_workload": engineWithMetrics.CurrentWorkload(),
		}

		c.JSON(http.StatusOK, response)
	} else {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Job metrics not supported by this engine"})
	}
}
