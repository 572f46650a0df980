package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/go-recommender/internal/engine"
	"github.com/internmatch/go-recommender/model"
)

// RebuildIndexRequest carries the catalog snapshot the similarity index
// should be rebuilt from.
type RebuildIndexRequest struct {
	Postings    []model.PostingRecord `json:"postings"`
	MaxFeatures int                   `json:"max_features,omitempty"` // Optional: override the configured vocabulary bound
}

// RebuildIndexHandler handles admin requests to rebuild the similarity index.
// The rebuild runs in the background when the engine supports jobs; the
// response carries the job ID to poll.
func (api *API) RebuildIndexHandler(c *gin.Context) {
	var req RebuildIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if concreteEngine, ok := api.engine.(*engine.Engine); ok {
		jobID, err := concreteEngine.RebuildIndexAsync(req.Postings, req.MaxFeatures)
		if err != nil {
			SendJobExecutionError(c, "index rebuild", err)
			return
		}
		c.JSON(http.StatusAccepted, gin.H{
			"status":  "accepted",
			"message": "Index rebuild started",
			"job_id":  jobID,
		})
		return
	}

	// Synchronous fallback for engines without a job manager.
	result, err := api.engine.RebuildIndex(req.Postings, req.MaxFeatures)
	if err != nil {
		SendRebuildError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// IndexStatusHandler reports the state of the cached similarity index.
func (api *API) IndexStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, api.engine.IndexStatus())
}
