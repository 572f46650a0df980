package engine

import (
	"context"
	"fmt"
	"strconv"

	"github.com/internmatch/go-recommender/internal/errors"
	"github.com/internmatch/go-recommender/model"
)

// RebuildIndexAsync runs RebuildIndex on a background worker and returns a
// job ID immediately. Intended for callers reacting to catalog mutations,
// where the response must not wait for a model fit over the full catalog.
func (e *Engine) RebuildIndexAsync(postings []model.PostingRecord, maxFeatures int) (string, error) {
	if e == nil || !e.initialized {
		return "", errors.ErrEngineNotInitialized
	}

	jobID := e.jobManager.CreateJob(model.JobTypeRebuildIndex, map[string]string{
		"posting_count": strconv.Itoa(len(postings)),
	})

	err := e.jobManager.ExecuteJob(jobID, func(ctx context.Context, job *model.Job) error {
		return e.executeRebuildJob(ctx, postings, maxFeatures, jobID)
	})
	if err != nil {
		return "", fmt.Errorf("failed to start index rebuild job: %w", err)
	}
	return jobID, nil
}

// executeRebuildJob executes the rebuild job.
func (e *Engine) executeRebuildJob(_ context.Context, postings []model.PostingRecord, maxFeatures int, jobID string) error {
	e.jobManager.UpdateJobProgress(jobID, 0, len(postings), "Fitting similarity model")

	result, err := e.RebuildIndex(postings, maxFeatures)
	if err != nil {
		return err
	}

	// An empty catalog is a degraded-signal condition, not a job failure:
	// the index was cleared as requested.
	if !result.Built {
		e.jobManager.UpdateJobProgress(jobID, 0, 0, "Catalog empty; index cleared ("+result.Reason+")")
		return nil
	}

	message := fmt.Sprintf("Indexed %d postings (%d features)", result.PostingCount, result.FeatureCount)
	if !result.Persisted {
		message += "; persistence failed"
	}
	e.jobManager.UpdateJobProgress(jobID, result.PostingCount, result.PostingCount, message)
	return nil
}
