// Package testing provides utilities and helpers for testing the recommender.
package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internmatch/go-recommender/config"
	"github.com/internmatch/go-recommender/internal/engine"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// CreateTestEngine creates a new engine instance for testing with automatic cleanup
func CreateTestEngine(t *testing.T) *engine.Engine {
	settings := config.DefaultSettings()
	settings.CacheDir = t.TempDir()

	eng := engine.NewEngine(settings)
	t.Cleanup(eng.Stop)

	return eng
}

// SampleCandidate returns a candidate profile that matches SamplePostings well
func SampleCandidate() model.CandidateProfile {
	return model.CandidateProfile{
		ID:             "cand1",
		Qualification:  "Graduation",
		Skills:         "c, python",
		Languages:      "english",
		CurrentAddress: "12 Main Road, Coimbatore",
		Interests:      "software",
	}
}

// SamplePostings returns a small internship catalog for tests
func SamplePostings() []model.PostingRecord {
	return []model.PostingRecord{
		{
			ID:                    "p1",
			CompanyName:           "Acme Software",
			Title:                 "Software Intern",
			RequiredQualification: "Graduation",
			RequiredSkills:        "c, python",
			RequiredLanguages:     "english",
			Location:              "Coimbatore",
			Sector:                "IT",
		},
		{
			ID:             "p2",
			CompanyName:    "Brush Studio",
			Title:          "Design Intern",
			RequiredSkills: "figma, illustrator",
			Location:       "Chennai",
			Sector:         "Design",
		},
		{
			ID:             "p3",
			CompanyName:    "Ledger & Co",
			Title:          "Accounting Intern",
			RequiredSkills: "tally, excel",
			Location:       "Madurai",
			Sector:         "Finance",
		},
	}
}

// JobPollingOptions configures job polling behavior
type JobPollingOptions struct {
	Timeout      time.Duration
	PollInterval time.Duration
	LogProgress  bool
}

// DefaultJobPollingOptions returns sensible defaults for job polling
func DefaultJobPollingOptions() JobPollingOptions {
	return JobPollingOptions{
		Timeout:      10 * time.Second,
		PollInterval: 50 * time.Millisecond,
		LogProgress:  true,
	}
}

// WaitForJobCompletion polls a job until it completes or times out
func WaitForJobCompletion(t *testing.T, jobManager services.JobManager, jobID string, opts JobPollingOptions) *model.Job {
	timeout := time.After(opts.Timeout)
	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout:
			t.Fatalf("Job %s did not complete within %v timeout", jobID, opts.Timeout)
		case <-ticker.C:
			job, err := jobManager.GetJob(jobID)
			require.NoError(t, err, "Failed to get job status")

			switch job.Status {
			case model.JobStatusCompleted:
				if opts.LogProgress {
					t.Logf("Job %s completed successfully", jobID)
				}
				return job
			case model.JobStatusFailed:
				t.Fatalf("Job %s failed: %s", jobID, job.Error)
			case model.JobStatusRunning:
				if opts.LogProgress && job.Progress != nil {
					t.Logf("Job %s progress: %d/%d - %s",
						jobID,
						job.Progress.Current,
						job.Progress.Total,
						job.Progress.Message)
				}
			}
		}
	}
}

// AssertJobCompleted verifies that a job completed successfully
func AssertJobCompleted(t *testing.T, job *model.Job, expectedType model.JobType) {
	assert.Equal(t, model.JobStatusCompleted, job.Status, "Job should be completed")
	assert.Equal(t, expectedType, job.Type, "Job type should match")
	assert.NotNil(t, job.CompletedAt, "Job should have completion timestamp")
	assert.Empty(t, job.Error, "Job should not have error")
}
