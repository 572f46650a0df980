package services

import (
	"github.com/internmatch/go-recommender/model"
)

// ScoreBreakdown carries the full per-criterion explanation for one
// (candidate, posting) pair: every rule sub-score, the tokens that
// produced it, and the similarity signal both raw and scaled into the
// 0-100 range used for blending.
type ScoreBreakdown struct {
	Qualification float64 `json:"qualification"`
	Skills        float64 `json:"skills"`
	Location      float64 `json:"location"`
	Languages     float64 `json:"languages"`
	Inclusiveness float64 `json:"inclusiveness"`
	Interests     float64 `json:"interests"`
	Sector        float64 `json:"sector"`

	MatchedSkills    []string `json:"matched_skills"`
	MatchedLanguages []string `json:"matched_languages"`
	MatchedInterests []string `json:"matched_interests"`

	RuleTotal       float64 `json:"rule_total"`
	SimilarityRaw   float64 `json:"similarity_raw"`
	SimilarityScore float64 `json:"similarity_score"`
	FinalScore      float64 `json:"final_score"`
}

// RankedResult is one entry of a recommendation response. It repeats the
// posting attributes a client needs to render the result without a second
// lookup, plus the blended score and its breakdown.
type RankedResult struct {
	PostingID         string         `json:"posting_id"`
	CompanyName       string         `json:"company_name"`
	Title             string         `json:"title"`
	Location          string         `json:"location"`
	RequiredSkills    string         `json:"required_skills"`
	RequiredLanguages string         `json:"required_languages"`
	Sector            string         `json:"sector"`
	Score             float64        `json:"score"`
	Breakdown         ScoreBreakdown `json:"score_breakdown"`
}

// BuildResult reports the outcome of a similarity index (re)build.
// An empty catalog is not an error: Built is false and Reason says why.
type BuildResult struct {
	Built        bool   `json:"built"`
	Reason       string `json:"reason,omitempty"`
	PostingCount int    `json:"posting_count,omitempty"`
	FeatureCount int    `json:"feature_count,omitempty"`
	Persisted    bool   `json:"persisted"`
}

// SaveResult reports the outcome of persisting the index to disk.
type SaveResult struct {
	Saved  bool   `json:"saved"`
	Reason string `json:"reason,omitempty"`
}

// IndexStatus is a read-only snapshot of the cached similarity index.
type IndexStatus struct {
	Loaded        bool     `json:"loaded"`
	PostingCount  int      `json:"posting_count"`
	FeatureCount  int      `json:"feature_count"`
	ArtifactPaths []string `json:"artifact_paths"`
	CheckedAt     string   `json:"checked_at"`
}

// Recommender produces ranked internship recommendations for a candidate
// against a fully materialized posting catalog.
type Recommender interface {
	Recommend(candidate model.CandidateProfile, postings []model.PostingRecord, topN int, minScore float64) ([]RankedResult, error)
}

// IndexManager manages the lifecycle of the process-wide similarity index cache.
type IndexManager interface {
	RebuildIndex(postings []model.PostingRecord, maxFeatures int) (BuildResult, error)
	PersistIndex() SaveResult
	LoadIndex() bool
	IndexStatus() IndexStatus
}

// JobManager defines read operations for background jobs
type JobManager interface {
	GetJob(jobID string) (*model.Job, error)
	ListJobs(status *model.JobStatus) []*model.Job
}

// RecommendationEngine combines everything the HTTP layer needs from the core.
type RecommendationEngine interface {
	Recommender
	IndexManager
}
