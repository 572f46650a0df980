package engine

import (
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/internmatch/go-recommender/config"
	"github.com/internmatch/go-recommender/internal/jobs"
	"github.com/internmatch/go-recommender/internal/persistence"
	"github.com/internmatch/go-recommender/internal/scoring"
	"github.com/internmatch/go-recommender/internal/similarity"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

const (
	cacheDirPerm = 0755

	// The four companion artifacts of one persisted index build. A load
	// succeeds only when all four are present and mutually consistent.
	vectorizerFile = "tfidf_vectorizer.gob"
	matrixFile     = "tfidf_matrix.gob"
	idsFile        = "posting_index.gob"
	corpusFile     = "posting_corpus.gob"

	// Rebuilds replace the whole index, so running them one at a time
	// loses nothing.
	maxRebuildWorkers = 1
)

// ReasonEmptyCache is reported when persistence is requested with no index held.
const ReasonEmptyCache = "empty_cache"

// Engine owns the process-wide similarity index cache and combines it with
// the rule scorer into ranked recommendations. It implements the
// services.RecommendationEngine interface.
//
// The mutex guards only the index slot: readers snapshot the pointer at
// call entry, rebuilds construct a complete replacement off to the side
// and swap it in. A reader therefore always observes either the fully-old
// or fully-new index, never a torn mix.
type Engine struct {
	mu         sync.RWMutex
	index      *similarity.Index
	settings   config.Settings
	scorer     *scoring.Scorer
	jobManager *jobs.Manager

	// Set by NewEngine; a zero-value Engine refuses all operations.
	initialized bool
}

// NewEngine creates a recommendation engine and attempts to restore a
// previously persisted index from the settings' cache directory. Missing
// artifacts are not an error: the engine starts in rule-only mode and an
// index can be built later.
func NewEngine(settings config.Settings) *Engine {
	settings.ApplyDefaults()

	eng := &Engine{
		settings:    settings,
		scorer:      scoring.NewScorer(settings.Weights),
		jobManager:  jobs.NewManager(maxRebuildWorkers),
		initialized: true,
	}

	if err := os.MkdirAll(settings.CacheDir, cacheDirPerm); err != nil {
		log.Printf("Warning: Could not create cache directory %s: %v. Proceeding without persistence.", settings.CacheDir, err)
	}

	eng.jobManager.Start()

	if eng.LoadIndex() {
		status := eng.IndexStatus()
		log.Printf("Restored similarity index from %s (%d postings, %d features)",
			settings.CacheDir, status.PostingCount, status.FeatureCount)
	} else {
		log.Printf("No similarity index cache in %s; starting in rule-only mode", settings.CacheDir)
	}
	return eng
}

// Stop gracefully shuts down the engine's background job manager.
func (e *Engine) Stop() {
	if e.jobManager != nil {
		e.jobManager.Stop()
	}
}

// Settings returns a copy of the engine's configuration.
func (e *Engine) Settings() config.Settings {
	return e.settings
}

// currentIndex snapshots the held index pointer. The returned index is
// immutable; computing against it outside the lock is safe.
func (e *Engine) currentIndex() *similarity.Index {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

func (e *Engine) artifactPaths() []string {
	return []string{
		filepath.Join(e.settings.CacheDir, vectorizerFile),
		filepath.Join(e.settings.CacheDir, matrixFile),
		filepath.Join(e.settings.CacheDir, idsFile),
		filepath.Join(e.settings.CacheDir, corpusFile),
	}
}

// PersistIndex serializes the currently held index to the four cache
// artifacts. Holding no index yields a no-op failure with reason
// "empty_cache"; I/O failures are reported in the result, never raised.
func (e *Engine) PersistIndex() services.SaveResult {
	idx := e.currentIndex()
	if idx == nil {
		return services.SaveResult{Saved: false, Reason: ReasonEmptyCache}
	}

	paths := e.artifactPaths()
	artifacts := []struct {
		path   string
		object interface{}
	}{
		{paths[0], idx.Vectorizer},
		{paths[1], idx.Vectors},
		{paths[2], idx.PostingIDs},
		{paths[3], idx.Corpus},
	}
	for _, artifact := range artifacts {
		if err := persistence.SaveGob(artifact.path, artifact.object); err != nil {
			log.Printf("Warning: Failed to persist index artifact %s: %v", artifact.path, err)
			return services.SaveResult{Saved: false, Reason: err.Error()}
		}
	}
	return services.SaveResult{Saved: true}
}

// LoadIndex deserializes the four cache artifacts back into memory.
// It succeeds only if every artifact is present and the decoded pieces are
// mutually consistent; on any failure the in-memory cache is left exactly
// as it was and false is returned.
func (e *Engine) LoadIndex() bool {
	if !e.initialized {
		return false
	}

	var (
		vectorizer similarity.Vectorizer
		vectors    []similarity.Vector
		ids        []string
		corpus     []string
	)

	paths := e.artifactPaths()
	artifacts := []struct {
		path   string
		target interface{}
	}{
		{paths[0], &vectorizer},
		{paths[1], &vectors},
		{paths[2], &ids},
		{paths[3], &corpus},
	}
	for _, artifact := range artifacts {
		if err := persistence.LoadGob(artifact.path, artifact.target); err != nil {
			if err == os.ErrNotExist {
				log.Printf("Info: Index artifact %s not found; cache not loaded", artifact.path)
			} else {
				log.Printf("Warning: Failed to load index artifact %s: %v", artifact.path, err)
			}
			return false
		}
	}

	if len(vectorizer.Vocabulary) == 0 || len(vectorizer.IDF) != len(vectorizer.Vocabulary) {
		log.Printf("Warning: Persisted vectorizer in %s is inconsistent; cache not loaded", e.settings.CacheDir)
		return false
	}
	if len(vectors) != len(ids) || len(vectors) != len(corpus) {
		log.Printf("Warning: Persisted index artifacts in %s have mismatched lengths (%d vectors, %d ids, %d corpus); cache not loaded",
			e.settings.CacheDir, len(vectors), len(ids), len(corpus))
		return false
	}

	idx := &similarity.Index{
		Vectorizer: &vectorizer,
		Vectors:    vectors,
		PostingIDs: ids,
		Corpus:     corpus,
	}

	e.mu.Lock()
	e.index = idx
	e.mu.Unlock()
	return true
}

// IndexStatus reports a read-only snapshot of the cached index. Safe to
// call at any time, including before any index has ever been built.
func (e *Engine) IndexStatus() services.IndexStatus {
	idx := e.currentIndex()

	status := services.IndexStatus{
		ArtifactPaths: e.artifactPaths(),
		CheckedAt:     time.Now().UTC().Format(time.RFC3339),
	}
	if idx != nil {
		status.Loaded = true
		status.PostingCount = idx.PostingCount()
		status.FeatureCount = idx.FeatureCount()
	}
	return status
}

// GetJob retrieves a background job by ID.
func (e *Engine) GetJob(jobID string) (*model.Job, error) {
	return e.jobManager.GetJob(jobID)
}

// ListJobs returns background jobs, optionally filtered by status.
func (e *Engine) ListJobs(status *model.JobStatus) []*model.Job {
	return e.jobManager.ListJobs(status)
}

// JobMetrics returns current background job performance metrics.
func (e *Engine) JobMetrics() jobs.JobMetricsData {
	return e.jobManager.GetMetrics()
}

// JobSuccessRate returns the fraction of finished jobs that completed.
func (e *Engine) JobSuccessRate() float64 {
	return e.jobManager.GetJobSuccessRate()
}

// CurrentWorkload returns the number of jobs currently pending or running.
func (e *Engine) CurrentWorkload() int64 {
	return e.jobManager.GetCurrentWorkload()
}
