package engine

import (
	"log"

	"github.com/internmatch/go-recommender/internal/errors"
	"github.com/internmatch/go-recommender/internal/similarity"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// RebuildIndex builds a brand-new similarity index over a full snapshot of
// the posting catalog, swaps it in atomically, and persists it on success.
// A maxFeatures of zero or less falls back to the configured vocabulary
// bound. Scoring against the previous index proceeds untouched while the
// new one is being fitted.
//
// An empty catalog clears the held index and reports "no_corpus"; only an
// engine that was never initialized produces an error.
func (e *Engine) RebuildIndex(postings []model.PostingRecord, maxFeatures int) (services.BuildResult, error) {
	if e == nil || !e.initialized {
		return services.BuildResult{}, errors.ErrEngineNotInitialized
	}

	if maxFeatures <= 0 {
		maxFeatures = e.settings.MaxFeatures
	}

	// The expensive fit happens entirely off to the side; the lock is held
	// only for the pointer swap.
	idx, result := similarity.Build(postings, maxFeatures)

	e.mu.Lock()
	e.index = idx
	e.mu.Unlock()

	if !result.Built {
		log.Printf("Index rebuild skipped (%s); any previous index cleared", result.Reason)
		return result, nil
	}

	save := e.PersistIndex()
	result.Persisted = save.Saved
	if !save.Saved {
		log.Printf("Warning: Rebuilt index could not be persisted: %s", save.Reason)
	} else {
		log.Printf("Similarity index rebuilt and persisted (%d postings, %d features)",
			result.PostingCount, result.FeatureCount)
	}
	return result, nil
}
