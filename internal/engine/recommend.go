package engine

import (
	"math"
	"sort"

	"github.com/internmatch/go-recommender/internal/errors"
	"github.com/internmatch/go-recommender/internal/similarity"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// DefaultTopN and DefaultMinScore are the recommendation defaults applied
// when a caller passes a non-positive topN; minScore is taken as given so
// that zero remains a valid cutoff (HTTP callers default it explicitly).
const (
	DefaultTopN     = 5
	DefaultMinScore = 40.0
)

// Recommend scores the candidate against every posting, blends the rule
// total with the similarity signal, filters by minScore, and returns the
// topN results in descending score order. With no index held, similarity
// contributes exactly zero and the ranking is rule-only.
//
// Ties on the final score are broken by posting ID ascending, making the
// full ordering deterministic.
func (e *Engine) Recommend(candidate model.CandidateProfile, postings []model.PostingRecord, topN int, minScore float64) ([]services.RankedResult, error) {
	if e == nil || !e.initialized {
		return nil, errors.ErrEngineNotInitialized
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	// One similarity query covers the whole catalog.
	var simScores map[string]float64
	if idx := e.currentIndex(); idx != nil {
		simScores = idx.ScoreAgainst(similarity.CandidateText(candidate))
	}

	results := make([]services.RankedResult, 0, len(postings))
	for _, posting := range postings {
		bd := e.scorer.Score(candidate, posting)
		bd.RuleTotal = clamp(bd.RuleTotal, 0, 100)

		sim := simScores[posting.ID]
		if math.IsNaN(sim) || math.IsInf(sim, 0) || sim < 0 {
			sim = 0
		}
		simScore := sim * 100

		final := round4(e.settings.RuleWeight*bd.RuleTotal + e.settings.SimilarityWeight*simScore)
		bd.SimilarityRaw = round4(sim)
		bd.SimilarityScore = round4(simScore)
		bd.FinalScore = final

		if final < minScore {
			continue
		}
		results = append(results, services.RankedResult{
			PostingID:         posting.ID,
			CompanyName:       posting.CompanyName,
			Title:             posting.Title,
			Location:          posting.Location,
			RequiredSkills:    posting.RequiredSkills,
			RequiredLanguages: posting.RequiredLanguages,
			Sector:            posting.Sector,
			Score:             final,
			Breakdown:         bd,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].PostingID < results[j].PostingID
	})

	if len(results) > topN {
		results = results[:topN]
	}
	return results, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
