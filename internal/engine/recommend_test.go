package engine

import (
	"math"
	"testing"

	"github.com/internmatch/go-recommender/model"
)

func TestRecommend_RuleOnlyBlend(t *testing.T) {
	eng := newTestEngine(t)

	candidate := model.CandidateProfile{
		Qualification:      "Graduation",
		Skills:             "c, python",
		Languages:          "english",
		CurrentAddress:     "12 Main Road, Coimbatore",
		Category:           "OBC",
		NeedsAccommodation: false,
	}
	postings := []model.PostingRecord{
		{
			ID:                    "p1",
			Title:                 "Software Intern",
			RequiredQualification: "Graduation",
			RequiredSkills:        "c, python",
			RequiredLanguages:     "english",
			Location:              "Coimbatore",
			PreferredCategory:     "OBC",
			AccommodationFriendly: true,
		},
	}

	// Rule total is 84.4 here (full qualification, skills, location and
	// language credit plus the category share of inclusiveness, 2.4).
	// Without an index the blend keeps only the 0.80 rule share.
	recs, err := eng.Recommend(candidate, postings, 5, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(recs))
	}
	if got := recs[0].Score; math.Abs(got-67.52) > 1e-9 {
		t.Errorf("Expected blended score 67.52, got %v", got)
	}
	if recs[0].Breakdown.SimilarityRaw != 0 || recs[0].Breakdown.SimilarityScore != 0 {
		t.Errorf("Expected zero similarity contribution without an index: %+v", recs[0].Breakdown)
	}
	if recs[0].Breakdown.FinalScore != recs[0].Score {
		t.Error("Breakdown final score must equal the ranked score")
	}
}

func TestRecommend_MinScoreFilter(t *testing.T) {
	eng := newTestEngine(t)

	candidate := model.CandidateProfile{Skills: "c, python"}
	postings := []model.PostingRecord{
		{ID: "strong", RequiredSkills: "c, python"}, // 30 rule points, 24 blended
		{ID: "weak", RequiredSkills: "haskell"},     // 0
	}

	recs, err := eng.Recommend(candidate, postings, 5, 10)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 1 || recs[0].PostingID != "strong" {
		t.Fatalf("Expected only the strong posting to clear the cutoff, got %+v", recs)
	}

	// A cutoff above every score yields an empty, non-nil slice.
	recs, err = eng.Recommend(candidate, postings, 5, 99)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("Expected empty slice, got %v", recs)
	}
}

func TestRecommend_TopNAndDefault(t *testing.T) {
	eng := newTestEngine(t)

	candidate := model.CandidateProfile{Skills: "go"}
	postings := make([]model.PostingRecord, 0, 8)
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		postings = append(postings, model.PostingRecord{ID: id, RequiredSkills: "go"})
	}

	recs, err := eng.Recommend(candidate, postings, 2, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != 2 {
		t.Errorf("Expected topN=2 results, got %d", len(recs))
	}

	// Non-positive topN falls back to the default of 5.
	recs, err = eng.Recommend(candidate, postings, 0, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	if len(recs) != DefaultTopN {
		t.Errorf("Expected %d results for topN=0, got %d", DefaultTopN, len(recs))
	}
}

func TestRecommend_OrderingAndTieBreak(t *testing.T) {
	eng := newTestEngine(t)

	candidate := model.CandidateProfile{Skills: "c, python", Languages: "english"}
	postings := []model.PostingRecord{
		{ID: "tie-b", RequiredSkills: "c, python"},
		{ID: "best", RequiredSkills: "c, python", RequiredLanguages: "english"},
		{ID: "tie-a", RequiredSkills: "c, python"},
		{ID: "least", RequiredSkills: "c, haskell"},
	}

	recs, err := eng.Recommend(candidate, postings, 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	gotOrder := make([]string, 0, len(recs))
	for _, r := range recs {
		gotOrder = append(gotOrder, r.PostingID)
	}
	wantOrder := []string{"best", "tie-a", "tie-b", "least"}
	if len(gotOrder) != len(wantOrder) {
		t.Fatalf("Expected %d results, got %v", len(wantOrder), gotOrder)
	}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("Expected order %v, got %v", wantOrder, gotOrder)
		}
	}
	for i := 1; i < len(recs); i++ {
		if recs[i].Score > recs[i-1].Score {
			t.Errorf("Scores not descending at %d: %v > %v", i, recs[i].Score, recs[i-1].Score)
		}
	}
}

func TestRecommend_WithIndexBlendsSimilarity(t *testing.T) {
	eng := newTestEngine(t)
	postings := catalogFixture()
	if result, _ := eng.RebuildIndex(postings, 0); !result.Built {
		t.Fatal("Build failed")
	}

	candidate := model.CandidateProfile{
		Skills:    "python programming",
		Interests: "software development",
	}
	recs, err := eng.Recommend(candidate, postings, 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	var sawSimilarity bool
	for _, r := range recs {
		bd := r.Breakdown
		if bd.SimilarityRaw < 0 || bd.SimilarityRaw > 1 {
			t.Errorf("Similarity %v out of [0,1] for %s", bd.SimilarityRaw, r.PostingID)
		}
		if bd.SimilarityScore > 0 {
			sawSimilarity = true
		}
		// The breakdown carries rounded components, so allow rounding slack.
		want := 0.80*bd.RuleTotal + 0.20*bd.SimilarityScore
		if math.Abs(r.Score-want) > 1e-3 {
			t.Errorf("Blend mismatch for %s: got %v, want %v", r.PostingID, r.Score, want)
		}
		if r.Score < 0 || r.Score > 100 {
			t.Errorf("Score %v out of [0,100] for %s", r.Score, r.PostingID)
		}
	}
	if !sawSimilarity {
		t.Error("Expected at least one posting with a positive similarity score")
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	eng := newTestEngine(t)
	postings := catalogFixture()
	if result, _ := eng.RebuildIndex(postings, 0); !result.Built {
		t.Fatal("Build failed")
	}

	candidate := model.CandidateProfile{Skills: "c, python", Languages: "english"}
	first, err := eng.Recommend(candidate, postings, 10, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := eng.Recommend(candidate, postings, 10, 0)
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("Run %d returned %d results, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j].PostingID != first[j].PostingID || again[j].Score != first[j].Score {
				t.Fatalf("Run %d diverged at %d: %+v vs %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestRecommend_EmptyCandidate(t *testing.T) {
	eng := newTestEngine(t)

	recs, err := eng.Recommend(model.CandidateProfile{}, catalogFixture(), 5, 0)
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}
	for _, r := range recs {
		if r.Score < 0 {
			t.Errorf("Negative score for empty candidate: %+v", r)
		}
	}
}

func TestRecommend_UninitializedEngine(t *testing.T) {
	var eng Engine

	if _, err := eng.Recommend(model.CandidateProfile{}, nil, 5, 0); err == nil {
		t.Error("Expected error from uninitialized engine")
	}
}
