package similarity

import (
	"math"
	"strings"

	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// ReasonNoCorpus is reported when a build is invoked over an empty or
// entirely blank posting catalog.
const ReasonNoCorpus = "no_corpus"

// Index is one atomic build of the similarity model over a posting catalog:
// the fitted vectorizer, one vector per posting, the parallel posting ID
// list, and the raw corpus the model was fitted on. PostingIDs, Vectors,
// and Corpus are index-aligned; an Index is never mutated after Build, so
// holding a pointer to one is always safe.
type Index struct {
	Vectorizer *Vectorizer
	Vectors    []Vector
	PostingIDs []string
	Corpus     []string
}

// BuildCorpus assembles the corpus document for every posting: title,
// sector, required skills, required languages, and company name joined by
// spaces, skipping absent fields. Returns the corpus and the parallel
// posting ID list.
func BuildCorpus(postings []model.PostingRecord) (corpus []string, ids []string) {
	corpus = make([]string, 0, len(postings))
	ids = make([]string, 0, len(postings))
	for _, p := range postings {
		parts := make([]string, 0, 5)
		for _, field := range []string{p.Title, p.Sector, p.RequiredSkills, p.RequiredLanguages, p.CompanyName} {
			if field != "" {
				parts = append(parts, field)
			}
		}
		corpus = append(corpus, strings.Join(parts, " "))
		ids = append(ids, p.ID)
	}
	return corpus, ids
}

// CandidateText aggregates a candidate's free-text attributes into the
// single query document scored against the catalog: skills, interests,
// course, hobbies, languages, and qualification, absent fields skipped.
func CandidateText(candidate model.CandidateProfile) string {
	parts := make([]string, 0, 6)
	for _, field := range []string{
		candidate.Skills,
		candidate.Interests,
		candidate.Course,
		candidate.Hobbies,
		candidate.Languages,
		candidate.Qualification,
	} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " ")
}

// Build fits a brand-new index over a full snapshot of the catalog.
// An empty or all-blank corpus is not an error: the returned index is nil
// and the result reports ReasonNoCorpus, letting the caller clear any
// previously held index.
func Build(postings []model.PostingRecord, maxFeatures int) (*Index, services.BuildResult) {
	corpus, ids := BuildCorpus(postings)

	blank := true
	for _, doc := range corpus {
		if strings.TrimSpace(doc) != "" {
			blank = false
			break
		}
	}
	if len(corpus) == 0 || blank {
		return nil, services.BuildResult{Built: false, Reason: ReasonNoCorpus}
	}

	vectorizer := FitVectorizer(corpus, maxFeatures)
	// A corpus of nothing but stopwords and single characters fits an
	// empty vocabulary. Such an index scores every pair at zero and its
	// artifacts would be rejected on reload, so report it as no corpus.
	if vectorizer.FeatureCount() == 0 {
		return nil, services.BuildResult{Built: false, Reason: ReasonNoCorpus}
	}
	vectors := make([]Vector, len(corpus))
	for i, doc := range corpus {
		vectors[i] = vectorizer.Transform(doc)
	}

	idx := &Index{
		Vectorizer: vectorizer,
		Vectors:    vectors,
		PostingIDs: ids,
		Corpus:     corpus,
	}
	return idx, services.BuildResult{
		Built:        true,
		PostingCount: len(ids),
		FeatureCount: vectorizer.FeatureCount(),
	}
}

// ScoreAgainst transforms candidateText through the fitted vocabulary and
// returns the cosine similarity against every indexed posting, keyed by
// posting ID. Non-finite values are coerced to 0.
func (ix *Index) ScoreAgainst(candidateText string) map[string]float64 {
	queryVec := ix.Vectorizer.Transform(candidateText)

	out := make(map[string]float64, len(ix.PostingIDs))
	for i, id := range ix.PostingIDs {
		sim := Dot(queryVec, ix.Vectors[i])
		if math.IsNaN(sim) || math.IsInf(sim, 0) {
			sim = 0
		}
		out[id] = sim
	}
	return out
}

// PostingCount returns the number of postings in the index.
func (ix *Index) PostingCount() int {
	return len(ix.PostingIDs)
}

// FeatureCount returns the fitted vocabulary size.
func (ix *Index) FeatureCount() int {
	if ix.Vectorizer == nil {
		return 0
	}
	return ix.Vectorizer.FeatureCount()
}
