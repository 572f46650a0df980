// Package similarity implements the vector-space half of the recommendation
// score: a TF-IDF model with a bounded vocabulary fitted over the posting
// catalog, and cosine scoring of candidate text against every posting.
package similarity

import (
	"math"
	"sort"

	"github.com/internmatch/go-recommender/internal/textutil"
)

// Vector is a sparse, L2-normalized term-weight vector keyed by vocabulary index.
type Vector map[int]float64

// Vectorizer is a fitted TF-IDF model: a bounded vocabulary of unigrams and
// bigrams with smoothed inverse document frequencies. Vectors produced by
// Transform are only comparable against vectors from the same fit.
type Vectorizer struct {
	Vocabulary  map[string]int
	IDF         []float64
	MaxFeatures int
}

// FitVectorizer fits a vectorizer over the corpus. When the candidate term
// set exceeds maxFeatures, the terms most frequent across the whole corpus
// are kept, with an alphabetical tie-break so fitting is deterministic.
func FitVectorizer(corpus []string, maxFeatures int) *Vectorizer {
	docFreq := make(map[string]int)
	corpusFreq := make(map[string]int)
	for _, doc := range corpus {
		terms := ngrams(textutil.Words(doc))
		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			corpusFreq[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	selected := make([]string, 0, len(corpusFreq))
	for term := range corpusFreq {
		selected = append(selected, term)
	}
	if maxFeatures > 0 && len(selected) > maxFeatures {
		sort.Slice(selected, func(i, j int) bool {
			if corpusFreq[selected[i]] != corpusFreq[selected[j]] {
				return corpusFreq[selected[i]] > corpusFreq[selected[j]]
			}
			return selected[i] < selected[j]
		})
		selected = selected[:maxFeatures]
	}
	sort.Strings(selected)

	v := &Vectorizer{
		Vocabulary:  make(map[string]int, len(selected)),
		IDF:         make([]float64, len(selected)),
		MaxFeatures: maxFeatures,
	}
	totalDocs := float64(len(corpus))
	for i, term := range selected {
		v.Vocabulary[term] = i
		// Smoothed IDF keeps terms that appear in every document from
		// dropping to zero weight.
		v.IDF[i] = math.Log((1+totalDocs)/(1+float64(docFreq[term]))) + 1
	}
	return v
}

// Transform maps text into the fitted vocabulary space, weighting term
// counts by IDF and normalizing to unit length. Terms outside the
// vocabulary are ignored; text with no known terms yields an empty vector.
func (v *Vectorizer) Transform(text string) Vector {
	vec := make(Vector)
	for _, term := range ngrams(textutil.Words(text)) {
		if idx, ok := v.Vocabulary[term]; ok {
			vec[idx]++
		}
	}
	for idx := range vec {
		vec[idx] *= v.IDF[idx]
	}

	var norm float64
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

// FeatureCount returns the size of the fitted vocabulary.
func (v *Vectorizer) FeatureCount() int {
	return len(v.Vocabulary)
}

// ngrams expands a word sequence into unigrams plus adjacent bigrams.
func ngrams(words []string) []string {
	terms := make([]string, 0, len(words)*2)
	terms = append(terms, words...)
	for i := 0; i+1 < len(words); i++ {
		terms = append(terms, words[i]+" "+words[i+1])
	}
	return terms
}

// Dot returns the inner product of two sparse vectors. For unit-length
// non-negative vectors this is their cosine similarity in [0, 1].
func Dot(a, b Vector) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for idx, w := range a {
		if other, ok := b[idx]; ok {
			sum += w * other
		}
	}
	return sum
}
