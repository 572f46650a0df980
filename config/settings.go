// Package config provides configuration structures for the recommendation engine.
// It defines rule weights, similarity model parameters, and cache locations.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables honoured by FromEnv.
const (
	EnvCacheDir    = "TFIDF_DIR"
	EnvMaxFeatures = "TFIDF_MAX_FEATURES"
)

// RuleWeights holds the point weight of each rule criterion. The weights
// sum to 100 by default so a full rule match maps directly onto a 0-100
// scale, but any non-negative weights are accepted.
type RuleWeights struct {
	Qualification float64 `json:"qualification"`
	Skills        float64 `json:"skills"`
	Location      float64 `json:"location"`
	Languages     float64 `json:"languages"`
	Inclusiveness float64 `json:"inclusiveness"`
	Interests     float64 `json:"interests"`
	Sector        float64 `json:"sector"`
}

// Settings contains all configuration options for the recommendation engine:
// rule scoring weights, the rule/similarity blend, similarity model
// parameters, and the durable cache directory.
type Settings struct {
	Weights RuleWeights `json:"weights"`

	// RuleWeight and SimilarityWeight blend the clamped rule total with the
	// scaled similarity score. They must sum to 1.
	RuleWeight       float64 `json:"rule_weight"`
	SimilarityWeight float64 `json:"similarity_weight"`

	// MaxFeatures bounds the similarity model vocabulary size.
	MaxFeatures int `json:"max_features"`

	// CacheDir is where the four index artifacts are persisted.
	CacheDir string `json:"cache_dir"`
}

// DefaultSettings returns the engine defaults: the standard rule weights,
// the 80/20 blend, a 1000-term vocabulary, and a local .cache directory.
func DefaultSettings() Settings {
	s := Settings{}
	s.ApplyDefaults()
	return s
}

// ApplyDefaults fills in any zero-valued settings with engine defaults.
func (s *Settings) ApplyDefaults() {
	zero := RuleWeights{}
	if s.Weights == zero {
		s.Weights = RuleWeights{
			Qualification: 30,
			Skills:        30,
			Location:      15,
			Languages:     7,
			Inclusiveness: 4,
			Interests:     8,
			Sector:        6,
		}
	}
	if s.RuleWeight == 0 && s.SimilarityWeight == 0 {
		s.RuleWeight = 0.80
		s.SimilarityWeight = 0.20
	}
	if s.MaxFeatures == 0 {
		s.MaxFeatures = 1000
	}
	if s.CacheDir == "" {
		s.CacheDir = ".cache"
	}
}

// FromEnv returns default settings overridden by the TFIDF_DIR and
// TFIDF_MAX_FEATURES environment variables when they are set. An
// unparseable TFIDF_MAX_FEATURES is ignored rather than fatal.
func FromEnv() Settings {
	s := DefaultSettings()
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		s.CacheDir = dir
	}
	if raw := os.Getenv(EnvMaxFeatures); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			s.MaxFeatures = n
		}
	}
	return s
}

// Validate checks the settings for values the engine cannot work with.
func (s *Settings) Validate() error {
	for name, w := range map[string]float64{
		"qualification": s.Weights.Qualification,
		"skills":        s.Weights.Skills,
		"location":      s.Weights.Location,
		"languages":     s.Weights.Languages,
		"inclusiveness": s.Weights.Inclusiveness,
		"interests":     s.Weights.Interests,
		"sector":        s.Weights.Sector,
	} {
		if w < 0 {
			return fmt.Errorf("rule weight '%s' cannot be negative (got %v)", name, w)
		}
	}
	if s.RuleWeight < 0 || s.SimilarityWeight < 0 {
		return fmt.Errorf("blend weights cannot be negative (rule=%v, similarity=%v)", s.RuleWeight, s.SimilarityWeight)
	}
	if sum := s.RuleWeight + s.SimilarityWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("blend weights must sum to 1 (got %v)", sum)
	}
	if s.MaxFeatures <= 0 {
		return fmt.Errorf("max_features must be positive (got %d)", s.MaxFeatures)
	}
	if s.CacheDir == "" {
		return fmt.Errorf("cache_dir cannot be empty")
	}
	return nil
}
