// Package scoring implements the deterministic rule-based half of the
// recommendation score: seven weighted attribute-overlap criteria with
// matched-token lists retained for explainability.
package scoring

import (
	"math"
	"strings"

	"github.com/internmatch/go-recommender/config"
	"github.com/internmatch/go-recommender/internal/textutil"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// Scorer computes rule scores between one candidate and one posting.
// A Scorer is stateless apart from its weights and safe for concurrent use.
type Scorer struct {
	weights config.RuleWeights
}

// NewScorer creates a rule scorer with the given criterion weights.
func NewScorer(weights config.RuleWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the per-criterion breakdown for a (candidate, posting)
// pair. Absent attributes degrade the affected criterion to zero; no input
// combination produces an error. Only the rule fields of the returned
// breakdown are populated; similarity fields are filled in by the caller.
func (s *Scorer) Score(candidate model.CandidateProfile, posting model.PostingRecord) services.ScoreBreakdown {
	bd := services.ScoreBreakdown{
		MatchedSkills:    []string{},
		MatchedLanguages: []string{},
		MatchedInterests: []string{},
	}

	// Qualification: substring match of the candidate's qualification
	// inside the posting's required qualification.
	candidateQual := textutil.Normalize(candidate.Qualification)
	requiredQual := textutil.Normalize(posting.RequiredQualification)
	if candidateQual != "" && requiredQual != "" && strings.Contains(requiredQual, candidateQual) {
		bd.Qualification = s.weights.Qualification
	}

	// Skills: fraction of required skills the candidate covers.
	candidateSkills := textutil.TokenSet(candidate.Skills)
	requiredSkills := textutil.TokenSet(posting.RequiredSkills)
	if len(requiredSkills) > 0 {
		matched := textutil.Intersect(candidateSkills, requiredSkills)
		bd.Skills = round4(s.weights.Skills * float64(len(matched)) / float64(len(requiredSkills)))
		bd.MatchedSkills = matched
	}

	// Location: posting location appearing inside the candidate's address.
	candidateAddr := textutil.Normalize(candidate.CurrentAddress)
	postingLoc := textutil.Normalize(posting.Location)
	if postingLoc != "" && candidateAddr != "" && strings.Contains(candidateAddr, postingLoc) {
		bd.Location = s.weights.Location
	}

	// Languages: any overlap earns the full weight.
	matchedLangs := textutil.Intersect(textutil.TokenSet(candidate.Languages), textutil.TokenSet(posting.RequiredLanguages))
	if len(matchedLangs) > 0 {
		bd.Languages = s.weights.Languages
	}
	bd.MatchedLanguages = matchedLangs

	// Inclusiveness: 60% for a category match, 40% for the accommodation
	// pairing. The two sub-parts are independently additive.
	preferredCat := textutil.Normalize(posting.PreferredCategory)
	candidateCat := textutil.Normalize(candidate.Category)
	if preferredCat != "" && candidateCat != "" && preferredCat == candidateCat {
		bd.Inclusiveness += s.weights.Inclusiveness * 0.6
	}
	if posting.AccommodationFriendly && candidate.NeedsAccommodation {
		bd.Inclusiveness += s.weights.Inclusiveness * 0.4
	}

	// Interests: explicit interests, falling back to course + hobbies only
	// when no explicit interests were given.
	interests := textutil.TokenSet(candidate.Interests)
	if len(interests) == 0 {
		interests = textutil.Union(textutil.TokenSet(candidate.Course), textutil.TokenSet(candidate.Hobbies))
	}
	sectorTokens := textutil.TokenSet(posting.Sector)
	titleTokens := textutil.TokenSet(posting.Title)
	matchedInterests := textutil.Intersect(interests, textutil.Union(sectorTokens, titleTokens))
	if len(interests) > 0 {
		denom := len(interests)
		if denom < 1 {
			denom = 1
		}
		bd.Interests = round4(s.weights.Interests * float64(len(matchedInterests)) / float64(denom))
	}
	bd.MatchedInterests = matchedInterests

	// Sector bonus: intentionally overlaps with the interests criterion,
	// weighting sector alignment twice.
	if len(sectorTokens) > 0 && len(interests) > 0 && len(textutil.Intersect(sectorTokens, interests)) > 0 {
		bd.Sector = s.weights.Sector
	}

	bd.RuleTotal = round4(bd.Qualification + bd.Skills + bd.Location + bd.Languages +
		bd.Inclusiveness + bd.Interests + bd.Sector)
	return bd
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
