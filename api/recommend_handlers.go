package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/internmatch/go-recommender/internal/errors"
	"github.com/internmatch/go-recommender/model"
	"github.com/internmatch/go-recommender/services"
)

// RecommendRequest defines the structure for recommendation queries. The
// caller supplies the candidate and the full posting catalog; the service
// holds no storage of its own.
type RecommendRequest struct {
	Candidate model.CandidateProfile `json:"candidate"`
	Postings  []model.PostingRecord  `json:"postings"`
	TopN      int                    `json:"top_n,omitempty"`
	MinScore  *float64               `json:"min_score,omitempty"` // Optional: defaults to 40 when omitted
	Debug     bool                   `json:"debug,omitempty"`
}

// SimpleRecommendation is the compact response entry returned when the
// caller does not ask for debug output.
type SimpleRecommendation struct {
	PostingID   string   `json:"posting_id"`
	CompanyName string   `json:"company_name"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	Score       float64  `json:"score"`
	MatchLabel  string   `json:"match_label"`
	Reasons     []string `json:"reasons"`
}

// DefaultMinScore is the cutoff applied when a request omits min_score.
const DefaultMinScore = 40.0

// RecommendHandler handles recommendation requests.
// Request Body: RecommendRequest
func (api *API) RecommendHandler(c *gin.Context) {
	startTime := time.Now()

	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateRecommendRequest(&req); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	minScore := DefaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}

	results, err := api.engine.Recommend(req.Candidate, req.Postings, req.TopN, minScore)
	if err != nil {
		if errors.Is(err, internalErrors.ErrEngineNotInitialized) {
			SendError(c, http.StatusServiceUnavailable, ErrorCodeEngineNotReady,
				"Recommendation engine is not initialized")
			return
		}
		SendRecommendationError(c, err)
		return
	}

	took := time.Since(startTime).Milliseconds()

	if req.Debug {
		c.JSON(http.StatusOK, gin.H{
			"recommendations": results,
			"total":           len(results),
			"took_ms":         took,
		})
		return
	}

	simplified := make([]SimpleRecommendation, 0, len(results))
	for _, r := range results {
		simplified = append(simplified, SimpleRecommendation{
			PostingID:   r.PostingID,
			CompanyName: r.CompanyName,
			Title:       r.Title,
			Location:    r.Location,
			Score:       r.Score,
			MatchLabel:  matchLabel(r.Score),
			Reasons:     matchReasons(r.Breakdown),
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"recommendations": simplified,
		"total":           len(simplified),
		"took_ms":         took,
	})
}

// matchLabel buckets a blended score into a display label.
func matchLabel(score float64) string {
	switch {
	case score >= 70:
		return "Strong Match"
	case score >= 50:
		return "Medium Match"
	default:
		return "Weak Match"
	}
}

// matchReasons builds the short human-readable explanation list for a
// simplified recommendation entry.
func matchReasons(bd services.ScoreBreakdown) []string {
	reasons := make([]string, 0, 3)
	if len(bd.MatchedSkills) > 0 {
		reasons = append(reasons, "Matched skills: "+strings.Join(bd.MatchedSkills, ", "))
	}
	if bd.Location > 0 {
		reasons = append(reasons, "Location matched")
	}
	if bd.Inclusiveness > 0 {
		reasons = append(reasons, "Inclusiveness bonus applied")
	}
	return reasons
}
