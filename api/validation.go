// Package api provides validation utilities for API request handling.
package api

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateRecommendRequest validates a recommendation request
func ValidateRecommendRequest(req *RecommendRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("request", "Request body is required")
		return result
	}

	if len(req.Postings) == 0 {
		result.AddError("postings", "At least one posting is required")
	}

	for i, posting := range req.Postings {
		if strings.TrimSpace(posting.ID) == "" {
			result.AddError(fmt.Sprintf("postings[%d].id", i), "Posting ID is required")
		}
	}

	if req.TopN < 0 {
		result.AddError("top_n", "top_n cannot be negative")
	}

	if req.MinScore != nil && (*req.MinScore < 0 || *req.MinScore > 100) {
		result.AddError("min_score", "min_score must be between 0 and 100")
	}

	return result
}

// ValidateJobID validates a job ID path parameter
func ValidateJobID(jobID string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if jobID == "" {
		result.AddError("jobId", "Job ID is required")
		return result
	}

	if strings.TrimSpace(jobID) != jobID {
		result.AddError("jobId", "Job ID cannot have leading or trailing whitespace")
	}

	return result
}

// SendValidationError sends a standardized validation error response
func SendValidationError(c *gin.Context, result *ValidationResult) {
	SendStructuredValidationError(c, result)
}
