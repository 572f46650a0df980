package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/internmatch/go-recommender/internal/engine"
	testutil "github.com/internmatch/go-recommender/internal/testing"
	"github.com/internmatch/go-recommender/model"
)

func setupTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return testutil.CreateTestEngine(t)
}

func setupTestRouter(eng *engine.Engine, adminToken string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	SetupRoutes(router, eng, adminToken)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string, headers map[string]string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func testPostings() []model.PostingRecord {
	return testutil.SamplePostings()
}

func TestHealthCheckHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	w := getPath(router, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", resp["status"])
	}
	if loaded, ok := resp["index_loaded"].(bool); !ok || loaded {
		t.Errorf("Expected index_loaded false, got %v", resp["index_loaded"])
	}
}

func TestRecommendHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	candidate := model.CandidateProfile{
		Qualification:  "Graduation",
		Skills:         "c, python",
		Languages:      "english",
		CurrentAddress: "Coimbatore",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name: "valid recommendation",
			requestBody: RecommendRequest{
				Candidate: candidate,
				Postings:  testPostings(),
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid JSON",
			requestBody:    "invalid json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "missing postings",
			requestBody: RecommendRequest{
				Candidate: candidate,
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "negative top_n",
			requestBody: RecommendRequest{
				Candidate: candidate,
				Postings:  testPostings(),
				TopN:      -1,
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/recommend", tt.requestBody, nil)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (body %s)", tt.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRecommendHandler_SimplifiedResponse(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	minScore := 0.0
	req := RecommendRequest{
		Candidate: model.CandidateProfile{
			Qualification:  "Graduation",
			Skills:         "c, python",
			Languages:      "english",
			CurrentAddress: "Coimbatore",
		},
		Postings: testPostings(),
		MinScore: &minScore,
	}

	w := postJSON(router, "/recommend", req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Recommendations []SimpleRecommendation `json:"recommendations"`
		Total           int                    `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Total == 0 {
		t.Fatal("Expected at least one recommendation")
	}

	top := resp.Recommendations[0]
	if top.PostingID != "p1" {
		t.Errorf("Expected p1 on top, got %s", top.PostingID)
	}
	if top.MatchLabel == "" {
		t.Error("Expected a match label")
	}
	var sawSkills bool
	for _, reason := range top.Reasons {
		if len(reason) >= len("Matched skills") && reason[:len("Matched skills")] == "Matched skills" {
			sawSkills = true
		}
	}
	if !sawSkills {
		t.Errorf("Expected a matched-skills reason, got %v", top.Reasons)
	}
}

func TestRecommendHandler_DebugResponse(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	minScore := 0.0
	req := RecommendRequest{
		Candidate: model.CandidateProfile{Skills: "c, python"},
		Postings:  testPostings(),
		MinScore:  &minScore,
		Debug:     true,
	}

	w := postJSON(router, "/recommend", req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Recommendations []struct {
			PostingID string `json:"posting_id"`
			Breakdown struct {
				Skills     float64 `json:"skills"`
				RuleTotal  float64 `json:"rule_total"`
				FinalScore float64 `json:"final_score"`
			} `json:"score_breakdown"`
		} `json:"recommendations"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if len(resp.Recommendations) == 0 {
		t.Fatal("Expected recommendations")
	}
	if resp.Recommendations[0].Breakdown.Skills != 30 {
		t.Errorf("Expected full skills credit in breakdown, got %v", resp.Recommendations[0].Breakdown.Skills)
	}
}

func TestRecommendHandler_DefaultMinScoreFilters(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	// A lone skill overlap scores well below the default cutoff of 40.
	req := RecommendRequest{
		Candidate: model.CandidateProfile{Skills: "figma"},
		Postings:  testPostings(),
	}

	w := postJSON(router, "/recommend", req, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Total != 0 {
		t.Errorf("Expected default min_score to filter everything, got %d results", resp.Total)
	}
}

func TestRebuildIndexHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng, "")

	w := postJSON(router, "/admin/rebuild-index", RebuildIndexRequest{Postings: testPostings()}, nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.JobID == "" {
		t.Fatal("Expected a job ID")
	}

	// The rebuild runs in the background.
	job := testutil.WaitForJobCompletion(t, eng, resp.JobID, testutil.DefaultJobPollingOptions())
	testutil.AssertJobCompleted(t, job, model.JobTypeRebuildIndex)

	// The job is also visible over HTTP.
	jw := getPath(router, "/jobs/"+resp.JobID, nil)
	if jw.Code != http.StatusOK {
		t.Fatalf("Expected 200 from job route, got %d", jw.Code)
	}
	var fetched model.Job
	if err := json.Unmarshal(jw.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("Invalid job JSON: %v", err)
	}
	if fetched.Status != model.JobStatusCompleted {
		t.Errorf("Expected completed job over HTTP, got %s", fetched.Status)
	}

	sw := getPath(router, "/admin/index-status", nil)
	if sw.Code != http.StatusOK {
		t.Fatalf("Expected 200 from index-status, got %d", sw.Code)
	}
	var status struct {
		Loaded       bool `json:"loaded"`
		PostingCount int  `json:"posting_count"`
	}
	if err := json.Unmarshal(sw.Body.Bytes(), &status); err != nil {
		t.Fatalf("Invalid status JSON: %v", err)
	}
	if !status.Loaded || status.PostingCount != 3 {
		t.Errorf("Expected 3 postings indexed, got %+v", status)
	}
}

func TestAdminTokenMiddleware(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng, "secret-token")

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"missing token", "", http.StatusUnauthorized},
		{"wrong token", "wrong", http.StatusUnauthorized},
		{"valid token", "secret-token", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.token != "" {
				headers[AdminTokenHeader] = tt.token
			}
			w := getPath(router, "/admin/index-status", headers)
			if w.Code != tt.expectedStatus {
				t.Errorf("Expected %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	// Non-admin routes stay open regardless of the token.
	if w := getPath(router, "/health", nil); w.Code != http.StatusOK {
		t.Errorf("Expected open health route, got %d", w.Code)
	}
}

func TestGetJobHandler_NotFound(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	w := getPath(router, "/jobs/nonexistent-job", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", w.Code)
	}
}

func TestListJobsHandler(t *testing.T) {
	eng := setupTestEngine(t)
	router := setupTestRouter(eng, "")

	if _, err := eng.RebuildIndexAsync(testPostings(), 0); err != nil {
		t.Fatalf("RebuildIndexAsync() error = %v", err)
	}

	w := getPath(router, "/jobs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if resp.Total < 1 {
		t.Errorf("Expected at least one job, got %d", resp.Total)
	}
}

func TestGetJobMetricsHandler(t *testing.T) {
	router := setupTestRouter(setupTestEngine(t), "")

	w := getPath(router, "/jobs/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON response: %v", err)
	}
	if _, ok := resp["metrics"]; !ok {
		t.Error("Expected a metrics field in the response")
	}
}
