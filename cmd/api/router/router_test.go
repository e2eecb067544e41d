package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"press-lens/cmd/api/dto"
	"press-lens/extractor"
	"press-lens/feeder"
	"press-lens/models"
	"press-lens/services"
)

type fakeAnalyzer struct {
	err  error
	last models.AnalyzeRequest
}

func (f *fakeAnalyzer) Analyze(_ context.Context, requestID string, in models.AnalyzeRequest) (*models.PressReleaseAnalysisResponse, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	if err := services.ValidateRequest(in); err != nil {
		return nil, err
	}
	return &models.PressReleaseAnalysisResponse{RequestID: requestID, AIModelUsed: "fake-model"}, nil
}

type fakeImporter struct{}

func (fakeImporter) Import(_ context.Context, pageURL string) (models.AnalyzeRequest, error) {
	if !strings.HasPrefix(pageURL, "https://") {
		return models.AnalyzeRequest{}, services.ErrImport
	}
	return models.AnalyzeRequest{Title: "取り込んだタイトル", Content: "本文", Metadata: map[string]any{"source_url": pageURL}}, nil
}

type fakeFeeds struct{}

func (fakeFeeds) List(context.Context, string, int) ([]feeder.FeedItem, error) {
	return []feeder.FeedItem{{Title: "新着リリース", Link: "https://example.com/1"}}, nil
}

type fakeJobs struct{}

func (fakeJobs) Submit(_ context.Context, requestID string, in models.AnalyzeRequest) (*models.AnalysisRecord, error) {
	if err := services.ValidateRequest(in); err != nil {
		return nil, err
	}
	return &models.AnalysisRecord{JobID: "job-1", RequestID: requestID, Status: models.AnalysisPending}, nil
}

func (fakeJobs) Get(_ context.Context, jobID string) (*models.AnalysisRecord, error) {
	if jobID != "job-1" {
		return nil, services.ErrNotFound
	}
	return &models.AnalysisRecord{JobID: jobID, Status: models.AnalysisCompleted, Result: &models.PressReleaseAnalysisResponse{RequestID: "req_1"}}, nil
}

func newTestRouter(analyzer *fakeAnalyzer, withJobs bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	d := Deps{Analyzer: analyzer, Importer: fakeImporter{}, Feeds: fakeFeeds{}}
	if withJobs {
		d.Jobs = fakeJobs{}
	}
	return New(d)
}

func do(r http.Handler, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAnalyzeRoute(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{}, false)

	w := do(r, http.MethodPost, "/api/v1/analyze", `{"title":"新サービス発表","content":"本文"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.PressReleaseAnalysisResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.RequestID, "req_"))
	assert.Equal(t, resp.RequestID, w.Header().Get("X-Request-Id"))
}

func TestAnalyzeRouteKeepsIncomingRequestID(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{}, false)

	w := do(r, http.MethodPost, "/api/v1/analyze", `{"title":"t"}`, map[string]string{"X-Request-Id": "req_from_client"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"request_id":"req_from_client"`)
}

func TestAnalyzeRouteErrors(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		body   string
		status int
		code   string
	}{
		{name: "malformed json", body: `{"title":`, status: http.StatusBadRequest, code: services.CodeInvalidInput},
		{name: "empty input", body: `{"title":"","content":""}`, status: http.StatusBadRequest, code: services.CodeInvalidInput},
		{name: "timeout", body: `{"title":"t"}`, err: &extractor.ExtractionError{Reason: extractor.ReasonTimeout}, status: http.StatusGatewayTimeout, code: services.CodeAITimeout},
		{name: "schema violation", body: `{"title":"t"}`, err: &extractor.ExtractionError{Reason: extractor.ReasonSchemaViolation}, status: http.StatusBadGateway, code: services.CodeAISchemaViolation},
		{name: "unexpected", body: `{"title":"t"}`, err: errors.New("boom"), status: http.StatusInternalServerError, code: services.CodeAnalysisFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeAnalyzer{err: tc.err}, false)
			w := do(r, http.MethodPost, "/api/v1/analyze", tc.body, nil)
			require.Equal(t, tc.status, w.Code)

			var resp dto.ErrorResponseDTO
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, w.Header().Get("X-Request-Id"), resp.RequestID)
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestAnalyzeURLRoute(t *testing.T) {
	analyzer := &fakeAnalyzer{}
	r := newTestRouter(analyzer, false)

	w := do(r, http.MethodPost, "/api/v1/analyze/url", `{"url":"https://example.com/news/1","metadata":{"persona":"記者"}}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "取り込んだタイトル", analyzer.last.Title)
	assert.Equal(t, "記者", analyzer.last.Persona())

	w = do(r, http.MethodPost, "/api/v1/analyze/url", `{"url":"http://unreachable"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = do(r, http.MethodPost, "/api/v1/analyze/url", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAsyncRoutes(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{}, true)

	w := do(r, http.MethodPost, "/api/v1/analyses", `{"title":"t","content":"本文"}`, nil)
	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, "/api/v1/analyses/job-1", w.Header().Get("Location"))

	w = do(r, http.MethodGet, "/api/v1/analyses/job-1", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var job dto.AnalysisJobDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &job))
	assert.Equal(t, models.AnalysisCompleted, job.Status)
	require.NotNil(t, job.Result)

	w = do(r, http.MethodGet, "/api/v1/analyses/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAsyncRoutesDisabled(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{}, false)
	w := do(r, http.MethodPost, "/api/v1/analyses", `{"title":"t"}`, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFeedRoute(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{}, false)

	w := do(r, http.MethodGet, "/api/v1/feed?limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "新着リリース")

	w = do(r, http.MethodGet, "/api/v1/feed?limit=500", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	r := newTestRouter(&fakeAnalyzer{}, false)

	w := do(r, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(r, http.MethodOptions, "/api/v1/analyze", "", map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
