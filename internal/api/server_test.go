package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/geodash/internal/analytics"
	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/llm"
	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/palette"
	"github.com/AI2HU/geodash/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSource struct {
	err             error
	mentionFilter   models.MentionFilter
	conceptFilter   models.ConceptFilter
	mentions        []models.MentionRecord
	conceptMentions []models.ConceptMentionRecord
}

func (f *fakeSource) FetchDailyMentions(ctx context.Context, filter models.MentionFilter) ([]models.MentionRecord, error) {
	f.mentionFilter = filter
	return f.mentions, f.err
}

func (f *fakeSource) FetchTopCategories(ctx context.Context, filter models.CategoryFilter) ([]models.CategorySummary, error) {
	return []models.CategorySummary{{ConceptCategory: "Picture", Mentions: 12}}, f.err
}

func (f *fakeSource) FetchConceptMentions(ctx context.Context, filter models.ConceptFilter) ([]models.ConceptMentionRecord, error) {
	f.conceptFilter = filter
	return f.conceptMentions, f.err
}

func (f *fakeSource) FetchCitedPages(ctx context.Context, filter models.CitedPageFilter) ([]models.CitedPageRecord, error) {
	return []models.CitedPageRecord{{URL: "https://www.samsung.com/tv", Domain: "samsung.com", PromptsCount: 3}}, f.err
}

func (f *fakeSource) FetchURLPrompts(ctx context.Context, filter models.URLPromptFilter) ([]models.URLPromptRecord, error) {
	return nil, f.err
}

func (f *fakeSource) Ping(ctx context.Context) error {
	return f.err
}

type echoProvider struct{}

func (echoProvider) Name() string { return "echo" }

func (echoProvider) Generate(ctx context.Context, prompt string, config llm.Config) (*llm.Response, error) {
	return &llm.Response{Text: "summary", Provider: "echo", Model: config.Model}, nil
}

func newTestServer(src *fakeSource, withInsights bool) *Server {
	dashboard := services.NewDashboardService(src, services.DashboardOptions{
		TargetBrand: "Samsung",
		Rules:       analytics.DefaultSourceRules("samsung.com"),
		Palette:     palette.Default(),
	})

	var insights *services.InsightsService
	if withInsights {
		registry := llm.NewRegistry()
		registry.Register(echoProvider{})
		insights = services.NewInsightsService(dashboard, registry, services.InsightsOptions{Provider: "echo", Model: "echo-1"})
	}

	s := NewServer(src, dashboard, insights, "https://dash.example.com")
	s.now = func() time.Time { return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC) }
	return s
}

func doRequest(t *testing.T, s *Server, method, target, body string) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var resp APIResponse
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestKPIsEndpoint(t *testing.T) {
	src := &fakeSource{mentions: []models.MentionRecord{
		{Date: "2025-03-10", Brand: "Samsung", Model: models.ModelSearchGPT, TotalMentions: 30, SentimentPositive: 20, SentimentNegative: 5, SentimentNeutral: 5},
		{Date: "2025-03-10", Brand: "LG", Model: models.ModelSearchGPT, TotalMentions: 70, SentimentPositive: 10, SentimentNegative: 10, SentimentNeutral: 50},
	}}
	s := newTestServer(src, false)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/kpis?days=7&model=search-gpt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)

	assert.Equal(t, models.MentionFilter{DateFrom: "2025-03-08", Model: models.ModelSearchGPT}, src.mentionFilter)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "30.0", data["share_of_voice"])
	assert.Equal(t, float64(45), data["visibility_score"])
	assert.Equal(t, "+15", data["sentiment_score"])
}

func TestDateFromPassesThroughUninterpreted(t *testing.T) {
	src := &fakeSource{}
	s := newTestServer(src, false)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/charts/treemap?date_from=yesterday", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	assert.Equal(t, "yesterday", src.conceptFilter.DateFrom)

	src.err = &backend.BackendError{Op: "fetch concept mentions", StatusCode: http.StatusBadRequest, Body: "invalid input syntax for type date"}
	rec, resp = doRequest(t, s, http.MethodGet, "/api/v1/charts/treemap?date_from=yesterday", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, resp.Success)
}

func TestDateFromWinsOverDays(t *testing.T) {
	src := &fakeSource{}
	s := newTestServer(src, false)

	rec, _ := doRequest(t, s, http.MethodGet, "/api/v1/charts/treemap?days=7&date_from=2025-01-01&brand=LG", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-01-01", src.conceptFilter.DateFrom)
	assert.Equal(t, "LG", src.conceptFilter.Brand)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/v1/charts/heatmap?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendErrorMapsToBadGateway(t *testing.T) {
	src := &fakeSource{err: &backend.BackendError{Op: "get_daily_mentions", StatusCode: 500, Body: "relation missing"}}
	s := newTestServer(src, false)

	rec, resp := doRequest(t, s, http.MethodGet, "/api/v1/charts/trend", "")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "500")
	assert.Contains(t, resp.Error, "relation missing")
}

func TestNetworkErrorMapsToServiceUnavailable(t *testing.T) {
	src := &fakeSource{err: &backend.NetworkError{Op: "semrush_cited_pages", Err: errors.New("connection refused")}}
	s := newTestServer(src, false)

	rec, _ := doRequest(t, s, http.MethodGet, "/api/v1/sources", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = doRequest(t, s, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChartRoutesRespond(t *testing.T) {
	s := newTestServer(&fakeSource{}, false)

	routes := []string{
		"/api/v1/health",
		"/api/v1/palette",
		"/api/v1/sources",
		"/api/v1/categories",
		"/api/v1/charts/trend?brands=Samsung,LG",
		"/api/v1/charts/concept-trend?concepts=OLED",
		"/api/v1/charts/hierarchy",
		"/api/v1/charts/heatmap",
		"/api/v1/charts/treemap",
		"/api/v1/charts/radar?models=search-gpt,perplexity",
		"/api/v1/charts/flow?topic=TVs",
		"/api/v1/charts/distribution",
		"/api/v1/charts/competitors",
		"/api/v1/charts/concepts",
		"/api/v1/charts/citations?limit=3",
	}
	for _, route := range routes {
		rec, resp := doRequest(t, s, http.MethodGet, route, "")
		assert.Equal(t, http.StatusOK, rec.Code, route)
		assert.True(t, resp.Success, route)
	}
}

func TestMiddlewareHeaders(t *testing.T) {
	s := newTestServer(&fakeSource{}, false)

	rec, _ := doRequest(t, s, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, "https://dash.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/kpis", nil)
	pre := httptest.NewRecorder()
	s.Handler().ServeHTTP(pre, req)
	assert.Equal(t, http.StatusNoContent, pre.Code)
}

func TestInsightsEndpoint(t *testing.T) {
	rec, resp := doRequest(t, newTestServer(&fakeSource{}, false), http.MethodPost, "/api/v1/insights", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "Insights are not configured", resp.Error)

	src := &fakeSource{}
	rec, resp = doRequest(t, newTestServer(src, true), http.MethodPost, "/api/v1/insights", `{"days": "30", "question": "why?"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2025-02-13", src.mentionFilter.DateFrom)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "summary", data["text"])
	assert.Equal(t, "echo-1", data["model"])

	rec, _ = doRequest(t, newTestServer(src, true), http.MethodPost, "/api/v1/insights", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInsightsQuestionLengthCountsCharacters(t *testing.T) {
	s := newTestServer(&fakeSource{}, true)

	accented := strings.Repeat("é", maxQuestionLength)
	rec, _ := doRequest(t, s, http.MethodPost, "/api/v1/insights", `{"question": "`+accented+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, resp := doRequest(t, s, http.MethodPost, "/api/v1/insights", `{"question": "`+accented+`é"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Question must be no more than 1000 characters long", resp.Error)
}

func TestDescribePeriod(t *testing.T) {
	assert.Equal(t, "the last 7 days", describePeriod("7", ""))
	assert.Equal(t, "since 2025-01-01", describePeriod("7", "2025-01-01"))
	assert.Equal(t, "all time", describePeriod("all", ""))
	assert.Equal(t, "all time", describePeriod("", ""))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Samsung", "LG"}, splitList(" Samsung, ,LG "))
	assert.Nil(t, splitList(""))
}
