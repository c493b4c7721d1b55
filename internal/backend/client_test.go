package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/geodash/internal/config"
	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/models"
)

var _ db.Source = (*Client)(nil)

type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// newTestClient starts a server that records the last request and answers with status and body.
func newTestClient(t *testing.T, status int, body string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.Query()
		captured.Header = r.Header.Clone()
		captured.Body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client := New(config.BackendConfig{URL: srv.URL + "/", APIKey: "anon-key", Timeout: 5 * time.Second})
	return client, captured
}

func TestQuerySendsCredentialsAndFilters(t *testing.T) {
	client, got := newTestClient(t, http.StatusOK, `[{"url":"https://a.com","domain":"a.com","prompts_count":3}]`)

	params := url.Values{}
	params.Set("domain", ILike("samsung"))
	params.Set("limit", "5")

	var rows []models.CitedPageRecord
	require.NoError(t, client.Query(context.Background(), "semrush_cited_pages", params, &rows))

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/rest/v1/semrush_cited_pages", got.Path)
	assert.Equal(t, "ilike.%samsung%", got.Query.Get("domain"))
	assert.Equal(t, "5", got.Query.Get("limit"))
	assert.Equal(t, "anon-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", got.Header.Get("Authorization"))

	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].PromptsCount)
}

func TestRPCPostsNamedParameters(t *testing.T) {
	client, got := newTestClient(t, http.StatusOK, `[]`)

	var out []models.MentionRecord
	err := client.RPC(context.Background(), "get_daily_mentions", map[string]interface{}{
		"date_from":    "2025-01-01",
		"model_filter": nil,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/rest/v1/rpc/get_daily_mentions", got.Path)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.JSONEq(t, `{"date_from":"2025-01-01","model_filter":null}`, string(got.Body))
	assert.Empty(t, out)
}

func TestNon2xxIsBackendError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusBadRequest, `{"message":"column does not exist"}`)

	var out []models.MentionRecord
	err := client.RPC(context.Background(), "get_daily_mentions", nil, &out)
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, http.StatusBadRequest, backendErr.StatusCode)
	assert.Contains(t, backendErr.Body, "column does not exist")
	assert.Contains(t, err.Error(), "400")
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client := New(config.BackendConfig{URL: endpoint, APIKey: "k", Timeout: time.Second})
	err := client.Query(context.Background(), "semrush_cited_pages", nil, nil)
	require.Error(t, err)

	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, "semrush_cited_pages", netErr.Op)
}

func TestMalformedJSONIsDecodeError(t *testing.T) {
	client, _ := newTestClient(t, http.StatusOK, `{not json`)

	var rows []models.CitedPageRecord
	err := client.Query(context.Background(), "semrush_cited_pages", nil, &rows)
	require.Error(t, err)

	var backendErr *BackendError
	assert.False(t, errors.As(err, &backendErr))
	assert.Contains(t, err.Error(), "failed to decode")
}

func TestUpsertSetsConflictAndPreferHeaders(t *testing.T) {
	client, got := newTestClient(t, http.StatusCreated, ``)

	records := []models.ConceptMentionRecord{{Date: "2025-01-01", Brand: "LG", Concept: "OLED", Mentions: 4}}
	require.NoError(t, client.Upsert(context.Background(), ResourceConceptMentions, "date,concept,model,brand", records))

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "date,concept,model,brand", got.Query.Get("on_conflict"))
	assert.Equal(t, "return=minimal,resolution=merge-duplicates", got.Header.Get("Prefer"))

	var sent []map[string]interface{}
	require.NoError(t, json.Unmarshal(got.Body, &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, "OLED", sent[0]["concept"])
}

func TestCanceledContextFailsBeforeSending(t *testing.T) {
	client, got := newTestClient(t, http.StatusOK, `[]`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Query(ctx, "semrush_cited_pages", nil, nil)
	require.Error(t, err)
	assert.Empty(t, got.Method)
}
