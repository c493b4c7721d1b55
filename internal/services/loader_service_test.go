package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/models"
)

const conceptMentionsJSON = `[
	{"date": "2025-01-01", "brand": "Samsung", "model": "search-gpt", "concept": "OLED", "mentions": 3},
	{"date": "2025-01-01", "brand": "Samsung", "model": "search-gpt", "concept": "OLED", "mentions": 8},
	{"date": "2025-01-01", "brand": "Samsung", "model": "search-gpt", "concept": "OLED", "mentions": 5},
	{"date": "2025-01-01", "brand": "LG", "model": "search-gpt", "concept": "OLED", "mentions": 2},
	{"date": "2025-01-02", "brand": "LG", "model": "search-gpt", "concept": "Price", "mentions": 1}
]`

func TestDedupeConceptMentionsKeepsMostMentions(t *testing.T) {
	rows := []models.ConceptMentionRecord{
		{Date: "d", Concept: "c", Model: "m", Brand: "b", Mentions: 1},
		{Date: "d", Concept: "c", Model: "m", Brand: "other", Mentions: 4},
		{Date: "d", Concept: "c", Model: "m", Brand: "b", Mentions: 6},
	}

	out := DedupeConceptMentions(rows)
	require.Len(t, out, 2)
	assert.Equal(t, 6, out[0].Mentions)
	assert.Equal(t, "other", out[1].Brand)
}

func TestDedupeURLPromptsKeepsFirst(t *testing.T) {
	rows := []models.URLPromptRecord{
		{URL: "u", PromptHash: "h", Country: "us", Volume: 1},
		{URL: "u", PromptHash: "h", Country: "us", Volume: 9},
		{URL: "u", PromptHash: "h", Country: "uk", Volume: 2},
	}

	out := DedupeURLPrompts(rows)
	require.Len(t, out, 2)
	assert.Equal(t, 1, out[0].Volume)
	assert.Equal(t, "uk", out[1].Country)
}

func TestLoadConceptMentionsBatches(t *testing.T) {
	up := &fakeUpserter{}
	svc := NewLoaderService(up, 2)

	result, err := svc.LoadConceptMentions(context.Background(), strings.NewReader(conceptMentionsJSON))
	require.NoError(t, err)

	assert.Equal(t, &LoadResult{Read: 5, Unique: 3, Loaded: 3, Batches: 2}, result)
	require.Len(t, up.calls, 2)
	assert.Equal(t, backend.ResourceConceptMentions, up.calls[0].Resource)
	assert.Equal(t, ConceptMentionsConflict, up.calls[0].OnConflict)

	first := up.calls[0].Records.([]models.ConceptMentionRecord)
	require.Len(t, first, 2)
	assert.Equal(t, 8, first[0].Mentions)
	assert.Len(t, up.calls[1].Records.([]models.ConceptMentionRecord), 1)
}

func TestLoadContinuesPastFailedBatch(t *testing.T) {
	up := &fakeUpserter{}
	up.UpsertFn = func(call upsertCall) error {
		if len(up.calls) == 1 {
			return &backend.BackendError{Op: "semrush_concept_mentions", StatusCode: 409, Body: "conflict"}
		}
		return nil
	}
	svc := NewLoaderService(up, 2)

	result, err := svc.LoadConceptMentions(context.Background(), strings.NewReader(conceptMentionsJSON))
	require.Error(t, err)

	var target *backend.BackendError
	assert.True(t, errors.As(err, &target))
	assert.Equal(t, 2, result.Batches)
	assert.Equal(t, 1, result.FailedBatches)
	assert.Equal(t, 1, result.Loaded)
}

func TestLoadRejectsBadJSON(t *testing.T) {
	_, err := NewLoaderService(&fakeUpserter{}, 0).LoadConceptMentions(context.Background(), strings.NewReader("{"))
	assert.Error(t, err)
}

func TestLoadStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	up := &fakeUpserter{}
	_, err := NewLoaderService(up, 2).LoadConceptMentions(ctx, strings.NewReader(conceptMentionsJSON))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, up.calls)
}

func TestLoadURLPromptsFromDirectory(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"b.json":    `{"url": "https://b.com", "prompts": [{"prompt": "two", "prompt_hash": "h2", "topic": "TVs", "volume": 5}]}`,
		"a.json":    `{"url": "https://a.com", "prompts": [{"prompt": "one", "prompt_hash": "h1"}, {"prompt": "one again", "prompt_hash": "h1"}]}`,
		"notes.txt":  `ignored`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}

	docs, err := ReadURLPromptDocs(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "https://a.com", docs[0].URL)

	up := &fakeUpserter{}
	result, err := NewLoaderService(up, 0).LoadURLPrompts(context.Background(), docs, "us")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Read)
	assert.Equal(t, 2, result.Unique)

	require.Len(t, up.calls, 1)
	assert.Equal(t, URLPromptsConflict, up.calls[0].OnConflict)
	rows := up.calls[0].Records.([]models.URLPromptRecord)
	assert.Equal(t, "one", rows[0].Prompt)
	assert.Equal(t, "us", rows[1].Country)
	assert.Equal(t, 5, rows[1].Volume)
}

func TestLoadCitedPagesTagsMetadata(t *testing.T) {
	doc := `{
		"metadata": {"country": "us", "category": "TVs", "domain": "samsung.com"},
		"rows": [{"url": "https://samsung.com/a", "prompts_count": 4}, {"url": "https://samsung.com/b", "prompts_count": 1}]
	}`

	up := &fakeUpserter{}
	result, err := NewLoaderService(up, 0).LoadCitedPages(context.Background(), strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Loaded)

	require.Len(t, up.calls, 1)
	assert.Equal(t, backend.ResourceCitedPages, up.calls[0].Resource)
	assert.Empty(t, up.calls[0].OnConflict)
	rows := up.calls[0].Records.([]models.CitedPageRecord)
	assert.Equal(t, models.CitedPageRecord{URL: "https://samsung.com/a", PromptsCount: 4, Country: "us", Category: "TVs", Domain: "samsung.com"}, rows[0])
}
