package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/geodash/internal/llm"
	"github.com/AI2HU/geodash/internal/models"
)

func newTestInsights(src *fakeSource, provider *fakeProvider) *InsightsService {
	registry := llm.NewRegistry()
	registry.Register(provider)
	return NewInsightsService(newTestDashboard(src), registry, InsightsOptions{
		Provider:    "fake",
		Model:       "fake-1",
		Temperature: 0.2,
		MaxTokens:   256,
	})
}

func insightsSource() *fakeSource {
	return &fakeSource{
		DailyMentionsFn: func(models.MentionFilter) ([]models.MentionRecord, error) {
			return sampleMentions, nil
		},
		CitedPagesFn: func(models.CitedPageFilter) ([]models.CitedPageRecord, error) {
			return []models.CitedPageRecord{{Domain: "samsung.com", PromptsCount: 2}}, nil
		},
	}
}

func TestGenerateBuildsPromptFromMetrics(t *testing.T) {
	var prompt string
	var config llm.Config
	provider := &fakeProvider{GenerateFn: func(p string, c llm.Config) (*llm.Response, error) {
		prompt, config = p, c
		return &llm.Response{Text: "  Samsung leads.  ", Provider: "fake", Model: c.Model, TokensUsed: 42}, nil
	}}

	insight, err := newTestInsights(insightsSource(), provider).Generate(context.Background(), WidgetQuery{}, "the last 30 days", " why? ")
	require.NoError(t, err)

	assert.Equal(t, "Samsung leads.", insight.Text)
	assert.Equal(t, 42, insight.TokensUsed)
	assert.Equal(t, "fake-1", insight.Model)
	assert.Equal(t, "30.0", insight.KPIs.ShareOfVoice)
	assert.Equal(t, 100.0, insight.Sources.Visibility)
	assert.False(t, insight.GeneratedAt.IsZero())

	assert.Equal(t, llm.InsightsSystemPrompt, config.SystemPrompt)
	assert.Equal(t, 256, config.MaxTokens)
	assert.True(t, strings.Contains(prompt, "Samsung"))
	assert.True(t, strings.Contains(prompt, "the last 30 days"))
	assert.True(t, strings.Contains(prompt, "why?"))
}

func TestGenerateUnknownProvider(t *testing.T) {
	svc := NewInsightsService(newTestDashboard(insightsSource()), llm.NewRegistry(), InsightsOptions{Provider: "missing"})

	_, err := svc.Generate(context.Background(), WidgetQuery{}, "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")
}

func TestGenerateProviderErrors(t *testing.T) {
	t.Run("transport", func(t *testing.T) {
		provider := &fakeProvider{GenerateFn: func(string, llm.Config) (*llm.Response, error) {
			return nil, errors.New("connection reset")
		}}
		_, err := newTestInsights(insightsSource(), provider).Generate(context.Background(), WidgetQuery{}, "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("response", func(t *testing.T) {
		provider := &fakeProvider{GenerateFn: func(string, llm.Config) (*llm.Response, error) {
			return &llm.Response{Error: "API error: 429 - slow down"}, nil
		}}
		_, err := newTestInsights(insightsSource(), provider).Generate(context.Background(), WidgetQuery{}, "", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})
}

func TestGenerateStopsOnFetchError(t *testing.T) {
	called := false
	provider := &fakeProvider{GenerateFn: func(string, llm.Config) (*llm.Response, error) {
		called = true
		return &llm.Response{}, nil
	}}
	src := &fakeSource{DailyMentionsFn: func(models.MentionFilter) ([]models.MentionRecord, error) {
		return nil, errors.New("down")
	}}

	_, err := newTestInsights(src, provider).Generate(context.Background(), WidgetQuery{}, "", "")
	require.Error(t, err)
	assert.False(t, called)
}
