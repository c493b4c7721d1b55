package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AI2HU/geodash/internal/llm"
	"github.com/AI2HU/geodash/internal/models"
)

// InsightsOptions selects the provider and model used for narratives
type InsightsOptions struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Insight is a generated narrative together with the metrics it was written from
type Insight struct {
	Text        string                   `json:"text"`
	Provider    string                   `json:"provider"`
	Model       string                   `json:"model"`
	TokensUsed  int                      `json:"tokens_used"`
	LatencyMs   int64                    `json:"latency_ms"`
	GeneratedAt time.Time                `json:"generated_at"`
	KPIs        *models.KPISummary       `json:"kpis"`
	Sources     *models.SourceVisibility `json:"sources"`
}

// InsightsService provides business logic for LLM-written dashboard summaries
type InsightsService struct {
	dashboard   *DashboardService
	llmRegistry *llm.Registry
	opts        InsightsOptions
}

// NewInsightsService creates a new insights service
func NewInsightsService(dashboard *DashboardService, registry *llm.Registry, opts InsightsOptions) *InsightsService {
	return &InsightsService{
		dashboard:   dashboard,
		llmRegistry: registry,
		opts:        opts,
	}
}

// Generate computes the KPIs and source visibility for q and asks the LLM to summarize them.
// period is a human description of the date range, e.g. "the last 30 days".
func (s *InsightsService) Generate(ctx context.Context, q WidgetQuery, period, question string) (*Insight, error) {
	provider, err := s.llmRegistry.MustGet(s.opts.Provider)
	if err != nil {
		return nil, err
	}

	kpis, err := s.dashboard.KPIs(ctx, q)
	if err != nil {
		return nil, err
	}
	sources, err := s.dashboard.Sources(ctx, q)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[string]int, len(sources.SourceTypes))
	for kind, stats := range sources.SourceTypes {
		if stats.Citations > 0 {
			breakdown[string(kind)] = stats.Citations
		}
	}

	prompt := llm.GenerateInsightsPromptTemplate(llm.InsightsInput{
		TargetBrand:     kpis.TargetBrand,
		Period:          period,
		ShareOfVoice:    kpis.ShareOfVoice,
		VisibilityScore: kpis.VisibilityScore,
		SentimentScore:  kpis.SentimentScore,
		TargetMentions:  kpis.TargetMentions,
		TotalMentions:   kpis.TotalMentions,
		BrandMentions:   kpis.BrandMentions,
		ModelMentions:   kpis.ModelMentions,
		SourceShare:     sources.Visibility,
		OwnedCitations:  sources.OwnedCitations,
		TotalCitations:  sources.TotalCitations,
		SourceBreakdown: breakdown,
		Question:        strings.TrimSpace(question),
	})

	response, err := provider.Generate(ctx, prompt, llm.Config{
		Model:        s.opts.Model,
		SystemPrompt: llm.InsightsSystemPrompt,
		Temperature:  s.opts.Temperature,
		MaxTokens:    s.opts.MaxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate insights: %w", err)
	}
	if response.Error != "" {
		return nil, fmt.Errorf("LLM error: %s", response.Error)
	}

	return &Insight{
		Text:        strings.TrimSpace(response.Text),
		Provider:    response.Provider,
		Model:       response.Model,
		TokensUsed:  response.TokensUsed,
		LatencyMs:   response.LatencyMs,
		GeneratedAt: time.Now().UTC(),
		KPIs:        kpis,
		Sources:     sources,
	}, nil
}
