package google

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/AI2HU/geodash/internal/llm"
)

// DefaultModel is used when the config leaves the model empty
const DefaultModel = "gemini-2.0-flash"

// Provider implements the LLM Provider interface for Google AI
type Provider struct {
	apiKey  string
	baseURL string
	client  *genai.Client
}

// New creates a new Google provider. The client is created lazily on first use
// when it cannot be built up front.
func New(apiKey, baseURL string) *Provider {
	p := &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
	}
	if client, err := p.newClient(context.Background()); err == nil {
		p.client = client
	}
	return p
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "google"
}

func (p *Provider) newClient(ctx context.Context) (*genai.Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  p.apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if p.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}
	return genai.NewClient(ctx, cfg)
}

// Generate sends a prompt to Google AI and returns the response
func (p *Provider) Generate(ctx context.Context, prompt string, config llm.Config) (*llm.Response, error) {
	startTime := time.Now()

	model := DefaultModel
	if config.Model != "" {
		model = config.Model
	}

	client := p.client
	if client == nil {
		var err error
		client, err = p.newClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create Google client: %w", err)
		}
	}

	content := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	generationConfig := &genai.GenerateContentConfig{
		Temperature: float32Ptr(float32(config.Temperature)),
	}
	if config.MaxTokens > 0 {
		generationConfig.MaxOutputTokens = int32(config.MaxTokens)
	}
	if config.SystemPrompt != "" {
		generationConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: config.SystemPrompt}},
		}
	}

	result, err := client.Models.GenerateContent(ctx, model, content, generationConfig)
	if err != nil {
		return nil, fmt.Errorf("Google AI API error: %w", err)
	}

	var parts []string
	if len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		for _, part := range result.Candidates[0].Content.Parts {
			if part != nil && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
	}

	tokensUsed := 0
	if result.UsageMetadata != nil {
		tokensUsed = int(result.UsageMetadata.TotalTokenCount)
	}

	resp := &llm.Response{
		Text:       strings.Join(parts, ""),
		TokensUsed: tokensUsed,
		LatencyMs:  time.Since(startTime).Milliseconds(),
		Model:      model,
		Provider:   p.Name(),
	}
	if resp.Text == "" {
		resp.Error = "no text returned from API"
	}
	return resp, nil
}

func float32Ptr(f float32) *float32 {
	return &f
}
