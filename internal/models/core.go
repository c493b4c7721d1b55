package models

// Core domain models

// ModelID identifies an AI answer engine tracked by the backend
type ModelID string

const (
	ModelAll              ModelID = "all"
	ModelSearchGPT        ModelID = "search-gpt"
	ModelGoogleAIOverview ModelID = "google-ai-overview"
	ModelGoogleAIMode     ModelID = "google-ai-mode"
	ModelPerplexity       ModelID = "perplexity"
	ModelClaude           ModelID = "claude"
	ModelCopilot          ModelID = "copilot"
	ModelGemini           ModelID = "gemini"
)

// KnownModels lists every model identifier the backend emits
var KnownModels = []ModelID{
	ModelSearchGPT,
	ModelGoogleAIOverview,
	ModelGoogleAIMode,
	ModelPerplexity,
	ModelClaude,
	ModelCopilot,
	ModelGemini,
}

// MentionRecord is one pre-aggregated row of brand mentions per day, model and brand
type MentionRecord struct {
	Date              string  `json:"date"` // ISO calendar day, YYYY-MM-DD
	Brand             string  `json:"brand"`
	Model             ModelID `json:"model"`
	TotalMentions     int     `json:"total_mentions"`
	SentimentPositive int     `json:"sentiment_positive"`
	SentimentNegative int     `json:"sentiment_negative"`
	SentimentNeutral  int     `json:"sentiment_neutral"`
}

// ConceptMentionRecord is one row of concept mentions for a brand
type ConceptMentionRecord struct {
	Date               string  `json:"date"`
	Brand              string  `json:"brand"`
	Model              ModelID `json:"model,omitempty"`
	Concept            string  `json:"concept"`
	ConceptCategory    string  `json:"concept_category"`
	ConceptSubcategory string  `json:"concept_subcategory"`
	Mentions           int     `json:"mentions"`
	SentimentPositive  int     `json:"sentiment_positive"`
	SentimentNegative  int     `json:"sentiment_negative"`
	SentimentNeutral   int     `json:"sentiment_neutral"`
}

// PromptExample is a prompt that triggered a citation, with its search volume
type PromptExample struct {
	Prompt string `json:"prompt"`
	Volume int    `json:"volume,omitempty"`
}

// CitedPageRecord is a URL cited by AI answer engines as a source
type CitedPageRecord struct {
	Domain       string          `json:"domain"`
	URL          string          `json:"url"`
	PromptsCount int             `json:"prompts_count"`
	Title        string          `json:"title,omitempty"`
	Country      string          `json:"country,omitempty"`
	Category     string          `json:"category,omitempty"`
	Prompts      []PromptExample `json:"prompts,omitempty"`
}

// URLPromptRecord links a cited URL to a prompt that made an engine cite it
type URLPromptRecord struct {
	URL                  string `json:"url"`
	Prompt               string `json:"prompt"`
	PromptHash           string `json:"prompt_hash,omitempty"`
	Topic                string `json:"topic,omitempty"`
	LLM                  string `json:"llm,omitempty"`
	Volume               int    `json:"volume,omitempty"`
	MentionedBrandsCount int    `json:"mentioned_brands_count,omitempty"`
	UsedSourcesCount     int    `json:"used_sources_count,omitempty"`
	Country              string `json:"country,omitempty"`
}

// CategorySummary is a row returned by the top categories procedure
type CategorySummary struct {
	ConceptCategory   string `json:"concept_category"`
	Mentions          int    `json:"mentions"`
	SentimentPositive int    `json:"sentiment_positive"`
	SentimentNegative int    `json:"sentiment_negative"`
	SentimentNeutral  int    `json:"sentiment_neutral"`
}
