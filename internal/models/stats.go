package models

// SentimentTriple holds positive, negative and neutral counts
type SentimentTriple struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Total returns the sum of all three components
func (s SentimentTriple) Total() int {
	return s.Positive + s.Negative + s.Neutral
}

// KPISummary represents dashboard KPIs derived from daily mention rows
type KPISummary struct {
	TargetBrand     string          `json:"target_brand"`
	ShareOfVoice    string          `json:"share_of_voice"`   // one decimal, e.g. "30.0"
	VisibilityScore int             `json:"visibility_score"` // 0-100
	SentimentScore  string          `json:"sentiment_score"`  // signed, e.g. "+15"
	TotalMentions   int             `json:"total_mentions"`
	TargetMentions  int             `json:"target_mentions"`
	BrandMentions   map[string]int  `json:"brand_mentions"`
	ModelMentions   map[string]int  `json:"model_mentions"`
	Sentiment       SentimentTriple `json:"sentiment"`
}

// SourceType is the classification of a cited domain
type SourceType string

const (
	SourceOwned      SourceType = "owned"
	SourceEarned     SourceType = "earned"
	SourceSocial     SourceType = "social"
	SourceCompetitor SourceType = "competitor"
	SourceOther      SourceType = "other"
)

// SourceTypes lists every source classification in display order
var SourceTypes = []SourceType{SourceOwned, SourceEarned, SourceSocial, SourceCompetitor, SourceOther}

// SourceTypeStats accumulates URLs and citations for one source type
type SourceTypeStats struct {
	Count     int `json:"count"`
	Citations int `json:"citations"`
}

// SourceVisibility represents how often owned pages are cited versus everything else
type SourceVisibility struct {
	Visibility     float64                        `json:"visibility"` // owned share of citations, one decimal
	OwnedCitations int                            `json:"owned_citations"`
	OwnedURLs      int                            `json:"owned_urls"`
	TotalCitations int                            `json:"total_citations"`
	TotalURLs      int                            `json:"total_urls"`
	SourceTypes    map[SourceType]SourceTypeStats `json:"source_types"`
}
