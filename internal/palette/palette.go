package palette

import (
	"strings"

	"github.com/AI2HU/geodash/internal/models"
)

// Fallback colors for keys missing from the tables
const (
	FallbackBrandColor     = "#9e9e9e"
	FallbackModelColor     = "#8091df"
	FallbackSentimentColor = "#9e9e9e"
)

// Palette is an immutable set of color and label lookup tables.
// The zero value is usable and answers every lookup with the fallback.
type Palette struct {
	brandColors     map[string]string
	modelColors     map[string]string
	modelLabels     map[string]string
	sentimentColors map[string]string
	seriesColors    []string
}

// Tables holds the raw lookup maps a Palette is built from
type Tables struct {
	BrandColors     map[string]string `yaml:"brand_colors,omitempty" json:"brand_colors,omitempty"`
	ModelColors     map[string]string `yaml:"model_colors,omitempty" json:"model_colors,omitempty"`
	ModelLabels     map[string]string `yaml:"model_labels,omitempty" json:"model_labels,omitempty"`
	SentimentColors map[string]string `yaml:"sentiment_colors,omitempty" json:"sentiment_colors,omitempty"`
	SeriesColors    []string          `yaml:"series_colors,omitempty" json:"series_colors,omitempty"`
}

// DefaultTables returns the built-in brand, model and sentiment tables
func DefaultTables() Tables {
	return Tables{
		BrandColors: map[string]string{
			"samsung": "#1428A0",
			"lg":      "#A50034",
			"sony":    "#000000",
			"tcl":     "#E31937",
			"hisense": "#00A0DF",
			"xbox":    "#107C10",
			"roku":    "#6C3C97",
			"other":   "#9e9e9e",
		},
		ModelColors: map[string]string{
			string(models.ModelSearchGPT):        "#01c3b0",
			string(models.ModelGoogleAIOverview): "#0277c6",
			string(models.ModelGoogleAIMode):     "#feb447",
			string(models.ModelPerplexity):       "#22c55e",
			string(models.ModelClaude):           "#d97706",
			string(models.ModelCopilot):          "#0ea5e9",
			string(models.ModelGemini):           "#8b5cf6",
		},
		ModelLabels: map[string]string{
			string(models.ModelSearchGPT):        "ChatGPT",
			string(models.ModelGoogleAIOverview): "Google AI Overview",
			string(models.ModelGoogleAIMode):     "Google AI Mode",
			string(models.ModelPerplexity):       "Perplexity",
			string(models.ModelClaude):           "Claude",
			string(models.ModelCopilot):          "Copilot",
			string(models.ModelGemini):           "Gemini",
		},
		SentimentColors: map[string]string{
			"positive": "#96d551",
			"neutral":  "#9e9e9e",
			"negative": "#ff4438",
		},
		SeriesColors: []string{"#1428A0", "#01c3b0", "#feb447", "#A50034", "#00A0DF"},
	}
}

// Default returns the palette built from DefaultTables
func Default() Palette {
	return New(DefaultTables())
}

// New builds a palette from copies of the given tables
func New(t Tables) Palette {
	brands := make(map[string]string, len(t.BrandColors))
	for k, v := range t.BrandColors {
		brands[brandKey(k)] = v
	}
	return Palette{
		brandColors:     brands,
		modelColors:     copyMap(t.ModelColors),
		modelLabels:     copyMap(t.ModelLabels),
		sentimentColors: copyMap(t.SentimentColors),
		seriesColors:    append([]string(nil), t.SeriesColors...),
	}
}

// Merge returns a palette with the overrides layered on top of the base tables
func Merge(base, overrides Tables) Palette {
	return New(Tables{
		BrandColors:     mergeBrands(base.BrandColors, overrides.BrandColors),
		ModelColors:     mergeMap(base.ModelColors, overrides.ModelColors),
		ModelLabels:     mergeMap(base.ModelLabels, overrides.ModelLabels),
		SentimentColors: mergeMap(base.SentimentColors, overrides.SentimentColors),
		SeriesColors:    mergeSeries(base.SeriesColors, overrides.SeriesColors),
	})
}

// BrandColor looks up a brand case-insensitively, ignoring whitespace
func (p Palette) BrandColor(brand string) string {
	if brand == "" {
		return FallbackBrandColor
	}
	if c, ok := p.brandColors[brandKey(brand)]; ok {
		return c
	}
	return FallbackBrandColor
}

// ModelColor returns the chart color of a model
func (p Palette) ModelColor(model models.ModelID) string {
	if c, ok := p.modelColors[string(model)]; ok {
		return c
	}
	return FallbackModelColor
}

// ModelLabel returns the display name of a model, or the identifier itself
func (p Palette) ModelLabel(model models.ModelID) string {
	if l, ok := p.modelLabels[string(model)]; ok {
		return l
	}
	return string(model)
}

// SentimentColor returns the color of "positive", "neutral" or "negative"
func (p Palette) SentimentColor(sentiment string) string {
	if c, ok := p.sentimentColors[strings.ToLower(sentiment)]; ok {
		return c
	}
	return FallbackSentimentColor
}

// SeriesColor cycles through the ordinal series colors
func (p Palette) SeriesColor(i int) string {
	if len(p.seriesColors) == 0 || i < 0 {
		return FallbackModelColor
	}
	return p.seriesColors[i%len(p.seriesColors)]
}

// Tables returns copies of the lookup tables, for serialization
func (p Palette) Tables() Tables {
	return Tables{
		BrandColors:     copyMap(p.brandColors),
		ModelColors:     copyMap(p.modelColors),
		ModelLabels:     copyMap(p.modelLabels),
		SentimentColors: copyMap(p.sentimentColors),
		SeriesColors:    append([]string(nil), p.seriesColors...),
	}
}

func brandKey(brand string) string {
	return strings.ToLower(strings.Join(strings.Fields(brand), ""))
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mergeMap(base, overrides map[string]string) map[string]string {
	out := copyMap(base)
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// mergeBrands layers overrides on base after normalizing both to brand keys
func mergeBrands(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[brandKey(k)] = v
	}
	for k, v := range overrides {
		out[brandKey(k)] = v
	}
	return out
}

func mergeSeries(base, overrides []string) []string {
	if len(overrides) > 0 {
		return overrides
	}
	return base
}
