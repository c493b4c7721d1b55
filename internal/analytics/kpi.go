package analytics

import (
	"fmt"
	"math"

	"github.com/AI2HU/geodash/internal/models"
)

// Default labels for missing grouping keys
const (
	DefaultBrand       = "Other"
	DefaultModel       = "unknown"
	DefaultCategory    = "Other"
	DefaultSubcategory = "General"
	DefaultConcept     = "Unknown"
)

// visibilityBoost scales share of voice into the 0-100 visibility score
const visibilityBoost = 1.5

// CalculateKPIs reduces daily mention rows into the dashboard KPIs for targetBrand
func CalculateKPIs(rows []models.MentionRecord, targetBrand string) models.KPISummary {
	summary := models.KPISummary{
		TargetBrand:   targetBrand,
		BrandMentions: make(map[string]int),
		ModelMentions: make(map[string]int),
	}

	for _, row := range rows {
		brand := orDefault(row.Brand, DefaultBrand)
		model := orDefault(string(row.Model), DefaultModel)

		summary.BrandMentions[brand] += row.TotalMentions
		summary.ModelMentions[model] += row.TotalMentions
		summary.TotalMentions += row.TotalMentions
		summary.Sentiment.Positive += row.SentimentPositive
		summary.Sentiment.Negative += row.SentimentNegative
		summary.Sentiment.Neutral += row.SentimentNeutral
	}

	summary.TargetMentions = summary.BrandMentions[targetBrand]

	share := percent(summary.TargetMentions, summary.TotalMentions)
	summary.ShareOfVoice = fmt.Sprintf("%.1f", share)
	summary.VisibilityScore = int(math.Round(math.Min(100, share*visibilityBoost)))

	var net float64
	if total := summary.Sentiment.Total(); total > 0 {
		net = float64(summary.Sentiment.Positive-summary.Sentiment.Negative) / float64(total) * 100
	}
	summary.SentimentScore = formatSigned(net)

	return summary
}

// formatSigned renders a whole-number score with an explicit sign, e.g. "+15" or "-7"
func formatSigned(v float64) string {
	r := math.Round(v)
	if r == 0 {
		// avoid "-0" for small negative values
		return "+0"
	}
	return fmt.Sprintf("%+.0f", r)
}

// percent returns part/total*100, or 0 when total is 0
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
