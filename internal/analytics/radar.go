package analytics

import (
	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/palette"
)

// Radar metric names, in axis order
const (
	MetricTotalMentions     = "Total Mentions"
	MetricPositiveSentiment = "Positive Sentiment"
	MetricUniqueConcepts    = "Unique Concepts"
	MetricTopPositionRate   = "Top Position Rate"
)

// RadarMetrics lists the radar axes
var RadarMetrics = []string{
	MetricTotalMentions,
	MetricPositiveSentiment,
	MetricUniqueConcepts,
	MetricTopPositionRate,
}

// DefaultRadarModels are the engines compared when the caller passes none
var DefaultRadarModels = []models.ModelID{
	models.ModelSearchGPT,
	models.ModelGoogleAIOverview,
	models.ModelGoogleAIMode,
}

type modelTotals struct {
	mentions  int
	positive  int
	sentiment int
	concepts  map[string]struct{}
}

// CompareModels profiles each model on a 0-100 scale. Mentions and unique concepts are
// relative to the best model; positive sentiment is the model's own share.
// Top position rate has no data source and is reported as unavailable.
func CompareModels(mentions []models.MentionRecord, concepts []models.ConceptMentionRecord, ids []models.ModelID, p palette.Palette) models.ModelComparison {
	if len(ids) == 0 {
		ids = DefaultRadarModels
	}

	totals := make(map[models.ModelID]*modelTotals, len(ids))
	for _, id := range ids {
		totals[id] = &modelTotals{concepts: make(map[string]struct{})}
	}

	for _, row := range mentions {
		t, ok := totals[row.Model]
		if !ok {
			continue
		}
		t.mentions += row.TotalMentions
		t.positive += row.SentimentPositive
		t.sentiment += row.SentimentPositive + row.SentimentNegative + row.SentimentNeutral
	}
	for _, row := range concepts {
		t, ok := totals[row.Model]
		if !ok || row.Concept == "" {
			continue
		}
		t.concepts[row.Concept] = struct{}{}
	}

	var maxMentions, maxConcepts int
	for _, t := range totals {
		if t.mentions > maxMentions {
			maxMentions = t.mentions
		}
		if len(t.concepts) > maxConcepts {
			maxConcepts = len(t.concepts)
		}
	}

	out := models.ModelComparison{
		Metrics: append([]string(nil), RadarMetrics...),
		Data:    make([]models.ModelProfile, 0, len(ids)),
	}
	for _, id := range ids {
		t := totals[id]
		out.Data = append(out.Data, models.ModelProfile{
			Model: id,
			Label: p.ModelLabel(id),
			Color: p.ModelColor(id),
			Values: []models.MetricValue{
				available(percent(t.mentions, maxMentions)),
				available(percent(t.positive, t.sentiment)),
				available(percent(len(t.concepts), maxConcepts)),
				{Available: false},
			},
		})
	}

	return out
}

func available(v float64) models.MetricValue {
	return models.MetricValue{Value: round1(v), Available: true}
}
