package analytics

import (
	"sort"

	"github.com/AI2HU/geodash/internal/models"
)

// Bar chart defaults
const (
	DefaultCompetitorLimit = 5
	DefaultConceptBarLimit = 10
)

// CompetitorComparison ranks brands by concept mentions with their concept breadth
// and positive share
func CompetitorComparison(rows []models.ConceptMentionRecord, limit int) []models.BrandComparison {
	if limit <= 0 {
		limit = DefaultCompetitorLimit
	}

	type brandTotals struct {
		mentions  int
		positive  int
		sentiment int
		concepts  map[string]struct{}
	}

	var order []string
	byBrand := make(map[string]*brandTotals)
	for _, row := range rows {
		brand := orDefault(row.Brand, DefaultBrand)
		t, ok := byBrand[brand]
		if !ok {
			t = &brandTotals{concepts: make(map[string]struct{})}
			byBrand[brand] = t
			order = append(order, brand)
		}
		t.mentions += row.Mentions
		t.positive += row.SentimentPositive
		t.sentiment += row.SentimentPositive + row.SentimentNegative + row.SentimentNeutral
		if row.Concept != "" {
			t.concepts[row.Concept] = struct{}{}
		}
	}

	bars := make([]models.BrandComparison, 0, len(order))
	for _, brand := range order {
		t := byBrand[brand]
		bars = append(bars, models.BrandComparison{
			Brand:          brand,
			Mentions:       t.mentions,
			UniqueConcepts: len(t.concepts),
			PositivePct:    round1(percent(t.positive, t.sentiment)),
		})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Mentions > bars[j].Mentions
	})
	if len(bars) > limit {
		bars = bars[:limit]
	}

	return bars
}

// ConceptSentimentBars stacks positive, neutral and negative counts per concept.
// An empty brand keeps every brand's rows.
func ConceptSentimentBars(rows []models.ConceptMentionRecord, brand string, limit int) []models.ConceptSentimentBar {
	if limit <= 0 {
		limit = DefaultConceptBarLimit
	}

	var order []string
	byConcept := make(map[string]*models.ConceptSentimentBar)
	for _, row := range rows {
		if brand != "" && row.Brand != brand {
			continue
		}
		name := orDefault(row.Concept, DefaultConcept)
		bar, ok := byConcept[name]
		if !ok {
			bar = &models.ConceptSentimentBar{Concept: name}
			byConcept[name] = bar
			order = append(order, name)
		}
		bar.Positive += row.SentimentPositive
		bar.Neutral += row.SentimentNeutral
		bar.Negative += row.SentimentNegative
		bar.Total = bar.Positive + bar.Neutral + bar.Negative
	}

	bars := make([]models.ConceptSentimentBar, 0, len(order))
	for _, name := range order {
		bars = append(bars, *byConcept[name])
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Total > bars[j].Total
	})
	if len(bars) > limit {
		bars = bars[:limit]
	}

	return bars
}
