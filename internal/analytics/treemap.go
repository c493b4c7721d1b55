package analytics

import (
	"sort"

	"github.com/AI2HU/geodash/internal/models"
)

// ConceptBreakdown aggregates one brand's concepts into treemap tiles, largest first
func ConceptBreakdown(rows []models.ConceptMentionRecord, brand string) models.ConceptBreakdown {
	var order []string
	stats := make(map[string]*models.ConceptStats)

	for _, row := range rows {
		if row.Brand != brand {
			continue
		}
		name := orDefault(row.Concept, DefaultConcept)
		s, ok := stats[name]
		if !ok {
			s = &models.ConceptStats{}
			stats[name] = s
			order = append(order, name)
		}
		s.Mentions += row.Mentions
		s.Positive += row.SentimentPositive
		s.Negative += row.SentimentNegative
		s.Neutral += row.SentimentNeutral
	}

	leaves := make([]models.ConceptLeaf, 0, len(order))
	for _, name := range order {
		s := *stats[name]
		leaves = append(leaves, models.ConceptLeaf{
			Name:      name,
			Value:     s.Mentions,
			Sentiment: sentimentScore(s.Positive, s.Negative, s.Neutral),
			Stats:     s,
		})
	}
	sort.SliceStable(leaves, func(i, j int) bool {
		return leaves[i].Value > leaves[j].Value
	})

	return models.ConceptBreakdown{Name: brand, Children: leaves}
}

// sentimentScore is (positive - negative) / total, 0 when there is no sentiment
func sentimentScore(pos, neg, neu int) float64 {
	total := pos + neg + neu
	if total == 0 {
		return 0
	}
	return float64(pos-neg) / float64(total)
}
