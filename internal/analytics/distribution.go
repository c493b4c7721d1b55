package analytics

import (
	"sort"

	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/palette"
)

// ModelDistribution splits total mentions by model for the donut chart, largest first
func ModelDistribution(rows []models.MentionRecord, p palette.Palette) []models.DistributionSlice {
	var order []models.ModelID
	sums := make(map[models.ModelID]int)
	total := 0

	for _, row := range rows {
		id := models.ModelID(orDefault(string(row.Model), DefaultModel))
		if _, ok := sums[id]; !ok {
			order = append(order, id)
		}
		sums[id] += row.TotalMentions
		total += row.TotalMentions
	}

	slices := make([]models.DistributionSlice, 0, len(order))
	for _, id := range order {
		slices = append(slices, models.DistributionSlice{
			Model:   id,
			Label:   p.ModelLabel(id),
			Color:   p.ModelColor(id),
			Value:   sums[id],
			Percent: round1(percent(sums[id], total)),
		})
	}
	sort.SliceStable(slices, func(i, j int) bool {
		return slices[i].Value > slices[j].Value
	})

	return slices
}
