package analytics

import (
	"sort"

	"github.com/AI2HU/geodash/internal/models"
)

// DefaultHeatmapLimit is the number of concepts kept in the brand x concept matrix
const DefaultHeatmapLimit = 20

// DefaultHeatmapBrands are the matrix columns when the caller passes none
var DefaultHeatmapBrands = []string{"Samsung", "LG", "Sony", "TCL", "Hisense"}

type conceptTotals struct {
	name   string
	total  int
	brands map[string]int
}

// BrandConceptMatrix keeps the top limit concepts by total mentions across all brands
// and lays them out against a fixed brand column order. Ties keep encounter order.
func BrandConceptMatrix(rows []models.ConceptMentionRecord, brands []string, limit int) models.Heatmap {
	if len(brands) == 0 {
		brands = DefaultHeatmapBrands
	}
	if limit <= 0 {
		limit = DefaultHeatmapLimit
	}

	var ordered []*conceptTotals
	byName := make(map[string]*conceptTotals)
	for _, row := range rows {
		name := orDefault(row.Concept, DefaultConcept)
		entry, ok := byName[name]
		if !ok {
			entry = &conceptTotals{name: name, brands: make(map[string]int)}
			byName[name] = entry
			ordered = append(ordered, entry)
		}
		entry.total += row.Mentions
		entry.brands[orDefault(row.Brand, DefaultBrand)] += row.Mentions
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].total > ordered[j].total
	})
	if len(ordered) > limit {
		ordered = ordered[:limit]
	}

	out := models.Heatmap{
		Brands:   append([]string(nil), brands...),
		Concepts: make([]string, 0, len(ordered)),
		Matrix:   make([]models.HeatmapRow, 0, len(ordered)),
	}
	for _, entry := range ordered {
		row := models.HeatmapRow{Concept: entry.name, Values: make([]models.HeatmapCell, len(brands))}
		for i, brand := range brands {
			v := entry.brands[brand]
			row.Values[i] = models.HeatmapCell{Brand: brand, Value: v}
			if v > out.MaxValue {
				out.MaxValue = v
			}
		}
		out.Concepts = append(out.Concepts, entry.name)
		out.Matrix = append(out.Matrix, row)
	}

	return out
}
