package analytics

import (
	"sort"

	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/palette"
)

// DefaultTrendBrands are the brands drawn when the caller does not pick any
var DefaultTrendBrands = []string{"Samsung", "LG", "Sony", "TCL", "Hisense"}

// BrandTrend builds one daily mention series per requested brand.
// Dates are ascending; a brand without rows on a date gets 0.
func BrandTrend(rows []models.MentionRecord, brands []string, p palette.Palette) models.TrendChart {
	if len(brands) == 0 {
		brands = DefaultTrendBrands
	}

	grid := newDateGrid(brands)
	for _, row := range rows {
		grid.add(row.Date, row.Brand, row.TotalMentions)
	}

	return grid.chart(func(i int, name string) string {
		return p.BrandColor(name)
	})
}

// ConceptTrend builds one daily mention series per requested concept, summed across brands
func ConceptTrend(rows []models.ConceptMentionRecord, concepts []string, p palette.Palette) models.TrendChart {
	grid := newDateGrid(concepts)
	for _, row := range rows {
		grid.add(row.Date, orDefault(row.Concept, DefaultConcept), row.Mentions)
	}

	return grid.chart(func(i int, name string) string {
		return p.SeriesColor(i)
	})
}

// dateGrid accumulates values per (date, key) for a fixed set of keys
type dateGrid struct {
	keys   []string
	wanted map[string]bool
	cells  map[string]map[string]int
}

func newDateGrid(keys []string) *dateGrid {
	wanted := make(map[string]bool, len(keys))
	for _, k := range keys {
		wanted[k] = true
	}
	return &dateGrid{keys: keys, wanted: wanted, cells: make(map[string]map[string]int)}
}

func (g *dateGrid) add(date, key string, value int) {
	if date == "" || !g.wanted[key] {
		return
	}
	day, ok := g.cells[date]
	if !ok {
		day = make(map[string]int)
		g.cells[date] = day
	}
	day[key] += value
}

func (g *dateGrid) chart(color func(i int, name string) string) models.TrendChart {
	dates := make([]string, 0, len(g.cells))
	for d := range g.cells {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	series := make([]models.Series, 0, len(g.keys))
	for i, key := range g.keys {
		values := make([]models.SeriesPoint, len(dates))
		for j, d := range dates {
			values[j] = models.SeriesPoint{Date: d, Value: g.cells[d][key]}
		}
		series = append(series, models.Series{Name: key, Color: color(i, key), Values: values})
	}

	return models.TrendChart{Dates: dates, Series: series}
}
