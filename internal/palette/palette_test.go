package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AI2HU/geodash/internal/models"
)

func TestBrandColorLookupIgnoresCaseAndWhitespace(t *testing.T) {
	p := Default()

	assert.Equal(t, "#1428A0", p.BrandColor("Samsung"))
	assert.Equal(t, "#1428A0", p.BrandColor(" SAM sung "))
	assert.Equal(t, "#A50034", p.BrandColor("LG"))
}

func TestLookupFallbacks(t *testing.T) {
	p := Default()

	assert.Equal(t, FallbackBrandColor, p.BrandColor(""))
	assert.Equal(t, FallbackBrandColor, p.BrandColor("Panasonic"))
	assert.Equal(t, FallbackModelColor, p.ModelColor("unknown-engine"))
	assert.Equal(t, "unknown-engine", p.ModelLabel("unknown-engine"))
	assert.Equal(t, FallbackSentimentColor, p.SentimentColor("mixed"))
}

func TestZeroPaletteAnswersFallbacks(t *testing.T) {
	var p Palette

	assert.Equal(t, FallbackBrandColor, p.BrandColor("Samsung"))
	assert.Equal(t, FallbackModelColor, p.ModelColor(models.ModelSearchGPT))
	assert.Equal(t, "search-gpt", p.ModelLabel(models.ModelSearchGPT))
}

func TestPaletteIsIsolatedFromSourceTables(t *testing.T) {
	tables := DefaultTables()
	p := New(tables)

	tables.ModelLabels[string(models.ModelSearchGPT)] = "Changed"
	assert.Equal(t, "ChatGPT", p.ModelLabel(models.ModelSearchGPT))

	out := p.Tables()
	out.ModelLabels[string(models.ModelSearchGPT)] = "Changed again"
	assert.Equal(t, "ChatGPT", p.ModelLabel(models.ModelSearchGPT))
}

func TestMergeOverridesEntries(t *testing.T) {
	p := Merge(DefaultTables(), Tables{
		BrandColors: map[string]string{"Panasonic": "#123456"},
		ModelLabels: map[string]string{"search-gpt": "SearchGPT"},
	})

	assert.Equal(t, "#123456", p.BrandColor("panasonic"))
	assert.Equal(t, "#1428A0", p.BrandColor("Samsung"))
	assert.Equal(t, "SearchGPT", p.ModelLabel(models.ModelSearchGPT))
	assert.Equal(t, "Gemini", p.ModelLabel(models.ModelGemini))
}

func TestMergeOverridesBrandRegardlessOfCase(t *testing.T) {
	for i := 0; i < 50; i++ {
		p := Merge(DefaultTables(), Tables{
			BrandColors: map[string]string{"Samsung": "#000001", " L G ": "#000002"},
		})

		require.Equal(t, "#000001", p.BrandColor("Samsung"))
		require.Equal(t, "#000001", p.BrandColor("samsung"))
		require.Equal(t, "#000002", p.BrandColor("LG"))
	}
}

func TestSeriesColorCycles(t *testing.T) {
	p := Default()

	assert.Equal(t, "#1428A0", p.SeriesColor(0))
	assert.Equal(t, "#1428A0", p.SeriesColor(5))
	assert.Equal(t, "#00A0DF", p.SeriesColor(4))

	var empty Palette
	assert.Equal(t, FallbackModelColor, empty.SeriesColor(0))
}
