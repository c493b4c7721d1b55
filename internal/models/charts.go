package models

import "encoding/json"

// Chart models handed to the renderer

// SeriesPoint is one value of a time series
type SeriesPoint struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// Series is a named, colored time series
type Series struct {
	Name   string        `json:"name"`
	Color  string        `json:"color,omitempty"`
	Values []SeriesPoint `json:"values"`
}

// TrendChart is a multi-line chart over a shared date axis
type TrendChart struct {
	Dates  []string `json:"dates"`
	Series []Series `json:"series"`
}

// HierarchyNode is a node of the category sunburst. Leaves carry Value and Sentiment.
type HierarchyNode struct {
	Name      string           `json:"name"`
	Value     int              `json:"value,omitempty"`
	Sentiment *SentimentTriple `json:"sentiment,omitempty"`
	Children  []*HierarchyNode `json:"children,omitempty"`
}

// MarshalJSON always writes value on leaves, including zero counts
func (n HierarchyNode) MarshalJSON() ([]byte, error) {
	type node HierarchyNode
	if n.Sentiment == nil {
		return json.Marshal(node(n))
	}
	return json.Marshal(struct {
		node
		Value int `json:"value"`
	}{node(n), n.Value})
}

// HeatmapCell is the mention count of one brand for one concept
type HeatmapCell struct {
	Brand string `json:"brand"`
	Value int    `json:"value"`
}

// HeatmapRow is one concept row of the brand x concept matrix
type HeatmapRow struct {
	Concept string        `json:"concept"`
	Values  []HeatmapCell `json:"values"`
}

// Heatmap is the brand x concept matrix
type Heatmap struct {
	Brands   []string     `json:"brands"`
	Concepts []string     `json:"concepts"`
	Matrix   []HeatmapRow `json:"matrix"`
	MaxValue int          `json:"max_value"`
}

// ConceptStats holds the mention and sentiment totals of a concept
type ConceptStats struct {
	Mentions int `json:"mentions"`
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// ConceptLeaf is a treemap tile sized by mentions and colored by sentiment
type ConceptLeaf struct {
	Name      string       `json:"name"`
	Value     int          `json:"value"`
	Sentiment float64      `json:"sentiment"` // (positive - negative) / total, in [-1, 1]
	Stats     ConceptStats `json:"stats"`
}

// ConceptBreakdown is the treemap of one brand's concepts
type ConceptBreakdown struct {
	Name     string        `json:"name"`
	Children []ConceptLeaf `json:"children"`
}

// MetricValue is a radar value that may not be backed by data yet
type MetricValue struct {
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// ModelProfile is one polygon of the model comparison radar
type ModelProfile struct {
	Model  ModelID       `json:"model"`
	Label  string        `json:"label"`
	Color  string        `json:"color"`
	Values []MetricValue `json:"values"`
}

// ModelComparison is the radar chart across AI answer engines
type ModelComparison struct {
	Metrics []string       `json:"metrics"`
	Data    []ModelProfile `json:"data"`
}

// FlowNodeType is the column a flow node belongs to
type FlowNodeType string

const (
	FlowTopic  FlowNodeType = "topic"
	FlowPrompt FlowNodeType = "prompt"
	FlowURL    FlowNodeType = "url"
)

// FlowNode is a node of the topic -> prompt -> url graph
type FlowNode struct {
	Name  string       `json:"name"`
	Type  FlowNodeType `json:"type"`
	Owned bool         `json:"owned,omitempty"`
}

// FlowLink connects two nodes by index
type FlowLink struct {
	Source int `json:"source"`
	Target int `json:"target"`
	Value  int `json:"value"`
}

// FlowGraph is the Sankey input
type FlowGraph struct {
	Nodes []FlowNode `json:"nodes"`
	Links []FlowLink `json:"links"`
}

// DistributionSlice is one donut slice
type DistributionSlice struct {
	Model   ModelID `json:"model"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Value   int     `json:"value"`
	Percent float64 `json:"percent"`
}

// BrandComparison is one competitor bar
type BrandComparison struct {
	Brand          string  `json:"brand_name"`
	Mentions       int     `json:"mentions"`
	UniqueConcepts int     `json:"unique_concepts"`
	PositivePct    float64 `json:"positive_pct"`
}

// ConceptSentimentBar is one stacked bar of concept sentiment
type ConceptSentimentBar struct {
	Concept  string `json:"concept"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	Total    int    `json:"total"`
}

// CitationCard is one entry of the cited pages list
type CitationCard struct {
	Rank         int             `json:"rank"`
	URL          string          `json:"url"`
	Path         string          `json:"path"`
	DisplayTitle string          `json:"display_title"`
	PromptsCount int             `json:"prompts_count"`
	Prompts      []PromptExample `json:"prompts"`
}
