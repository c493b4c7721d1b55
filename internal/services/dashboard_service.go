package services

import (
	"context"
	"fmt"

	"github.com/AI2HU/geodash/internal/analytics"
	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/palette"
)

// defaultTrendConcepts is how many top concepts the concept trend draws when none are picked
const defaultTrendConcepts = 5

// WidgetQuery carries the filters a dashboard widget was asked for.
// Zero values mean "not filtered" or "use the widget default".
type WidgetQuery struct {
	DateFrom   string
	Model      models.ModelID
	Models     []models.ModelID
	Brand      string
	Brands     []string
	Concepts   []string
	Limit      int
	RowLimit   int
	Topic      string
	LLM        string
	Domain     string
	DomainLike string
}

// DashboardOptions configures the brand context of a dashboard
type DashboardOptions struct {
	TargetBrand string
	Brands      []string
	Rules       analytics.SourceRules
	Palette     palette.Palette
}

// DashboardService provides business logic for the dashboard widgets.
// Each method issues its own fetches and reshapes the rows for one chart.
type DashboardService struct {
	source  db.Source
	target  string
	brands  []string
	rules   analytics.SourceRules
	palette palette.Palette
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(source db.Source, opts DashboardOptions) *DashboardService {
	brands := opts.Brands
	if len(brands) == 0 {
		brands = analytics.DefaultTrendBrands
	}
	return &DashboardService{
		source:  source,
		target:  opts.TargetBrand,
		brands:  brands,
		rules:   opts.Rules,
		palette: opts.Palette,
	}
}

// TargetBrand returns the brand the KPIs are computed for
func (s *DashboardService) TargetBrand() string {
	return s.target
}

// Palette returns the color and label tables the charts are drawn with
func (s *DashboardService) Palette() palette.Palette {
	return s.palette
}

// KPIs returns the headline metrics for the target brand
func (s *DashboardService) KPIs(ctx context.Context, q WidgetQuery) (*models.KPISummary, error) {
	rows, err := s.dailyMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	kpis := analytics.CalculateKPIs(rows, s.target)
	return &kpis, nil
}

// Sources returns how cited pages split across owned, earned, social and competitor domains
func (s *DashboardService) Sources(ctx context.Context, q WidgetQuery) (*models.SourceVisibility, error) {
	rows, err := s.citedPages(ctx, q, q.RowLimit)
	if err != nil {
		return nil, err
	}
	vis := analytics.CalculateSourceVisibility(rows, s.rules)
	return &vis, nil
}

// BrandTrend returns daily mentions per brand
func (s *DashboardService) BrandTrend(ctx context.Context, q WidgetQuery) (*models.TrendChart, error) {
	rows, err := s.dailyMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	chart := analytics.BrandTrend(rows, s.pickBrands(q), s.palette)
	return &chart, nil
}

// ConceptTrend returns daily mentions per concept. Without explicit concepts
// the most mentioned ones are drawn.
func (s *DashboardService) ConceptTrend(ctx context.Context, q WidgetQuery) (*models.TrendChart, error) {
	rows, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}

	concepts := q.Concepts
	if len(concepts) == 0 {
		limit := q.Limit
		if limit <= 0 {
			limit = defaultTrendConcepts
		}
		concepts = analytics.BrandConceptMatrix(rows, s.brands, limit).Concepts
	}

	chart := analytics.ConceptTrend(rows, concepts, s.palette)
	return &chart, nil
}

// Hierarchy returns the category -> subcategory -> concept sunburst
func (s *DashboardService) Hierarchy(ctx context.Context, q WidgetQuery) (*models.HierarchyNode, error) {
	rows, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	return analytics.CategoryHierarchy(rows), nil
}

// Heatmap returns the brand x concept matrix
func (s *DashboardService) Heatmap(ctx context.Context, q WidgetQuery) (*models.Heatmap, error) {
	rows, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	heat := analytics.BrandConceptMatrix(rows, s.pickBrands(q), q.Limit)
	return &heat, nil
}

// ConceptBreakdown returns the concept treemap of one brand, the target brand by default
func (s *DashboardService) ConceptBreakdown(ctx context.Context, q WidgetQuery) (*models.ConceptBreakdown, error) {
	brand := s.pickBrand(q)
	q.Brand = brand

	rows, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	tree := analytics.ConceptBreakdown(rows, brand)
	return &tree, nil
}

// ModelComparison returns the radar profile of each AI engine
func (s *DashboardService) ModelComparison(ctx context.Context, q WidgetQuery) (*models.ModelComparison, error) {
	// the radar always compares engines, so the model filter does not apply
	q.Model = models.ModelAll

	mentions, err := s.dailyMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	concepts, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}

	radar := analytics.CompareModels(mentions, concepts, q.Models, s.palette)
	return &radar, nil
}

// Flow returns the topic -> prompt -> url Sankey graph
func (s *DashboardService) Flow(ctx context.Context, q WidgetQuery) (*models.FlowGraph, error) {
	prompts, err := s.source.FetchURLPrompts(ctx, models.URLPromptFilter{
		Topic: q.Topic,
		LLM:   q.LLM,
		Limit: q.RowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch url prompts: %w", err)
	}

	cited, err := s.citedPages(ctx, q, q.RowLimit)
	if err != nil {
		return nil, err
	}

	graph := analytics.FlowGraph(prompts, cited, s.rules.OwnedDomain)
	return &graph, nil
}

// Distribution returns the share of mentions per AI engine
func (s *DashboardService) Distribution(ctx context.Context, q WidgetQuery) ([]models.DistributionSlice, error) {
	q.Model = models.ModelAll
	rows, err := s.dailyMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	return analytics.ModelDistribution(rows, s.palette), nil
}

// Competitors returns the brand comparison bars
func (s *DashboardService) Competitors(ctx context.Context, q WidgetQuery) ([]models.BrandComparison, error) {
	q.Brand = ""
	rows, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	return analytics.CompetitorComparison(rows, q.Limit), nil
}

// ConceptBars returns the stacked sentiment bars of one brand's concepts
func (s *DashboardService) ConceptBars(ctx context.Context, q WidgetQuery) ([]models.ConceptSentimentBar, error) {
	brand := s.pickBrand(q)
	q.Brand = brand

	rows, err := s.conceptMentions(ctx, q)
	if err != nil {
		return nil, err
	}
	return analytics.ConceptSentimentBars(rows, brand, q.Limit), nil
}

// Citations returns the most cited pages as ranked cards
func (s *DashboardService) Citations(ctx context.Context, q WidgetQuery) ([]models.CitationCard, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = analytics.DefaultCitationLimit
	}

	rows, err := s.citedPages(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	return analytics.CitationList(rows, limit, analytics.DefaultPromptLimit), nil
}

// TopCategories returns the most mentioned concept categories
func (s *DashboardService) TopCategories(ctx context.Context, q WidgetQuery) ([]models.CategorySummary, error) {
	rows, err := s.source.FetchTopCategories(ctx, models.CategoryFilter{
		DateFrom: q.DateFrom,
		Model:    q.Model,
		Limit:    q.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top categories: %w", err)
	}
	return rows, nil
}

func (s *DashboardService) dailyMentions(ctx context.Context, q WidgetQuery) ([]models.MentionRecord, error) {
	rows, err := s.source.FetchDailyMentions(ctx, models.MentionFilter{
		DateFrom: q.DateFrom,
		Model:    q.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily mentions: %w", err)
	}
	return rows, nil
}

func (s *DashboardService) conceptMentions(ctx context.Context, q WidgetQuery) ([]models.ConceptMentionRecord, error) {
	rows, err := s.source.FetchConceptMentions(ctx, models.ConceptFilter{
		DateFrom: q.DateFrom,
		Brand:    q.Brand,
		Model:    q.Model,
		Limit:    q.RowLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch concept mentions: %w", err)
	}
	return rows, nil
}

func (s *DashboardService) citedPages(ctx context.Context, q WidgetQuery, limit int) ([]models.CitedPageRecord, error) {
	rows, err := s.source.FetchCitedPages(ctx, models.CitedPageFilter{
		Domain:     q.Domain,
		DomainLike: q.DomainLike,
		Limit:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch cited pages: %w", err)
	}
	return rows, nil
}

func (s *DashboardService) pickBrands(q WidgetQuery) []string {
	if len(q.Brands) > 0 {
		return q.Brands
	}
	return s.brands
}

func (s *DashboardService) pickBrand(q WidgetQuery) string {
	if q.Brand != "" {
		return q.Brand
	}
	return s.target
}
