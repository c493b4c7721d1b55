package backend

import (
	"context"
	"net/url"
	"strconv"

	"github.com/AI2HU/geodash/internal/models"
)

// Backend resources and procedures
const (
	ResourceConceptMentions = "semrush_concept_mentions"
	ResourceCitedPages      = "semrush_cited_pages"
	ResourceURLPrompts      = "semrush_url_prompts"

	ProcDailyMentions = "get_daily_mentions"
	ProcTopCategories = "get_top_categories"

	DefaultCategoryLimit = 10
)

// FetchDailyMentions returns mentions aggregated by date, model and brand
func (c *Client) FetchDailyMentions(ctx context.Context, filter models.MentionFilter) ([]models.MentionRecord, error) {
	params := map[string]interface{}{
		"date_from":    nullable(filter.DateFrom),
		"model_filter": modelParam(filter.Model),
	}

	var rows []models.MentionRecord
	if err := c.RPC(ctx, ProcDailyMentions, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchTopCategories returns concept categories with their sentiment breakdown
func (c *Client) FetchTopCategories(ctx context.Context, filter models.CategoryFilter) ([]models.CategorySummary, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}

	params := map[string]interface{}{
		"date_from":    nullable(filter.DateFrom),
		"model_filter": modelParam(filter.Model),
		"limit_count":  limit,
	}

	var rows []models.CategorySummary
	if err := c.RPC(ctx, ProcTopCategories, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchConceptMentions returns concept mention rows, newest first
func (c *Client) FetchConceptMentions(ctx context.Context, filter models.ConceptFilter) ([]models.ConceptMentionRecord, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "date.desc,mentions.desc")
	if filter.DateFrom != "" {
		params.Set("date", Gte(filter.DateFrom))
	}
	if filter.Brand != "" {
		params.Set("brand", Eq(filter.Brand))
	}
	if !filter.Model.IsAll() {
		params.Set("model", Eq(string(filter.Model)))
	}
	setLimit(params, filter.Limit)

	var rows []models.ConceptMentionRecord
	if err := c.Query(ctx, ResourceConceptMentions, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchCitedPages returns cited pages, most cited first
func (c *Client) FetchCitedPages(ctx context.Context, filter models.CitedPageFilter) ([]models.CitedPageRecord, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "prompts_count.desc")
	if filter.Domain != "" {
		params.Set("domain", Eq(filter.Domain))
	}
	if filter.DomainLike != "" {
		params.Set("domain", ILike(filter.DomainLike))
	}
	setLimit(params, filter.Limit)

	var rows []models.CitedPageRecord
	if err := c.Query(ctx, ResourceCitedPages, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// FetchURLPrompts returns prompts that led engines to cite a URL, highest volume first
func (c *Client) FetchURLPrompts(ctx context.Context, filter models.URLPromptFilter) ([]models.URLPromptRecord, error) {
	params := url.Values{}
	params.Set("select", "*")
	params.Set("order", "volume.desc")
	if filter.Topic != "" {
		params.Set("topic", Eq(filter.Topic))
	}
	if filter.LLM != "" {
		params.Set("llm", Eq(filter.LLM))
	}
	setLimit(params, filter.Limit)

	var rows []models.URLPromptRecord
	if err := c.Query(ctx, ResourceURLPrompts, params, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Ping checks that the backend answers with the configured credentials
func (c *Client) Ping(ctx context.Context) error {
	params := url.Values{}
	params.Set("select", "url")
	params.Set("limit", "1")
	return c.Query(ctx, ResourceCitedPages, params, nil)
}

func modelParam(m models.ModelID) interface{} {
	if m.IsAll() {
		return nil
	}
	return string(m)
}

func setLimit(params url.Values, limit int) {
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
}
