package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/AI2HU/geodash/internal/models"
)

// defaultCategoryLimit matches the backend procedure default
const defaultCategoryLimit = 10

// where accumulates SQL conditions and their arguments
type where struct {
	conds []string
	args  []interface{}
}

func (w *where) add(cond string, arg interface{}) {
	w.conds = append(w.conds, cond)
	w.args = append(w.args, arg)
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func (w *where) limit(query string, n int) string {
	if n > 0 {
		w.args = append(w.args, n)
		return query + " LIMIT ?"
	}
	return query
}

// FetchDailyMentions aggregates mirrored rows by date, model and brand
func (s *SQLite) FetchDailyMentions(ctx context.Context, filter models.MentionFilter) ([]models.MentionRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	w := &where{}
	if filter.DateFrom != "" {
		w.add("date >= ?", filter.DateFrom)
	}
	if !filter.Model.IsAll() {
		w.add("model = ?", string(filter.Model))
	}

	query := `
		SELECT date, brand, model, SUM(total_mentions), SUM(sentiment_positive), SUM(sentiment_negative), SUM(sentiment_neutral)
		FROM daily_mentions` + w.String() + `
		GROUP BY date, model, brand
		ORDER BY date, model, brand`

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily mentions: %w", err)
	}
	defer rows.Close()

	out := []models.MentionRecord{}
	for rows.Next() {
		var r models.MentionRecord
		var model string
		if err := rows.Scan(&r.Date, &r.Brand, &model, &r.TotalMentions, &r.SentimentPositive, &r.SentimentNegative, &r.SentimentNeutral); err != nil {
			return nil, fmt.Errorf("failed to scan daily mention: %w", err)
		}
		r.Model = models.ModelID(model)
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchTopCategories ranks concept categories by mentions
func (s *SQLite) FetchTopCategories(ctx context.Context, filter models.CategoryFilter) ([]models.CategorySummary, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	w := &where{}
	if filter.DateFrom != "" {
		w.add("date >= ?", filter.DateFrom)
	}
	if !filter.Model.IsAll() {
		w.add("model = ?", string(filter.Model))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultCategoryLimit
	}

	query := w.limit(`
		SELECT concept_category, SUM(mentions) AS total, SUM(sentiment_positive), SUM(sentiment_negative), SUM(sentiment_neutral)
		FROM concept_mentions`+w.String()+`
		GROUP BY concept_category
		ORDER BY total DESC, concept_category`, limit)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}
	defer rows.Close()

	out := []models.CategorySummary{}
	for rows.Next() {
		var r models.CategorySummary
		if err := rows.Scan(&r.ConceptCategory, &r.Mentions, &r.SentimentPositive, &r.SentimentNegative, &r.SentimentNeutral); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchConceptMentions returns concept rows, newest first
func (s *SQLite) FetchConceptMentions(ctx context.Context, filter models.ConceptFilter) ([]models.ConceptMentionRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	w := &where{}
	if filter.DateFrom != "" {
		w.add("date >= ?", filter.DateFrom)
	}
	if filter.Brand != "" {
		w.add("brand = ?", filter.Brand)
	}
	if !filter.Model.IsAll() {
		w.add("model = ?", string(filter.Model))
	}

	query := w.limit(`
		SELECT date, brand, model, concept, concept_category, concept_subcategory,
			mentions, sentiment_positive, sentiment_negative, sentiment_neutral
		FROM concept_mentions`+w.String()+`
		ORDER BY date DESC, mentions DESC, rowid`, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query concept mentions: %w", err)
	}
	defer rows.Close()

	out := []models.ConceptMentionRecord{}
	for rows.Next() {
		var r models.ConceptMentionRecord
		var model string
		err := rows.Scan(
			&r.Date, &r.Brand, &model, &r.Concept, &r.ConceptCategory, &r.ConceptSubcategory,
			&r.Mentions, &r.SentimentPositive, &r.SentimentNegative, &r.SentimentNeutral,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan concept mention: %w", err)
		}
		r.Model = models.ModelID(model)
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchCitedPages returns cited pages, most cited first
func (s *SQLite) FetchCitedPages(ctx context.Context, filter models.CitedPageFilter) ([]models.CitedPageRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	w := &where{}
	switch {
	case filter.DomainLike != "":
		w.add("domain LIKE ?", "%"+filter.DomainLike+"%")
	case filter.Domain != "":
		w.add("domain = ?", filter.Domain)
	}

	query := w.limit(`
		SELECT url, domain, prompts_count, title, country, category, prompts
		FROM cited_pages`+w.String()+`
		ORDER BY prompts_count DESC, rowid`, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cited pages: %w", err)
	}
	defer rows.Close()

	out := []models.CitedPageRecord{}
	for rows.Next() {
		var r models.CitedPageRecord
		var promptsJSON string
		if err := rows.Scan(&r.URL, &r.Domain, &r.PromptsCount, &r.Title, &r.Country, &r.Category, &promptsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan cited page: %w", err)
		}
		if err := json.Unmarshal([]byte(promptsJSON), &r.Prompts); err != nil {
			return nil, fmt.Errorf("failed to decode prompts for %s: %w", r.URL, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FetchURLPrompts returns prompt rows, highest volume first
func (s *SQLite) FetchURLPrompts(ctx context.Context, filter models.URLPromptFilter) ([]models.URLPromptRecord, error) {
	if s.db == nil {
		return nil, fmt.Errorf("not connected to database")
	}

	w := &where{}
	if filter.Topic != "" {
		w.add("topic = ?", filter.Topic)
	}
	if filter.LLM != "" {
		w.add("llm = ?", filter.LLM)
	}

	query := w.limit(`
		SELECT url, prompt, prompt_hash, topic, llm, volume, mentioned_brands_count, used_sources_count, country
		FROM url_prompts`+w.String()+`
		ORDER BY volume DESC, rowid`, filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query url prompts: %w", err)
	}
	defer rows.Close()

	out := []models.URLPromptRecord{}
	for rows.Next() {
		var r models.URLPromptRecord
		err := rows.Scan(
			&r.URL, &r.Prompt, &r.PromptHash, &r.Topic, &r.LLM, &r.Volume,
			&r.MentionedBrandsCount, &r.UsedSourcesCount, &r.Country,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan url prompt: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
