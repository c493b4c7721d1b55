package analytics

import (
	"net/url"
	"strings"

	"github.com/AI2HU/geodash/internal/models"
)

// Citation list defaults
const (
	DefaultCitationLimit = 6
	DefaultPromptLimit   = 3
)

// CitationList turns the most cited pages into ranked cards with example prompts.
// The display title falls back to the last path segment, then the host.
func CitationList(rows []models.CitedPageRecord, limit, promptLimit int) []models.CitationCard {
	if limit <= 0 {
		limit = DefaultCitationLimit
	}
	if promptLimit <= 0 {
		promptLimit = DefaultPromptLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	cards := make([]models.CitationCard, 0, len(rows))
	for i, row := range rows {
		path, title := describeURL(row.URL)
		if row.Title != "" {
			title = row.Title
		}

		prompts := row.Prompts
		if len(prompts) > promptLimit {
			prompts = prompts[:promptLimit]
		}

		cards = append(cards, models.CitationCard{
			Rank:         i + 1,
			URL:          row.URL,
			Path:         path,
			DisplayTitle: title,
			PromptsCount: row.PromptsCount,
			Prompts:      append([]models.PromptExample{}, prompts...),
		})
	}

	return cards
}

// describeURL returns the path of raw and a title derived from it
func describeURL(raw string) (string, string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", raw
	}

	var last string
	for _, part := range strings.Split(u.Path, "/") {
		if part != "" {
			last = part
		}
	}
	if last == "" {
		return u.Path, u.Hostname()
	}
	return u.Path, last
}
