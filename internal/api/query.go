package api

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/services"
)

// maxLimit caps every limit query parameter
const maxLimit = 1000

// parseWidgetQuery reads the shared widget filters from the query string.
// date_from wins over days; days is a count of days back from now or "all".
func parseWidgetQuery(c *gin.Context, now time.Time) (services.WidgetQuery, error) {
	q := services.WidgetQuery{
		Model:      models.ModelID(c.Query("model")),
		Brand:      c.Query("brand"),
		Brands:     splitList(c.Query("brands")),
		Concepts:   splitList(c.Query("concepts")),
		Topic:      c.Query("topic"),
		LLM:        c.Query("llm"),
		Domain:     c.Query("domain"),
		DomainLike: c.Query("domain_like"),
	}

	for _, m := range splitList(c.Query("models")) {
		q.Models = append(q.Models, models.ModelID(m))
	}

	q.DateFrom = resolveDateFrom(c.Query("date_from"), c.Query("days"), now)

	var err error
	if q.Limit, err = parseLimit(c.Query("limit"), "limit"); err != nil {
		return q, err
	}
	if q.RowLimit, err = parseLimit(c.Query("row_limit"), "row_limit"); err != nil {
		return q, err
	}

	return q, nil
}

// resolveDateFrom passes an explicit date_from through as given, otherwise
// derives it from days
func resolveDateFrom(dateFrom, days string, now time.Time) string {
	if dateFrom != "" {
		return dateFrom
	}
	return backend.DateFrom(days, now)
}

func parseLimit(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer", name)
	}
	if n > maxLimit {
		n = maxLimit
	}
	return n, nil
}

// splitList parses a comma separated list, dropping blanks
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// describePeriod renders the date range for narratives
func describePeriod(days, dateFrom string) string {
	if dateFrom != "" {
		return "since " + dateFrom
	}
	if n, err := strconv.Atoi(days); err == nil {
		return fmt.Sprintf("the last %d days", n)
	}
	return "all time"
}
