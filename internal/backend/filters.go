package backend

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar day format the backend filters on
const DateLayout = "2006-01-02"

// Eq builds an equality filter value
func Eq(v string) string {
	return "eq." + v
}

// Gte builds a greater-or-equal filter value
func Gte(v string) string {
	return "gte." + v
}

// ILike builds a case-insensitive substring filter value
func ILike(v string) string {
	return "ilike.%" + v + "%"
}

// DateFrom converts a days-ago value to an ISO start date relative to now.
// "all", "" and non-numeric values mean unbounded and return "".
func DateFrom(days string, now time.Time) string {
	days = strings.TrimSpace(days)
	if days == "" || strings.EqualFold(days, "all") {
		return ""
	}
	n, err := strconv.Atoi(days)
	if err != nil {
		return ""
	}
	return now.AddDate(0, 0, -n).Format(DateLayout)
}

// nullable maps an unset parameter to JSON null
func nullable(v string) interface{} {
	if v == "" {
		return nil
	}
	return v
}
