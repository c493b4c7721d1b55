package analytics

import (
	"strings"

	"github.com/AI2HU/geodash/internal/models"
)

// SourceRules drives the classification of cited domains
type SourceRules struct {
	OwnedDomain       string
	SocialDomains     []string
	CompetitorDomains []string
}

// Default domain lists used when the configuration leaves them empty
var (
	DefaultSocialDomains     = []string{"reddit.com", "twitter.com", "x.com", "facebook.com", "youtube.com"}
	DefaultCompetitorDomains = []string{"lg.com", "sony.com", "tcl.com", "hisense.com"}
)

// DefaultSourceRules returns the rules for ownedDomain with the default social and competitor lists
func DefaultSourceRules(ownedDomain string) SourceRules {
	return SourceRules{
		OwnedDomain:       ownedDomain,
		SocialDomains:     DefaultSocialDomains,
		CompetitorDomains: DefaultCompetitorDomains,
	}
}

// ClassifySource assigns a domain to exactly one source type.
// Precedence: owned, social, competitor, earned, other.
func ClassifySource(domain string, rules SourceRules) models.SourceType {
	domain = strings.ToLower(domain)

	switch {
	case domain == "":
		return models.SourceOther
	case rules.OwnedDomain != "" && strings.Contains(domain, strings.ToLower(rules.OwnedDomain)):
		return models.SourceOwned
	case containsAny(domain, rules.SocialDomains):
		return models.SourceSocial
	case containsAny(domain, rules.CompetitorDomains):
		return models.SourceCompetitor
	default:
		return models.SourceEarned
	}
}

// CalculateSourceVisibility classifies every cited page and sums URLs and citations per type
func CalculateSourceVisibility(rows []models.CitedPageRecord, rules SourceRules) models.SourceVisibility {
	out := models.SourceVisibility{
		TotalURLs:   len(rows),
		SourceTypes: make(map[models.SourceType]models.SourceTypeStats, len(models.SourceTypes)),
	}
	for _, t := range models.SourceTypes {
		out.SourceTypes[t] = models.SourceTypeStats{}
	}

	for _, row := range rows {
		citations := row.PromptsCount
		out.TotalCitations += citations

		kind := ClassifySource(row.Domain, rules)
		stats := out.SourceTypes[kind]
		stats.Count++
		stats.Citations += citations
		out.SourceTypes[kind] = stats

		if kind == models.SourceOwned {
			out.OwnedCitations += citations
			out.OwnedURLs++
		}
	}

	out.Visibility = round1(percent(out.OwnedCitations, out.TotalCitations))
	return out
}

func containsAny(domain string, needles []string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(domain, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
