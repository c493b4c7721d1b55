package llm

import (
	"fmt"
	"sort"
	"strings"
)

// InsightsSystemPrompt frames the analyst persona used for dashboard narratives
const InsightsSystemPrompt = `You are a marketing analyst writing for a brand team.
You explain how AI answer engines talk about a brand, using only the numbers provided.
Be concise and concrete. Never invent data.`

// InsightsInput is the dashboard state a narrative is written from
type InsightsInput struct {
	TargetBrand     string
	Period          string
	ShareOfVoice    string
	VisibilityScore int
	SentimentScore  string
	TargetMentions  int
	TotalMentions   int
	BrandMentions   map[string]int
	ModelMentions   map[string]int
	SourceShare     float64
	OwnedCitations  int
	TotalCitations  int
	SourceBreakdown map[string]int
	Question        string
}

// GenerateInsightsPromptTemplate renders the user prompt for a dashboard narrative
func GenerateInsightsPromptTemplate(in InsightsInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write a short executive summary of %s's visibility in AI answer engines", in.TargetBrand)
	if in.Period != "" {
		fmt.Fprintf(&b, " over %s", in.Period)
	}
	b.WriteString(".\n\n")

	b.WriteString("KEY METRICS:\n")
	fmt.Fprintf(&b, "- Share of voice: %s%% (%d of %d mentions)\n", in.ShareOfVoice, in.TargetMentions, in.TotalMentions)
	fmt.Fprintf(&b, "- Visibility score: %d/100\n", in.VisibilityScore)
	fmt.Fprintf(&b, "- Net sentiment: %s\n", in.SentimentScore)
	fmt.Fprintf(&b, "- Owned source visibility: %.1f%% (%d of %d citations)\n", in.SourceShare, in.OwnedCitations, in.TotalCitations)

	writeRanked(&b, "MENTIONS BY BRAND", in.BrandMentions)
	writeRanked(&b, "MENTIONS BY AI ENGINE", in.ModelMentions)
	writeRanked(&b, "CITATIONS BY SOURCE TYPE", in.SourceBreakdown)

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("1. Three to five bullet points, most important first\n")
	b.WriteString("2. Compare the brand against its strongest competitor\n")
	b.WriteString("3. End with one recommended action\n")
	if in.Question != "" {
		fmt.Fprintf(&b, "4. Also answer: %s\n", in.Question)
	}

	return b.String()
}

func writeRanked(b *strings.Builder, title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	fmt.Fprintf(b, "\n%s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(b, "- %s: %d\n", k, counts[k])
	}
}
