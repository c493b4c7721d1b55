package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/models"
	"github.com/AI2HU/geodash/internal/services"
)

// widgetFlags holds the filters shared by every dashboard command
type widgetFlags struct {
	days     string
	dateFrom string
	model    string
	brand    string
	brands   string
	concepts string
	models   string
	domain   string
	limit    int
	asJSON   bool
}

func (f *widgetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.days, "days", "d", "30", "Days back from today, or 'all'")
	cmd.Flags().StringVar(&f.dateFrom, "date-from", "", "Start date YYYY-MM-DD (wins over --days)")
	cmd.Flags().StringVarP(&f.model, "model", "m", "all", "AI engine to filter on, e.g. search-gpt")
	cmd.Flags().StringVarP(&f.brand, "brand", "b", "", "Brand to focus on (default is the target brand)")
	cmd.Flags().StringVar(&f.brands, "brands", "", "Comma separated brands to compare")
	cmd.Flags().IntVarP(&f.limit, "limit", "l", 0, "Limit number of results (0 uses the widget default)")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print the widget data as JSON")
}

func (f *widgetFlags) query() (services.WidgetQuery, error) {
	q := services.WidgetQuery{
		Model:      models.ModelID(f.model),
		Brand:      f.brand,
		Brands:     parseList(f.brands),
		Concepts:   parseList(f.concepts),
		DomainLike: f.domain,
		Limit:      f.limit,
	}
	for _, m := range parseList(f.models) {
		q.Models = append(q.Models, models.ModelID(m))
	}

	if f.dateFrom != "" {
		q.DateFrom = f.dateFrom
		return q, nil
	}

	days, err := validateDays(f.days)
	if err != nil {
		return q, err
	}
	q.DateFrom = backend.DateFrom(days, time.Now())
	return q, nil
}

func (f *widgetFlags) period() string {
	if f.dateFrom != "" {
		return "since " + f.dateFrom
	}
	if f.days == "" || f.days == "all" {
		return "all time"
	}
	return "the last " + f.days + " days"
}

var (
	kpisFlags       widgetFlags
	sourcesFlags    widgetFlags
	trendFlags      widgetFlags
	heatmapFlags    widgetFlags
	conceptsFlags   widgetFlags
	modelsFlags     widgetFlags
	citationsFlags  widgetFlags
	categoriesFlags widgetFlags
	trendByConcept  bool
)

var kpisCmd = &cobra.Command{
	Use:   "kpis",
	Short: "Show share of voice, visibility and sentiment for the target brand",
	RunE:  runKPIs,
}

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Show how cited pages split across owned, earned, social and competitor domains",
	RunE:  runSources,
}

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show daily mentions per brand, or per concept with --by-concept",
	RunE:  runTrend,
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show the brand x concept mention matrix",
	RunE:  runHeatmap,
}

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Show concept sentiment for a brand",
	RunE:  runConcepts,
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Compare AI engines by mentions, sentiment and concept breadth",
	RunE:  runModels,
}

var citationsCmd = &cobra.Command{
	Use:   "citations",
	Short: "Show the most cited pages",
	RunE:  runCitations,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Show the most mentioned concept categories",
	RunE:  runCategories,
}

func init() {
	kpisFlags.register(kpisCmd)
	sourcesFlags.register(sourcesCmd)
	trendFlags.register(trendCmd)
	heatmapFlags.register(heatmapCmd)
	conceptsFlags.register(conceptsCmd)
	modelsFlags.register(modelsCmd)
	citationsFlags.register(citationsCmd)
	categoriesFlags.register(categoriesCmd)

	trendCmd.Flags().BoolVar(&trendByConcept, "by-concept", false, "Draw concepts instead of brands")
	trendCmd.Flags().StringVar(&trendFlags.concepts, "concepts", "", "Comma separated concepts (default is the most mentioned)")
	sourcesCmd.Flags().StringVar(&sourcesFlags.domain, "domain-like", "", "Only count cited pages whose domain contains this text")
	modelsCmd.Flags().StringVar(&modelsFlags.models, "models", "", "Comma separated AI engines to compare")
}

func runKPIs(cmd *cobra.Command, args []string) error {
	q, err := kpisFlags.query()
	if err != nil {
		return err
	}
	kpis, err := dashboard.KPIs(cmd.Context(), q)
	if err != nil {
		return err
	}
	if kpisFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), kpis)
	}

	printHeader(fmt.Sprintf("📊 %s visibility, %s", kpis.TargetBrand, kpisFlags.period()))
	fmt.Printf("%s %s%%\n", FormatLabel("Share of voice:  "), FormatValue(kpis.ShareOfVoice))
	fmt.Printf("%s %s\n", FormatLabel("Visibility score:"), FormatValue(fmt.Sprintf("%d/100", kpis.VisibilityScore)))
	fmt.Printf("%s %s\n", FormatLabel("Net sentiment:   "), FormatSigned(kpis.SentimentScore))
	fmt.Printf("%s %s of %s\n", FormatLabel("Mentions:        "), FormatCount(kpis.TargetMentions), FormatCount(kpis.TotalMentions))
	fmt.Println()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sBRAND\tMENTIONS%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s─────\t────────%s\n", DimStyle, Reset)
	for _, e := range rankCounts(kpis.BrandMentions) {
		fmt.Fprintf(w, "%s\t%s\n", FormatValue(e.key), FormatCount(e.value))
	}
	return w.Flush()
}

func runSources(cmd *cobra.Command, args []string) error {
	q, err := sourcesFlags.query()
	if err != nil {
		return err
	}
	vis, err := dashboard.Sources(cmd.Context(), q)
	if err != nil {
		return err
	}
	if sourcesFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), vis)
	}

	printHeader("🔗 Cited Source Visibility")
	fmt.Printf("%s %s (%s of %s citations)\n\n", FormatLabel("Owned visibility:"), FormatPercent(vis.Visibility),
		FormatCount(vis.OwnedCitations), FormatCount(vis.TotalCitations))

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sTYPE\tURLS\tCITATIONS%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s────\t────\t─────────%s\n", DimStyle, Reset)
	for _, kind := range models.SourceTypes {
		stats := vis.SourceTypes[kind]
		fmt.Fprintf(w, "%s\t%s\t%s\n", FormatValue(string(kind)), FormatCount(stats.Count), FormatCount(stats.Citations))
	}
	return w.Flush()
}

func runTrend(cmd *cobra.Command, args []string) error {
	q, err := trendFlags.query()
	if err != nil {
		return err
	}

	var chart *models.TrendChart
	if trendByConcept {
		chart, err = dashboard.ConceptTrend(cmd.Context(), q)
	} else {
		chart, err = dashboard.BrandTrend(cmd.Context(), q)
	}
	if err != nil {
		return err
	}
	if trendFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), chart)
	}

	printHeader("📈 Daily Mentions, " + trendFlags.period())
	if len(chart.Dates) == 0 {
		fmt.Println(FormatWarning("No mentions in this period"))
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	header := []string{"DATE"}
	for _, s := range chart.Series {
		header = append(header, strings.ToUpper(s.Name))
	}
	fmt.Fprintf(w, "%s%s%s\n", LabelStyle, strings.Join(header, "\t"), Reset)
	for i, date := range chart.Dates {
		cells := []string{FormatMeta(date)}
		for _, s := range chart.Series {
			cells = append(cells, formatCount(s.Values[i].Value))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	q, err := heatmapFlags.query()
	if err != nil {
		return err
	}
	heat, err := dashboard.Heatmap(cmd.Context(), q)
	if err != nil {
		return err
	}
	if heatmapFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), heat)
	}

	printHeader("🔥 Brand x Concept Mentions")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sCONCEPT\t%s%s\n", LabelStyle, strings.ToUpper(strings.Join(heat.Brands, "\t")), Reset)
	for _, row := range heat.Matrix {
		cells := []string{FormatValue(row.Concept)}
		for _, cell := range row.Values {
			cells = append(cells, formatCount(cell.Value))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func runConcepts(cmd *cobra.Command, args []string) error {
	q, err := conceptsFlags.query()
	if err != nil {
		return err
	}
	bars, err := dashboard.ConceptBars(cmd.Context(), q)
	if err != nil {
		return err
	}
	if conceptsFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), bars)
	}

	brand := firstNonEmpty(q.Brand, dashboard.TargetBrand())
	printHeader("💬 Concept Sentiment for " + brand)
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sCONCEPT\tPOSITIVE\tNEUTRAL\tNEGATIVE\tTOTAL%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s───────\t────────\t───────\t────────\t─────%s\n", DimStyle, Reset)
	for _, bar := range bars {
		fmt.Fprintf(w, "%s\t%s%d%s\t%d\t%s%d%s\t%s\n", FormatValue(bar.Concept),
			PositiveStyle, bar.Positive, Reset, bar.Neutral, NegativeStyle, bar.Negative, Reset, FormatCount(bar.Total))
	}
	return w.Flush()
}

func runModels(cmd *cobra.Command, args []string) error {
	q, err := modelsFlags.query()
	if err != nil {
		return err
	}
	slices, err := dashboard.Distribution(cmd.Context(), q)
	if err != nil {
		return err
	}
	radar, err := dashboard.ModelComparison(cmd.Context(), q)
	if err != nil {
		return err
	}
	if modelsFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), map[string]interface{}{"distribution": slices, "comparison": radar})
	}

	printHeader("🤖 Mentions by AI Engine")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sENGINE\tMENTIONS\tSHARE%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s──────\t────────\t─────%s\n", DimStyle, Reset)
	for _, s := range slices {
		fmt.Fprintf(w, "%s\t%s\t%s\n", FormatValue(s.Label), FormatCount(s.Value), FormatPercent(s.Percent))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	printHeader("🕸  Engine Profiles (0-100)")
	w = tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sENGINE\t%s%s\n", LabelStyle, strings.ToUpper(strings.Join(radar.Metrics, "\t")), Reset)
	for _, profile := range radar.Data {
		cells := []string{FormatValue(profile.Label)}
		for _, v := range profile.Values {
			if !v.Available {
				cells = append(cells, FormatMeta("n/a"))
				continue
			}
			cells = append(cells, fmt.Sprintf("%.1f", v.Value))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	return w.Flush()
}

func runCitations(cmd *cobra.Command, args []string) error {
	q, err := citationsFlags.query()
	if err != nil {
		return err
	}
	cards, err := dashboard.Citations(cmd.Context(), q)
	if err != nil {
		return err
	}
	if citationsFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), cards)
	}

	printHeader("📚 Most Cited Pages")
	if len(cards) == 0 {
		fmt.Println(FormatWarning("No cited pages yet"))
		return nil
	}
	for _, card := range cards {
		fmt.Printf("%s%d.%s %s %s\n", CountStyle, card.Rank, Reset, FormatValue(card.DisplayTitle), FormatMeta("("+formatCount(card.PromptsCount)+" prompts)"))
		fmt.Printf("   %s\n", FormatMeta(card.URL))
		for _, p := range card.Prompts {
			fmt.Printf("   %s \"%s\"\n", FormatLabel("›"), p.Prompt)
		}
	}
	return nil
}

func runCategories(cmd *cobra.Command, args []string) error {
	q, err := categoriesFlags.query()
	if err != nil {
		return err
	}
	cats, err := dashboard.TopCategories(cmd.Context(), q)
	if err != nil {
		return err
	}
	if categoriesFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), cats)
	}

	printHeader("🗂  Top Concept Categories")
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%sRANK\tCATEGORY\tMENTIONS\tPOSITIVE\tNEGATIVE%s\n", LabelStyle, Reset)
	fmt.Fprintf(w, "%s────\t────────\t────────\t────────\t────────%s\n", DimStyle, Reset)
	for i, c := range cats {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", FormatCount(i+1), FormatValue(c.ConceptCategory),
			FormatCount(c.Mentions), c.SentimentPositive, c.SentimentNegative)
	}
	return w.Flush()
}

type countEntry struct {
	key   string
	value int
}

// rankCounts orders a count map by value, then key
func rankCounts(m map[string]int) []countEntry {
	out := make([]countEntry, 0, len(m))
	for k, v := range m {
		out = append(out, countEntry{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].value != out[j].value {
			return out[i].value > out[j].value
		}
		return out[i].key < out[j].key
	})
	return out
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
