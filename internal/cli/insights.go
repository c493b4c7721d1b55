package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	insightsFlags    widgetFlags
	insightsQuestion string
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Ask the configured LLM to summarize the dashboard",
	Long: `Compute the KPIs and source visibility for the selected period and ask the
configured LLM provider for a short written analysis. Pass --question to
steer the analysis.`,
	RunE: runInsights,
}

func init() {
	insightsFlags.register(insightsCmd)
	insightsCmd.Flags().StringVarP(&insightsQuestion, "question", "q", "", "Question to answer in the analysis")
}

func runInsights(cmd *cobra.Command, args []string) error {
	insights := newInsights(cfg, dashboard)
	if insights == nil {
		return fmt.Errorf("no insights provider configured. Set insights.provider in %s", cfgFile)
	}

	q, err := insightsFlags.query()
	if err != nil {
		return err
	}

	fmt.Printf("%s🤖 Asking %s for insights on %s...%s\n\n", InfoStyle, cfg.Insights.Provider, insightsFlags.period(), Reset)

	insight, err := insights.Generate(cmd.Context(), q, insightsFlags.period(), insightsQuestion)
	if err != nil {
		return err
	}
	if insightsFlags.asJSON {
		return printJSON(cmd.OutOrStdout(), insight)
	}

	printHeader(fmt.Sprintf("💡 Insights for %s", insight.KPIs.TargetBrand))
	if insightsQuestion != "" {
		fmt.Println(FormatTitle(insightsQuestion))
		fmt.Println()
	}
	fmt.Println(insight.Text)
	fmt.Println()
	if k := insight.KPIs; k != nil {
		fmt.Printf("%s %s%%  %s %d  %s %s\n",
			FormatLabel("Share of voice:"), FormatValue(k.ShareOfVoice),
			FormatLabel("Visibility:"), k.VisibilityScore,
			FormatLabel("Sentiment:"), FormatSigned(k.SentimentScore))
	}
	fmt.Println(FormatMeta(fmt.Sprintf("%s %s · %d tokens · %s", insight.Provider, insight.Model,
		insight.TokensUsed, formatDuration(msToDuration(insight.LatencyMs)))))
	return nil
}
