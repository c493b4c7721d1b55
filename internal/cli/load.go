package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/geodash/internal/services"
)

var (
	loadBatchSize int
	loadCountry   string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Upload exported JSON files into the backend tables",
	Long: `Upload exported JSON files into the backend tables in batches.
Duplicate rows are collapsed before sending and merged by the backend on
their natural key, so loads can be repeated safely.`,
}

var loadConceptMentionsCmd = &cobra.Command{
	Use:   "concept-mentions [file]",
	Short: "Load a JSON array of concept mention rows",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadConceptMentions,
}

var loadURLPromptsCmd = &cobra.Command{
	Use:   "url-prompts [directory]",
	Short: "Load every URL prompts file in a directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadURLPrompts,
}

var loadCitedPagesCmd = &cobra.Command{
	Use:   "cited-pages [file]",
	Short: "Load a cited pages report",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoadCitedPages,
}

func init() {
	loadCmd.AddCommand(loadConceptMentionsCmd)
	loadCmd.AddCommand(loadURLPromptsCmd)
	loadCmd.AddCommand(loadCitedPagesCmd)

	loadCmd.PersistentFlags().IntVar(&loadBatchSize, "batch-size", services.DefaultBatchSize, "Records per upsert request")
	loadURLPromptsCmd.Flags().StringVar(&loadCountry, "country", "us", "Country the prompts were collected for")
}

func runLoadConceptMentions(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	result, err := services.NewLoaderService(backendClient, loadBatchSize).LoadConceptMentions(cmd.Context(), f)
	printLoadResult("concept mentions", result)
	return err
}

func runLoadURLPrompts(cmd *cobra.Command, args []string) error {
	docs, err := services.ReadURLPromptDocs(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s📂 Read %s files%s\n", InfoStyle, FormatCount(len(docs)), Reset)

	result, err := services.NewLoaderService(backendClient, loadBatchSize).LoadURLPrompts(cmd.Context(), docs, loadCountry)
	printLoadResult("URL prompts", result)
	return err
}

func runLoadCitedPages(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer f.Close()

	result, err := services.NewLoaderService(backendClient, loadBatchSize).LoadCitedPages(cmd.Context(), f)
	printLoadResult("cited pages", result)
	return err
}

func printLoadResult(what string, result *services.LoadResult) {
	if result == nil {
		return
	}

	fmt.Println()
	printHeader("📦 Loaded " + what)
	fmt.Println(FormatLabelValue("Read:", formatCount(result.Read)))
	fmt.Println(FormatLabelValue("Unique:", formatCount(result.Unique)))
	fmt.Println(FormatLabelValue("Loaded:", formatCount(result.Loaded)))
	fmt.Println(FormatLabelValue("Batches:", formatCount(result.Batches)))
	if result.FailedBatches > 0 {
		fmt.Println(FormatError(fmt.Sprintf("❌ %d batches failed", result.FailedBatches)))
		return
	}
	fmt.Println(FormatSuccess("✅ Done"))
}
