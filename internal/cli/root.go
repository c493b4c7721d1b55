package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AI2HU/geodash/internal/analytics"
	"github.com/AI2HU/geodash/internal/backend"
	"github.com/AI2HU/geodash/internal/config"
	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/db/sqlite"
	"github.com/AI2HU/geodash/internal/llm"
	"github.com/AI2HU/geodash/internal/llm/google"
	"github.com/AI2HU/geodash/internal/llm/openai"
	"github.com/AI2HU/geodash/internal/logger"
	"github.com/AI2HU/geodash/internal/services"
)

var (
	cfgFile    string
	sourceFlag string
	logLevel   string

	cfg           *config.Config
	backendClient *backend.Client
	mirrorStore   *sqlite.SQLite
	source        db.Source
	dashboard     *services.DashboardService
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "geodash",
	Short: "AI search visibility dashboard",
	Long: `Geodash reads brand mention, concept and citation data collected from
AI answer engines and turns it into dashboard metrics and charts.

Data is read from the hosted backend or from a local SQLite mirror of it.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip init for the init command itself
		if cmd.Name() == "init" {
			return nil
		}

		if cfgFile == "" {
			cfgFile = config.GetConfigPath()
		}
		if !config.Exists(cfgFile) {
			return fmt.Errorf("configuration file not found at %s. Run 'geodash init' to create one", cfgFile)
		}

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		if sourceFlag != "" {
			cfg.Source = sourceFlag
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger.Init(logger.ParseLogLevel(cfg.LogLevel), os.Stderr)

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		backendClient = backend.New(cfg.Backend)
		source = backendClient

		if cfg.Source == config.SourceMirror {
			if err := openMirror(cmd.Context()); err != nil {
				return err
			}
			source = mirrorStore
		}

		dashboard = newDashboard(cfg, source)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if mirrorStore != nil {
			return mirrorStore.Disconnect(context.Background())
		}
		return nil
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.geodash/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "data source: backend or mirror (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: DEBUG, INFO, WARNING or ERROR (overrides config)")

	// Disable completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(kpisCmd)
	rootCmd.AddCommand(sourcesCmd)
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(conceptsCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(citationsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(insightsCmd)
	rootCmd.AddCommand(mirrorCmd)
	rootCmd.AddCommand(loadCmd)
}

// openMirror connects the local mirror once per process
func openMirror(ctx context.Context) error {
	if mirrorStore != nil {
		return nil
	}

	path, err := cfg.MirrorPath()
	if err != nil {
		return err
	}

	store := sqlite.New(path)
	if err := store.Connect(ctx); err != nil {
		return fmt.Errorf("failed to open mirror: %w", err)
	}
	mirrorStore = store
	return nil
}

func newDashboard(c *config.Config, src db.Source) *services.DashboardService {
	rules := analytics.DefaultSourceRules(c.Target.Domain)
	if len(c.Sources.SocialDomains) > 0 {
		rules.SocialDomains = c.Sources.SocialDomains
	}
	if len(c.Sources.CompetitorDomains) > 0 {
		rules.CompetitorDomains = c.Sources.CompetitorDomains
	}

	return services.NewDashboardService(src, services.DashboardOptions{
		TargetBrand: c.Target.Brand,
		Brands:      c.Brands,
		Rules:       rules,
		Palette:     c.BuildPalette(),
	})
}

// newInsights returns nil when no LLM provider is configured
func newInsights(c *config.Config, d *services.DashboardService) *services.InsightsService {
	if c.Insights.Provider == "" {
		return nil
	}

	registry := llm.NewRegistry()
	registry.Register(openai.New(c.Insights.APIKey, c.Insights.BaseURL))
	registry.Register(google.New(c.Insights.APIKey, c.Insights.BaseURL))

	return services.NewInsightsService(d, registry, services.InsightsOptions{
		Provider:    c.Insights.Provider,
		Model:       c.Insights.Model,
		Temperature: c.Insights.Temperature,
	})
}
