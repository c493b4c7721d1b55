package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/AI2HU/geodash/internal/api"
	"github.com/AI2HU/geodash/internal/logger"
)

var (
	servePort  string
	serveHost  string
	corsOrigin string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard JSON API server",
	Long: `Start the dashboard JSON API server. Every chart and KPI widget is served
as a read-only endpoint under /api/v1, plus POST /api/v1/insights when an
LLM provider is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&servePort, "port", "p", "", "Port to run the API server on (overrides config)")
	serveCmd.Flags().StringVarP(&serveHost, "host", "H", "", "Host to bind the API server to (overrides config)")
	serveCmd.Flags().StringVarP(&corsOrigin, "cors-origin", "c", "", "CORS origin to allow (overrides config, use '*' for all origins)")
}

func runServe(cmd *cobra.Command, args []string) error {
	host := firstNonEmpty(serveHost, cfg.Server.Host, "0.0.0.0")
	port := firstNonEmpty(servePort, cfg.Server.Port, "8990")
	origin := firstNonEmpty(corsOrigin, cfg.Server.CORSOrigin, "*")

	if !logger.IsDebugEnabled() {
		gin.SetMode(gin.ReleaseMode)
	}

	insights := newInsights(cfg, dashboard)
	server := api.NewServer(source, dashboard, insights, origin)

	printHeader("🚀 Starting Geodash API Server")
	fmt.Println(FormatLabelValue("Source:", cfg.Source))
	fmt.Println(FormatLabelValue("Target brand:", cfg.Target.Brand))
	fmt.Println(FormatLabelValue("CORS Origin:", origin))
	fmt.Println(FormatLabelValue("URL:", fmt.Sprintf("http://%s:%s/api/v1", host, port)))
	if insights == nil {
		fmt.Println(FormatMeta("Insights disabled: no LLM provider configured"))
	}
	fmt.Println()

	fmt.Println("📚 Available Endpoints:")
	fmt.Println("    GET    /api/v1/health                - Health check")
	fmt.Println("    GET    /api/v1/palette               - Chart colors and labels")
	fmt.Println("    GET    /api/v1/kpis                  - Share of voice, visibility, sentiment")
	fmt.Println("    GET    /api/v1/sources               - Cited source visibility")
	fmt.Println("    GET    /api/v1/categories            - Top concept categories")
	fmt.Println("    GET    /api/v1/charts/{trend,concept-trend,hierarchy,heatmap,treemap,radar,")
	fmt.Println("                            flow,distribution,competitors,concepts,citations}")
	fmt.Println("    POST   /api/v1/insights              - LLM written summary")
	fmt.Println()
	fmt.Println("Press Ctrl+C to stop the server")

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", host, port),
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("API server failed: %w", err)
	case <-sigChan:
	}

	fmt.Printf("\n%s🛑 Shutting down API server...%s\n", InfoStyle, Reset)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
