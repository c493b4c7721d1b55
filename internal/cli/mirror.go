package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AI2HU/geodash/internal/db"
	"github.com/AI2HU/geodash/internal/scheduler"
	"github.com/AI2HU/geodash/internal/services"
)

const mirrorJobName = "mirror-sync"

var watchSchedule string

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Manage the local SQLite mirror of the backend",
	Long: `The mirror is a local copy of every row the dashboard reads. Point the
dashboard at it with --source mirror to work offline or to spare the backend.`,
}

var mirrorSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replace the mirror contents with a fresh copy of the backend",
	RunE:  runMirrorSync,
}

var mirrorWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync the mirror on a cron schedule until interrupted",
	RunE:  runMirrorWatch,
}

var mirrorStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the mirror schema version and last sync",
	RunE:  runMirrorStatus,
}

func init() {
	mirrorCmd.AddCommand(mirrorSyncCmd)
	mirrorCmd.AddCommand(mirrorWatchCmd)
	mirrorCmd.AddCommand(mirrorStatusCmd)

	mirrorWatchCmd.Flags().StringVar(&watchSchedule, "schedule", "", "Cron expression (overrides mirror.schedule)")
}

func newMirrorService(ctx context.Context) (*services.MirrorService, error) {
	if err := openMirror(ctx); err != nil {
		return nil, err
	}
	// always copy from the backend, whatever --source says
	return services.NewMirrorService(backendClient, mirrorStore), nil
}

func runMirrorSync(cmd *cobra.Command, args []string) error {
	svc, err := newMirrorService(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("%s🔄 Syncing mirror from %s...%s\n", InfoStyle, cfg.Backend.URL, Reset)
	run, err := svc.Sync(cmd.Context())
	if err != nil {
		fmt.Printf("%s❌ Sync failed, mirror left unchanged%s\n", ErrorStyle, Reset)
		return err
	}

	printSyncRun(run)
	return nil
}

func runMirrorWatch(cmd *cobra.Command, args []string) error {
	svc, err := newMirrorService(cmd.Context())
	if err != nil {
		return err
	}

	spec, err := validateCronExpression(firstNonEmpty(watchSchedule, cfg.Mirror.Schedule))
	if err != nil {
		return err
	}

	job := func(ctx context.Context) error {
		_, err := svc.Sync(ctx)
		return err
	}

	sched := scheduler.New(scheduler.DefaultJobTimeout)
	if err := sched.AddJob(mirrorJobName, spec, job); err != nil {
		return err
	}

	printHeader("🚀 Mirror Watch")
	fmt.Println(FormatLabelValue("Schedule:", spec))

	// start from a fresh copy rather than waiting for the first tick
	if err := sched.RunNow(cmd.Context(), mirrorJobName, job); err != nil {
		fmt.Printf("%s❌ Initial sync failed: %v%s\n", ErrorStyle, err, Reset)
	}

	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	if next, ok := sched.Next(mirrorJobName); ok {
		fmt.Println(FormatLabelValue("Next sync:", next.Format(time.RFC1123)))
	}
	fmt.Printf("%s📝 Press Ctrl+C to stop%s\n", InfoStyle, Reset)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c
	fmt.Printf("\n%s⏹️  Stopping mirror watch...%s\n", InfoStyle, Reset)
	sched.Stop()
	fmt.Println(FormatSuccess("✅ Mirror watch stopped"))

	return nil
}

func runMirrorStatus(cmd *cobra.Command, args []string) error {
	if err := openMirror(cmd.Context()); err != nil {
		return err
	}

	path, _ := cfg.MirrorPath()
	printHeader("📊 Mirror Status")
	fmt.Println(FormatLabelValue("Path:", path))

	version, dirty, err := db.SchemaVersion(mirrorStore.DB())
	if err != nil {
		return err
	}
	state := fmt.Sprintf("%d", version)
	if dirty {
		state += FormatError(" (dirty)")
	}
	fmt.Println(FormatLabelValue("Schema version:", state))

	run, err := services.NewMirrorService(backendClient, mirrorStore).Status(cmd.Context())
	if err != nil {
		return err
	}
	if run == nil {
		fmt.Println(FormatWarning("Never synced. Run 'geodash mirror sync'"))
		return nil
	}

	fmt.Println()
	printSyncRun(run)
	fmt.Println(FormatLabelValue("Age:", formatDuration(time.Since(run.FinishedAt))))
	return nil
}

func printSyncRun(run *db.SyncRun) {
	fmt.Println(FormatLabelValue("Sync:", run.ID))
	fmt.Println(FormatLabelValue("Finished:", run.FinishedAt.Local().Format(time.RFC1123)))
	fmt.Println(FormatLabelValue("Duration:", formatDuration(run.FinishedAt.Sub(run.StartedAt))))
	fmt.Printf("%s %s daily, %s concept, %s cited page, %s prompt rows\n", FormatLabel("Rows:"),
		FormatCount(run.DailyMentions), FormatCount(run.ConceptMentions), FormatCount(run.CitedPages), FormatCount(run.URLPrompts))
}

func msToDuration(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
