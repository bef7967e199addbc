package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"breathbot/workflow"
)

var (
	runProfile        string
	runDryRun         bool
	runMaxUploads     int
	runSource         string
	runStartFrom      string
	runStartExclusive bool
	runStopAt         string
	runJSON           bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Upload and schedule the next pending videos",
	Long:  "Scans the videos directory (or walks the catalog), skips everything already published for the profile, and uploads, adds to the playlist and schedules the rest, one release per day. Progress is saved after every video.",
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runProfile, "profile", "p", "", "Channel profile (default: active_channel)")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Resolve and schedule without touching YouTube")
	runCmd.Flags().IntVar(&runMaxUploads, "max", 0, "Maximum uploads this run (default: run.max_uploads_per_run)")
	runCmd.Flags().StringVar(&runSource, "source", "", "Work source: scan or catalog")
	runCmd.Flags().StringVar(&runStartFrom, "start-from", "", "Key to start from, e.g. 12 or 12c")
	runCmd.Flags().BoolVar(&runStartExclusive, "start-exclusive", false, "Start after --start-from instead of at it")
	runCmd.Flags().StringVar(&runStopAt, "stop-at", "", "Last key to process")
	runCmd.Flags().BoolVar(&runJSON, "json", false, "Print the run summary as JSON")
	rootCmd.AddCommand(runCmd)
}

// runOptions applies command-line overrides on top of the configuration.
func runOptions(cmd *cobra.Command, a *app) (workflow.Options, error) {
	opts, err := workflow.OptionsFromConfig(a.cfg, runProfile)
	if err != nil {
		return opts, err
	}
	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		opts.DryRun = runDryRun
	}
	if runMaxUploads > 0 {
		opts.MaxUploads = runMaxUploads
	}
	if runSource != "" {
		opts.Source = runSource
	}
	if flags.Changed("start-from") {
		opts.StartFrom = runStartFrom
	}
	if flags.Changed("start-exclusive") {
		opts.StartExclusive = runStartExclusive
	}
	if flags.Changed("stop-at") {
		opts.StopAt = runStopAt
	}
	return opts, nil
}

func runRun(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	opts, err := runOptions(cmd, a)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	runner, cleanup, err := a.runner(ctx, !opts.DryRun, true)
	defer cleanup()
	if err != nil {
		return err
	}

	summary, err := runner.Run(ctx, opts)
	if err != nil {
		return err
	}

	if runJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("Profile %s: %d published, %d skipped, %d errors", summary.Profile, summary.Published, summary.Skipped(), summary.Errors)
	if summary.LastPublished != "" {
		fmt.Printf(", last published %s", summary.LastPublished)
	}
	fmt.Println()
	if summary.CapReached {
		fmt.Println("Upload cap reached; run again to continue.")
	}
	return nil
}
