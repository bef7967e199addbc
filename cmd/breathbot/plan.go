package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var planJSON bool

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Preview what the next run would publish",
	Long:  "Resolves the next run's window against stored progress and shows, per item, the title and release day it would get. Nothing is uploaded and no progress is written.",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVarP(&runProfile, "profile", "p", "", "Channel profile (default: active_channel)")
	planCmd.Flags().IntVar(&runMaxUploads, "max", 0, "Maximum uploads to plan (default: run.max_uploads_per_run)")
	planCmd.Flags().StringVar(&runSource, "source", "", "Work source: scan or catalog")
	planCmd.Flags().StringVar(&runStartFrom, "start-from", "", "Key to start from")
	planCmd.Flags().BoolVar(&runStartExclusive, "start-exclusive", false, "Start after --start-from instead of at it")
	planCmd.Flags().StringVar(&runStopAt, "stop-at", "", "Last key to plan")
	planCmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, _ []string) error {
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

	runner, cleanup, err := a.runner(ctx, false, false)
	defer cleanup()
	if err != nil {
		return err
	}

	plan, err := runner.Plan(ctx, opts)
	if err != nil {
		return err
	}

	if planJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tOUTCOME\tDAY\tTITLE\tNOTE")
	for _, p := range plan {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.Key, p.Outcome, p.Day, p.Title, p.Reason)
	}
	return w.Flush()
}
