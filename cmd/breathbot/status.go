package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"breathbot/progress"
)

var statusCmd = &cobra.Command{
	Use:   "status [profile]",
	Short: "Print the stored progress of a profile",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	profile := a.cfg.ActiveChannel
	if len(args) == 1 {
		profile = args[0]
	}

	ctx, stop := signalContext()
	defer stop()

	store, closeStore, err := progress.Open(ctx, a.cfg.State, a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	state, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load progress from %s: %w", store.Describe(), err)
	}

	cs, ok := state[profile]
	if !ok || cs == nil {
		fmt.Printf("No progress recorded for profile %s in %s\n", profile, store.Describe())
		return nil
	}

	fmt.Printf("Profile %s: %d videos published (%s)\n", profile, cs.Count(), store.Describe())
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(cs)
}
