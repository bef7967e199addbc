package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"breathbot/youtube"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize with Google and cache the token",
	Long:  "Refreshes the cached YouTube token, or runs the browser consent flow when there is none, then lists the channels the token can publish to.",
	RunE:  runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(_ *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	client, err := a.publisher(ctx)
	if err != nil {
		return err
	}

	channels, err := client.ListChannels(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Token cached in %s\n", a.cfg.YouTube.TokenFile)
	for _, ch := range channels {
		printChannel(ch)
	}
	return nil
}

func printChannel(ch youtube.Channel) {
	fmt.Printf("  %s  %s\n", ch.ID, ch.Title)
}
