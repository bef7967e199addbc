// Package main is the breathbot CLI: it uploads breathing-challenge shorts
// and schedules one release per day.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:          "breathbot",
	Short:        "Upload and schedule breathing-challenge shorts",
	Long:         "breathbot uploads rendered breathing-challenge videos to YouTube, adds them to a playlist and schedules one public release per day, resuming where the last run stopped.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Path to the YAML configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log_level from the configuration")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
