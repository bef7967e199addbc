package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"breathbot/config"
	"breathbot/tui"
)

var (
	formUsePrefix bool
	formFixedTime bool
	formDryRun    bool
	formLogFile   string
)

var formCmd = &cobra.Command{
	Use:   "form",
	Short: "Schedule an ad-hoc batch from an interactive form",
	Long:  "Opens a terminal form: authenticate, pick a channel and playlist, then point at a folder of videos and a metadata JSON (name → title, description, tags). Each video found is scheduled one day after the previous one.",
	RunE:  runForm,
}

func init() {
	formCmd.Flags().BoolVar(&formUsePrefix, "use-prefix", false, "Read <folder>/<videos.prefix><name><suffix> instead of <folder>/<name><suffix>")
	formCmd.Flags().BoolVar(&formFixedTime, "fixed-time", false, "Ask for a fixed HH:MM publish time instead of the profile's random window")
	formCmd.Flags().BoolVar(&formDryRun, "dry-run", false, "Fill the form and report without uploading")
	formCmd.Flags().StringVar(&formLogFile, "log-file", config.DefaultFormLogFile, "File receiving logs while the form is open")
	rootCmd.AddCommand(formCmd)
}

func runForm(_ *cobra.Command, _ []string) error {
	logFile, err := os.OpenFile(formLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()

	a, err := loadApp(logFile)
	if err != nil {
		return err
	}

	ch, err := a.cfg.Channel(a.cfg.ActiveChannel)
	if err != nil {
		return err
	}
	profile, err := ch.ScheduleProfile()
	if err != nil {
		return fmt.Errorf("%w: channel %q: %v", config.ErrInvalidConfig, a.cfg.ActiveChannel, err)
	}

	tokens, err := a.tokenStore()
	if err != nil {
		return err
	}
	backend := tui.NewYouTubeBackend(tokens, a.cfg.YouTube.Language, a.preflight(), a.logger)

	m := tui.NewModel(backend, tui.Options{
		UsePrefix:  formUsePrefix,
		FixedTime:  formFixedTime,
		Prefix:     a.cfg.Videos.Prefix,
		Suffix:     a.cfg.Videos.Suffix,
		Profile:    profile,
		CategoryID: a.cfg.YouTube.CategoryID,
		DryRun:     formDryRun,
	}, time.Now())

	program := tea.NewProgram(m, tea.WithAltScreen())
	tokens.Prompt = func(url string) {
		program.Send(tui.AuthURLMsg{URL: url})
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run form: %w", err)
	}
	return nil
}
