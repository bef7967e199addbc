package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"breathbot/api"
	"breathbot/config"
	"breathbot/workflow"
)

var (
	servePort string
	serveCron string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the run status API and trigger runs on a schedule",
	Long:  "Starts an HTTP server exposing run status and progress, accepts POST /api/run to start a run, and optionally triggers runs of the active profile on a cron schedule.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default: server.port)")
	serveCmd.Flags().StringVar(&serveCron, "cron", "", "Cron schedule for automatic runs, e.g. \"0 6 * * *\" (default: server.cron)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := loadApp(os.Stderr)
	if err != nil {
		return err
	}
	port := a.cfg.Server.Port
	if servePort != "" {
		port = servePort
	}
	spec := a.cfg.Server.Cron
	if serveCron != "" {
		spec = serveCron
	}

	ctx, stop := signalContext()
	defer stop()

	runner, cleanup, err := a.runner(ctx, !a.cfg.Run.DryRun, true)
	defer cleanup()
	if err != nil {
		return err
	}

	options := func(profile string) (workflow.Options, error) {
		return workflow.OptionsFromConfig(a.cfg, profile)
	}
	srv := api.NewServer(runner, options, port, a.logger)
	srv.Start()

	if spec != "" {
		if err := srv.StartCron(spec); err != nil {
			return err
		}
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
