package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"breathbot/catalog"
	"breathbot/config"
	"breathbot/notify"
	"breathbot/progress"
	"breathbot/schedule"
	"breathbot/video"
	"breathbot/workflow"
	"breathbot/youtube"
)

// app holds what every command needs after the config is loaded.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
}

func loadApp(w io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return &app{cfg: cfg, logger: newLogger(level, w)}, nil
}

func newLogger(level string, w io.Writer) *slog.Logger {
	var l slog.Level
	switch strings.ToLower(level) {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func (a *app) tokenStore() (*youtube.TokenStore, error) {
	yt := a.cfg.YouTube
	return youtube.NewTokenStore(yt.ClientSecretsFile, yt.TokenFile, yt.AuthPort, a.logger)
}

func (a *app) publisher(ctx context.Context) (*youtube.Client, error) {
	tokens, err := a.tokenStore()
	if err != nil {
		return nil, err
	}
	httpClient, err := tokens.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("authorize youtube: %w", err)
	}
	return youtube.NewClient(ctx, httpClient, a.cfg.YouTube.Language, a.logger)
}

func (a *app) preflight() *video.Preflight {
	pf := a.cfg.Preflight
	if pf.MaxDurationSeconds <= 0 && !pf.RequireVertical {
		return nil
	}
	return video.NewPreflight(video.NewProber(), pf.MaxDurationSeconds, pf.RequireVertical)
}

// runner wires the catalog and the progress store, plus the configured
// notifier when announce is set and an authorized YouTube client when live
// is set. cleanup is never nil.
func (a *app) runner(ctx context.Context, live, announce bool) (*workflow.Runner, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil {
				a.logger.Warn("⚠️ Close failed", "error", err)
			}
		}
	}

	cat, err := catalog.Load(a.cfg.Catalog.ChallengesFile, a.cfg.Catalog.OverridesFile)
	if err != nil {
		return nil, cleanup, fmt.Errorf("load catalog: %w", err)
	}
	a.logger.Info("📚 Catalog loaded", "groups", cat.Groups(), "challenges", cat.Len())

	store, closeStore, err := progress.Open(ctx, a.cfg.State, a.logger)
	if err != nil {
		return nil, cleanup, fmt.Errorf("open progress store: %w", err)
	}
	closers = append(closers, closeStore)

	var notifier notify.Notifier = notify.Nop{}
	if announce {
		notifier, err = notify.Open(a.cfg.Notify, a.logger)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("open notifier: %w", err)
		}
		closers = append(closers, notifier.Close)
	}

	deps := workflow.Deps{
		Catalog:   cat,
		Store:     store,
		Scheduler: schedule.New(nil),
		Notifier:  notifier,
		Preflight: a.preflight(),
		Status:    workflow.NewStatus(config.MaxStatusLogs),
		Logger:    a.logger,
	}
	if live {
		client, err := a.publisher(ctx)
		if err != nil {
			cleanup()
			return nil, func() {}, err
		}
		deps.Publisher = client
	}

	return workflow.NewRunner(deps), cleanup, nil
}
