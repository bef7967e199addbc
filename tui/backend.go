package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"breathbot/video"
	"breathbot/workflow"
	"breathbot/youtube"
)

var errNotAuthenticated = errors.New("not authenticated")

// Backend is everything the form drives.
type Backend interface {
	Authenticate(ctx context.Context) error
	ListChannels(ctx context.Context) ([]youtube.Channel, error)
	ListPlaylists(ctx context.Context, channelID string) ([]youtube.Playlist, error)
	RunBatch(ctx context.Context, opts workflow.BatchOptions, report func(workflow.ItemResult)) (workflow.Summary, error)
}

// YouTubeBackend authenticates with the installed-app flow and publishes
// through the YouTube Data API.
type YouTubeBackend struct {
	tokens    *youtube.TokenStore
	language  string
	preflight *video.Preflight
	logger    *slog.Logger

	client *youtube.Client
}

func NewYouTubeBackend(tokens *youtube.TokenStore, language string, preflight *video.Preflight, logger *slog.Logger) *YouTubeBackend {
	return &YouTubeBackend{
		tokens:    tokens,
		language:  language,
		preflight: preflight,
		logger:    logger,
	}
}

func (b *YouTubeBackend) Authenticate(ctx context.Context) error {
	httpClient, err := b.tokens.Client(ctx)
	if err != nil {
		return err
	}
	client, err := youtube.NewClient(ctx, httpClient, b.language, b.logger)
	if err != nil {
		return fmt.Errorf("create youtube client: %w", err)
	}
	b.client = client
	return nil
}

func (b *YouTubeBackend) ListChannels(ctx context.Context) ([]youtube.Channel, error) {
	if b.client == nil {
		return nil, errNotAuthenticated
	}
	return b.client.ListChannels(ctx)
}

func (b *YouTubeBackend) ListPlaylists(ctx context.Context, channelID string) ([]youtube.Playlist, error) {
	if b.client == nil {
		return nil, errNotAuthenticated
	}
	return b.client.ListPlaylists(ctx, channelID)
}

func (b *YouTubeBackend) RunBatch(ctx context.Context, opts workflow.BatchOptions, report func(workflow.ItemResult)) (workflow.Summary, error) {
	deps := workflow.Deps{Preflight: b.preflight, Logger: b.logger}
	if b.client != nil {
		deps.Publisher = b.client
	}
	return workflow.NewRunner(deps).RunBatch(ctx, opts, report)
}
