package workflow

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"breathbot/types"
)

// Publisher is the hosting platform the runner publishes to.
type Publisher interface {
	Upload(ctx context.Context, path string, meta types.VideoMetadata) (string, error)
	AddToPlaylist(ctx context.Context, videoID, playlistID string) error
	SchedulePublish(ctx context.Context, videoID string, at time.Time) error
	FindPlaylistID(ctx context.Context, name string) (string, error)
}
