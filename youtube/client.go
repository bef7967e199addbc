// Package youtube publishes videos through the YouTube Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"breathbot/config"
	"breathbot/schedule"
	"breathbot/types"
)

// ErrPlaylistNotFound is returned when no playlist of the account has the requested title.
var ErrPlaylistNotFound = errors.New("playlist not found")

var errStopPaging = errors.New("stop paging")

// Channel is a channel the authorized account can publish to.
type Channel struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Playlist is a playlist of a channel.
type Playlist struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Client implements the publisher on top of an authorized YouTube service.
type Client struct {
	service  *youtube.Service
	language string
	logger   *slog.Logger
}

// NewClient creates the API service from an authorized HTTP client.
// Extra options are appended, which lets tests point the service at a fake endpoint.
func NewClient(ctx context.Context, httpClient *http.Client, language string, logger *slog.Logger, opts ...option.ClientOption) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if language == "" {
		language = config.YouTubeDefaultLanguage
	}

	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}

	return &Client{service: service, language: language, logger: logger}, nil
}

// Upload creates a private video from the file at path and returns its id.
func (c *Client) Upload(ctx context.Context, path string, meta types.VideoMetadata) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open video file: %w", err)
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat video file: %w", err)
	}

	c.logger.Info(fmt.Sprintf("📤 Uploading: %s (%.2f MB)", path, float64(fileInfo.Size())/(1024*1024)))

	categoryID := meta.CategoryID
	if categoryID == "" {
		categoryID = config.YouTubeCategoryID
	}

	video := &youtube.Video{
		Snippet: &youtube.VideoSnippet{
			Title:           meta.Title,
			Description:     meta.Description,
			CategoryId:      categoryID,
			DefaultLanguage: c.language,
		},
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}
	if len(meta.Tags) > 0 {
		video.Snippet.Tags = meta.Tags
	}

	response, err := c.service.Videos.Insert([]string{"snippet", "status"}, video).
		Media(file).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload video: %w", err)
	}

	c.logger.Info("✅ Uploaded", "video_id", response.Id, "url", "https://youtube.com/shorts/"+response.Id)
	return response.Id, nil
}

// AddToPlaylist appends the video to the playlist.
func (c *Client) AddToPlaylist(ctx context.Context, videoID, playlistID string) error {
	item := &youtube.PlaylistItem{
		Snippet: &youtube.PlaylistItemSnippet{
			PlaylistId: playlistID,
			ResourceId: &youtube.ResourceId{
				Kind:    "youtube#video",
				VideoId: videoID,
			},
		},
	}

	if _, err := c.service.PlaylistItems.Insert([]string{"snippet"}, item).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to add %s to playlist %s: %w", videoID, playlistID, err)
	}

	c.logger.Info("📚 Added to playlist", "video_id", videoID, "playlist_id", playlistID)
	return nil
}

// SchedulePublish keeps the video private and sets the instant it goes public.
func (c *Client) SchedulePublish(ctx context.Context, videoID string, at time.Time) error {
	video := &youtube.Video{
		Id: videoID,
		Status: &youtube.VideoStatus{
			PrivacyStatus:           config.YouTubePrivacyStatus,
			PublishAt:               schedule.FormatPublishAt(at),
			SelfDeclaredMadeForKids: false,
			ForceSendFields:         []string{"SelfDeclaredMadeForKids"},
		},
	}

	if _, err := c.service.Videos.Update([]string{"status"}, video).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to schedule %s: %w", videoID, err)
	}

	c.logger.Info("🗓️ Scheduled publish", "video_id", videoID, "publish_at", video.Status.PublishAt)
	return nil
}

// FindPlaylistID pages through the account's playlists and returns the first
// whose title equals name exactly.
func (c *Client) FindPlaylistID(ctx context.Context, name string) (string, error) {
	var found string

	err := c.service.Playlists.List([]string{"snippet"}).
		Mine(true).
		MaxResults(config.PlaylistPageSize).
		Pages(ctx, func(resp *youtube.PlaylistListResponse) error {
			for _, pl := range resp.Items {
				if pl.Snippet != nil && pl.Snippet.Title == name {
					found = pl.Id
					return errStopPaging
				}
			}
			return nil
		})
	if err != nil && !errors.Is(err, errStopPaging) {
		return "", fmt.Errorf("failed to fetch playlists: %w", err)
	}

	if found == "" {
		return "", fmt.Errorf("%w: %q", ErrPlaylistNotFound, name)
	}
	return found, nil
}

// ListChannels returns the channels owned by the authorized account.
func (c *Client) ListChannels(ctx context.Context) ([]Channel, error) {
	resp, err := c.service.Channels.List([]string{"snippet"}).Mine(true).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}

	channels := make([]Channel, 0, len(resp.Items))
	for _, ch := range resp.Items {
		title := ch.Id
		if ch.Snippet != nil {
			title = ch.Snippet.Title
		}
		channels = append(channels, Channel{ID: ch.Id, Title: title})
	}
	return channels, nil
}

// ListPlaylists returns every playlist of a channel.
func (c *Client) ListPlaylists(ctx context.Context, channelID string) ([]Playlist, error) {
	var playlists []Playlist

	err := c.service.Playlists.List([]string{"snippet"}).
		ChannelId(channelID).
		MaxResults(config.PlaylistPageSize).
		Pages(ctx, func(resp *youtube.PlaylistListResponse) error {
			for _, pl := range resp.Items {
				title := pl.Id
				if pl.Snippet != nil {
					title = pl.Snippet.Title
				}
				playlists = append(playlists, Playlist{ID: pl.Id, Title: title})
			}
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	return playlists, nil
}
