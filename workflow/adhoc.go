package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"breathbot/catalog"
	"breathbot/config"
	"breathbot/schedule"
	"breathbot/types"
)

// BatchOptions configure an ad-hoc batch: a folder of videos named after the
// entries of a metadata file, published on consecutive days.
type BatchOptions struct {
	Folder string
	// Prefix is prepended to each entry name when building the file name.
	Prefix     string
	Suffix     string
	Entries    []catalog.BatchEntry
	PlaylistID string
	Profile    schedule.Profile
	// FixedTime publishes every item at Hour:Minute instead of a random time in the profile window.
	FixedTime  bool
	Hour       int
	Minute     int
	CategoryID string
	DryRun     bool
}

// BatchPath is the file an entry is read from.
func (o BatchOptions) BatchPath(name string) string {
	suffix := o.Suffix
	if suffix == "" {
		suffix = config.DefaultVideoSuffix
	}
	return filepath.Join(o.Folder, o.Prefix+name+suffix)
}

// RunBatch publishes every entry in order. Missing files are skipped without
// using a day; each successfully scheduled item moves the next one a day later.
// report, when not nil, is called after every entry.
func (r *Runner) RunBatch(ctx context.Context, opts BatchOptions, report func(ItemResult)) (Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Summary{}, ErrBusy
	}
	defer r.running.Store(false)

	summary := Summary{
		RunID:      uuid.NewString(),
		Profile:    "batch",
		DryRun:     opts.DryRun,
		StartedAt:  r.now().UTC(),
		TotalItems: len(opts.Entries),
		InWindow:   len(opts.Entries),
	}
	r.status.Begin(summary.RunID)

	if err := r.validateBatch(opts); err != nil {
		r.status.SetError(err)
		return summary, err
	}

	r.status.SetState(StatePublishing)
	workCtx := context.WithoutCancel(ctx)
	dayOffset := 0

	for _, entry := range opts.Entries {
		if ctx.Err() != nil {
			summary.Interrupted = true
			break
		}
		r.status.SetCurrent(entry.Name)

		result := r.processBatchEntry(workCtx, opts, entry, dayOffset)
		summary.add(result)
		if result.Outcome == OutcomePublished || result.Outcome == OutcomeDryRun {
			dayOffset++
			summary.LastPublished = entry.Name
		}
		if report != nil {
			report(result)
		}
	}

	summary.FinishedAt = r.now().UTC()
	summary.Log(r.logger)
	r.status.Finish(summary)
	return summary, nil
}

func (r *Runner) validateBatch(opts BatchOptions) error {
	if !opts.DryRun && r.publisher == nil {
		return fmt.Errorf("%w: no publisher configured for a live batch", config.ErrInvalidConfig)
	}
	if opts.Profile.Location == nil {
		return fmt.Errorf("%w: batch needs a start date and zone", config.ErrInvalidConfig)
	}
	if opts.FixedTime {
		if opts.Hour < 0 || opts.Hour > 23 || opts.Minute < 0 || opts.Minute > 59 {
			return fmt.Errorf("%w: publish time %02d:%02d out of range", config.ErrInvalidConfig, opts.Hour, opts.Minute)
		}
		return nil
	}
	if err := opts.Profile.Validate(); err != nil {
		return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
	}
	return nil
}

func (r *Runner) processBatchEntry(ctx context.Context, opts BatchOptions, entry catalog.BatchEntry, dayOffset int) ItemResult {
	path := opts.BatchPath(entry.Name)
	logger := r.logger.With("name", entry.Name)

	if _, err := os.Stat(path); err != nil {
		logger.Warn("⏭️ File not found, skipping", "path", path)
		return ItemResult{Key: entry.Name, Outcome: OutcomeNotFound, Error: err.Error()}
	}

	if r.preflight.Enabled() {
		if _, err := r.preflight.Check(path); err != nil {
			logger.Error("❌ Preflight failed", "path", path, "error", err)
			return ItemResult{Key: entry.Name, Outcome: OutcomeFailed, Title: entry.Override.Title, Error: err.Error()}
		}
	}

	meta := types.VideoMetadata{
		Title:       entry.Override.Title,
		Description: entry.Override.Description,
		Tags:        entry.Override.Tags,
		CategoryID:  opts.CategoryID,
	}
	if meta.Tags == nil {
		meta.Tags = catalog.ExtractTags(meta.Description)
	}

	var publishAt time.Time
	if opts.FixedTime {
		publishAt = schedule.At(opts.Profile, dayOffset, opts.Hour, opts.Minute)
	} else {
		publishAt = r.scheduler.PublishTime(opts.Profile, dayOffset)
	}

	if opts.DryRun {
		logger.Info("💡 [DRY RUN] Would upload", "path", path, "publish_at", schedule.FormatPublishAt(publishAt))
		return ItemResult{
			Key:       entry.Name,
			Outcome:   OutcomeDryRun,
			Title:     meta.Title,
			VideoID:   config.DryRunVideoPrefix + entry.Name,
			PublishAt: publishAt.UTC(),
		}
	}

	videoID, err := r.publisher.Upload(ctx, path, meta)
	if err != nil {
		logger.Error("❌ Upload failed", "error", err)
		return ItemResult{Key: entry.Name, Outcome: OutcomeFailed, Title: meta.Title, Error: err.Error()}
	}

	if opts.PlaylistID != "" {
		if err := r.publisher.AddToPlaylist(ctx, videoID, opts.PlaylistID); err != nil {
			logger.Warn("⚠️ Playlist add failed, continuing", "video_id", videoID, "error", err)
		}
	}

	if err := r.publisher.SchedulePublish(ctx, videoID, publishAt); err != nil {
		logger.Error("❌ Scheduling failed, video stays private", "video_id", videoID, "error", err)
		return ItemResult{Key: entry.Name, Outcome: OutcomeFailed, Title: meta.Title, VideoID: videoID, Error: err.Error()}
	}

	logger.Info("📅 Scheduled", "video_id", videoID, "publish_at", schedule.FormatPublishAt(publishAt))
	return ItemResult{
		Key:       entry.Name,
		Outcome:   OutcomePublished,
		Title:     meta.Title,
		VideoID:   videoID,
		PublishAt: publishAt.UTC(),
	}
}
