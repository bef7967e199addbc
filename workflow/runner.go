// Package workflow drives a publishing run: it collects work items, skips
// what is already done, schedules and publishes the rest one at a time, and
// persists progress after every success.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"breathbot/catalog"
	"breathbot/config"
	"breathbot/notify"
	"breathbot/progress"
	"breathbot/scanner"
	"breathbot/schedule"
	"breathbot/types"
	"breathbot/video"
)

// ErrBusy is returned when a run is requested while another is in progress.
var ErrBusy = errors.New("a run is already in progress")

// Options are the per-run settings.
type Options struct {
	Profile        string
	Channel        config.ChannelProfile
	Source         string
	VideosDir      string
	Prefix         string
	Suffix         string
	CategoryID     string
	DryRun         bool
	MaxUploads     int
	StartFrom      string
	StartExclusive bool
	StopAt         string
}

// OptionsFromConfig builds run options for the named profile.
func OptionsFromConfig(cfg *config.Config, profile string) (Options, error) {
	if profile == "" {
		profile = cfg.ActiveChannel
	}
	ch, err := cfg.Channel(profile)
	if err != nil {
		return Options{}, err
	}

	return Options{
		Profile:        profile,
		Channel:        ch,
		Source:         cfg.Run.Source,
		VideosDir:      cfg.Videos.Dir,
		Prefix:         cfg.Videos.Prefix,
		Suffix:         cfg.Videos.Suffix,
		CategoryID:     cfg.YouTube.CategoryID,
		DryRun:         cfg.Run.DryRun,
		MaxUploads:     cfg.Run.MaxUploadsPerRun,
		StartFrom:      cfg.Run.StartFromID,
		StartExclusive: cfg.Run.StartExclusive,
		StopAt:         cfg.Run.StopAtID,
	}, nil
}

// Deps are the collaborators of a Runner. Publisher may be nil for dry runs
// and planning; Notifier, Preflight and Status are optional.
type Deps struct {
	Catalog   *catalog.Catalog
	Publisher Publisher
	Store     progress.Store
	Scheduler *schedule.Scheduler
	Notifier  notify.Notifier
	Preflight *video.Preflight
	Status    *Status
	Logger    *slog.Logger
	Now       func() time.Time
}

// Runner executes publishing runs. Only one run executes at a time.
type Runner struct {
	catalog   *catalog.Catalog
	publisher Publisher
	store     progress.Store
	scheduler *schedule.Scheduler
	notifier  notify.Notifier
	preflight *video.Preflight
	status    *Status
	logger    *slog.Logger
	now       func() time.Time

	running atomic.Bool
}

// NewRunner fills defaults for optional dependencies.
func NewRunner(d Deps) *Runner {
	r := &Runner{
		catalog:   d.Catalog,
		publisher: d.Publisher,
		store:     d.Store,
		scheduler: d.Scheduler,
		notifier:  d.Notifier,
		preflight: d.Preflight,
		status:    d.Status,
		logger:    d.Logger,
		now:       d.Now,
	}
	if r.scheduler == nil {
		r.scheduler = schedule.New(nil)
	}
	if r.notifier == nil {
		r.notifier = notify.Nop{}
	}
	if r.status == nil {
		r.status = NewStatus(config.MaxStatusLogs)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// Status exposes the observable run state.
func (r *Runner) Status() *Status { return r.status }

// Store exposes the progress store.
func (r *Runner) Store() progress.Store { return r.store }

// Busy reports whether a run is in progress.
func (r *Runner) Busy() bool { return r.running.Load() }

// Run publishes the pending items of one profile. Item-level failures are
// counted in the summary; only configuration and progress-store failures
// return an error.
func (r *Runner) Run(ctx context.Context, opts Options) (Summary, error) {
	if !r.running.CompareAndSwap(false, true) {
		return Summary{}, ErrBusy
	}
	defer r.running.Store(false)

	return r.execute(ctx, opts)
}

// Start claims the runner and executes the run in the background. It returns
// ErrBusy without starting anything when a run is already in progress. done,
// when not nil, receives the result after the runner has been released.
func (r *Runner) Start(ctx context.Context, opts Options, done func(Summary, error)) error {
	if !r.running.CompareAndSwap(false, true) {
		return ErrBusy
	}

	go func() {
		summary, err := r.execute(ctx, opts)
		r.running.Store(false)
		if done != nil {
			done(summary, err)
		}
	}()
	return nil
}

func (r *Runner) execute(ctx context.Context, opts Options) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		Profile:   opts.Profile,
		DryRun:    opts.DryRun,
		StartedAt: r.now().UTC(),
	}
	r.status.Begin(summary.RunID)

	summary, err := r.run(ctx, opts, summary)
	summary.FinishedAt = r.now().UTC()
	if err != nil {
		r.status.SetError(err)
		return summary, err
	}

	summary.Log(r.logger)
	r.status.Finish(summary)
	return summary, nil
}

func (r *Runner) run(ctx context.Context, opts Options, summary Summary) (Summary, error) {
	if r.catalog == nil || r.store == nil {
		return summary, fmt.Errorf("%w: runner needs a catalog and a progress store", config.ErrInvalidConfig)
	}
	if !opts.DryRun && r.publisher == nil {
		return summary, fmt.Errorf("%w: no publisher configured for a live run", config.ErrInvalidConfig)
	}
	if opts.MaxUploads <= 0 {
		opts.MaxUploads = config.DefaultMaxUploadsPerRun
	}

	profile, err := opts.Channel.ScheduleProfile()
	if err != nil {
		return summary, fmt.Errorf("%w: channel %q: %v", config.ErrInvalidConfig, opts.Profile, err)
	}

	items, err := r.workItems(opts)
	if err != nil {
		return summary, fmt.Errorf("collect work items: %w", err)
	}
	summary.TotalItems = len(items)

	state, err := r.store.Load(ctx)
	if err != nil {
		return summary, fmt.Errorf("load progress from %s: %w", r.store.Describe(), err)
	}
	cs := state.Channel(opts.Profile)
	summary.PublishedBefore = cs.Count()

	window, bounds := progress.Window(items, progress.Resume{
		StartFrom:      opts.StartFrom,
		StartExclusive: opts.StartExclusive,
		StopAt:         opts.StopAt,
		LastPublished:  cs.LastPublished,
	})
	summary.InWindow = len(window)
	if bounds.StartMissing {
		r.logger.Warn("⚠️ Start key not among work items, starting from the first item",
			"start_from", opts.StartFrom, "last_published", deref(cs.LastPublished))
	}
	if bounds.StopMissing {
		r.logger.Warn("⚠️ Stop key not among work items, running to the end", "stop_at", opts.StopAt)
	}

	r.logger.Info("📦 Work items collected",
		"profile", opts.Profile, "source", opts.Source, "total", len(items), "to_process", len(window))
	r.status.AddLog(fmt.Sprintf("%d items found, %d to process", len(items), len(window)))

	playlistID := ""
	if !opts.DryRun {
		playlistID = r.resolvePlaylist(ctx, opts.Channel)
	}

	r.status.SetState(StatePublishing)

	// Cancellation is honoured between items only; an item that has started
	// runs to completion and its progress is persisted.
	workCtx := context.WithoutCancel(ctx)

	for _, item := range window {
		if ctx.Err() != nil {
			summary.Interrupted = true
			r.logger.Warn("🛑 Run interrupted, stopping before next item")
			break
		}
		if summary.Published >= opts.MaxUploads {
			summary.CapReached = true
			r.logger.Info("🚦 Reached max uploads per run, stopping this session", "max", opts.MaxUploads)
			break
		}

		key := item.Key()
		r.status.SetCurrent(key)

		result := r.processItem(workCtx, opts, profile, playlistID, cs, item)
		summary.add(result)

		if result.Outcome != OutcomePublished && result.Outcome != OutcomeDryRun {
			continue
		}

		cs.RecordSuccess(key, result.VideoID)
		cs.Touch(r.now())
		if err := r.store.Save(workCtx, state); err != nil {
			return summary, fmt.Errorf("persist progress after %s: %w", key, err)
		}

		r.announce(workCtx, summary.RunID, opts, result)
		r.status.AddLog(fmt.Sprintf("%s scheduled for %s", key, result.PublishAt.Format(time.RFC3339)))
	}

	cs.Touch(r.now())
	if err := r.store.Save(workCtx, state); err != nil {
		return summary, fmt.Errorf("persist progress: %w", err)
	}

	summary.LastPublished = deref(cs.LastPublished)
	return summary, nil
}

// processItem handles one item and never returns an error: every failure is an outcome.
func (r *Runner) processItem(ctx context.Context, opts Options, profile schedule.Profile, playlistID string, cs *progress.ChannelState, item types.WorkItem) ItemResult {
	key := item.Key()
	logger := r.logger.With("key", key)

	if cs.IsDone(key) {
		logger.Info("⏭️ Already uploaded, skipping")
		return ItemResult{Key: key, Outcome: OutcomeAlreadyDone}
	}

	res, err := r.catalog.Resolve(item, opts.CategoryID)
	if err != nil {
		logger.Warn("⏭️ No catalog entry, skipping", "error", err)
		return ItemResult{Key: key, Outcome: OutcomeNotFound, Error: err.Error()}
	}
	meta := res.Metadata
	if !res.HasOverride {
		logger.Debug("No SEO override, using synthesized metadata")
	}

	if _, err := os.Stat(item.Path); err != nil {
		logger.Warn("⏭️ Video file missing, skipping", "path", item.Path, "error", err)
		return ItemResult{Key: key, Outcome: OutcomeNotFound, Title: meta.Title, Error: err.Error()}
	}

	if r.preflight.Enabled() {
		if _, err := r.preflight.Check(item.Path); err != nil {
			logger.Error("❌ Preflight failed", "path", item.Path, "error", err)
			return ItemResult{Key: key, Outcome: OutcomeFailed, Title: meta.Title, Error: err.Error()}
		}
	}

	publishAt := r.scheduler.PublishTime(profile, cs.Count())
	logger.Info("🎬 Processing", "file", item.Path, "title", meta.Title, "publish_at", schedule.FormatPublishAt(publishAt))

	if opts.DryRun {
		logger.Info("💡 [DRY RUN] Skipping upload, playlist add, and scheduling")
		return ItemResult{
			Key:       key,
			Outcome:   OutcomeDryRun,
			Title:     meta.Title,
			VideoID:   config.DryRunVideoPrefix + key,
			PublishAt: publishAt.UTC(),
		}
	}

	videoID, err := r.publisher.Upload(ctx, item.Path, meta)
	if err != nil {
		logger.Error("❌ Upload failed", "error", err)
		return ItemResult{Key: key, Outcome: OutcomeFailed, Title: meta.Title, Error: err.Error()}
	}

	if playlistID != "" {
		if err := r.publisher.AddToPlaylist(ctx, videoID, playlistID); err != nil {
			logger.Warn("⚠️ Playlist add failed, continuing", "video_id", videoID, "error", err)
		}
	}

	if err := r.publisher.SchedulePublish(ctx, videoID, publishAt); err != nil {
		logger.Error("❌ Scheduling failed, video stays private", "video_id", videoID, "error", err)
		return ItemResult{Key: key, Outcome: OutcomeFailed, Title: meta.Title, VideoID: videoID, Error: err.Error()}
	}

	return ItemResult{
		Key:       key,
		Outcome:   OutcomePublished,
		Title:     meta.Title,
		VideoID:   videoID,
		PublishAt: publishAt.UTC(),
	}
}

func (r *Runner) workItems(opts Options) ([]types.WorkItem, error) {
	switch opts.Source {
	case config.SourceCatalog:
		var items []types.WorkItem
		for _, ch := range r.catalog.Flatten() {
			items = append(items, types.WorkItem{
				Path: filepath.Join(opts.VideosDir, opts.Prefix+strconv.Itoa(ch.ID)+opts.Suffix),
				ID:   ch.ID,
			})
		}
		return items, nil
	case config.SourceScan, "":
		return scanner.New(opts.Prefix, opts.Suffix, r.logger).Scan(opts.VideosDir)
	default:
		return nil, fmt.Errorf("%w: unknown source %q", config.ErrInvalidConfig, opts.Source)
	}
}

// resolvePlaylist returns the override id, the id found by name, or "" when
// the playlist cannot be determined.
func (r *Runner) resolvePlaylist(ctx context.Context, ch config.ChannelProfile) string {
	if ch.PlaylistIDOverride != "" {
		r.logger.Info("✅ Using playlist override", "playlist_id", ch.PlaylistIDOverride)
		return ch.PlaylistIDOverride
	}
	if ch.PlaylistName == "" {
		r.logger.Warn("⚠️ No playlist configured; continuing without playlist add")
		return ""
	}

	id, err := r.publisher.FindPlaylistID(ctx, ch.PlaylistName)
	if err != nil {
		r.logger.Warn("⚠️ Playlist lookup failed; continuing without playlist add", "playlist", ch.PlaylistName, "error", err)
		return ""
	}

	r.logger.Info("✅ Using playlist", "playlist", ch.PlaylistName, "playlist_id", id)
	return id
}

func (r *Runner) announce(ctx context.Context, runID string, opts Options, result ItemResult) {
	event := types.ReleaseScheduled{
		EventID:   uuid.NewString(),
		RunID:     runID,
		Profile:   opts.Profile,
		Key:       result.Key,
		VideoID:   result.VideoID,
		Title:     result.Title,
		PublishAt: result.PublishAt,
		DryRun:    opts.DryRun,
	}
	if err := r.notifier.Notify(ctx, event); err != nil {
		r.logger.Warn("⚠️ Release notification failed", "key", result.Key, "error", err)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
