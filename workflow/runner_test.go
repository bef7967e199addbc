package workflow

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"go.uber.org/mock/gomock"

	"breathbot/catalog"
	"breathbot/config"
	"breathbot/progress"
	"breathbot/schedule"
	"breathbot/types"
	"breathbot/video"
	"breathbot/workflow/mocks"
)

type recordingNotifier struct {
	events []types.ReleaseScheduled
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, event types.ReleaseScheduled) error {
	n.events = append(n.events, event)
	return n.err
}

func (n *recordingNotifier) Close() error { return nil }

type RunnerTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	publisher *mocks.MockPublisher
	notifier  *recordingNotifier
	store     *progress.FileStore
	catalog   *catalog.Catalog

	dir       string
	videosDir string
	loc       *time.Location
	logger    *slog.Logger

	runner *Runner
}

func (s *RunnerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.publisher = mocks.NewMockPublisher(s.ctrl)
	s.notifier = &recordingNotifier{}

	s.dir = s.T().TempDir()
	s.videosDir = filepath.Join(s.dir, "videos")
	s.Require().NoError(os.MkdirAll(s.videosDir, 0o755))
	s.store = progress.NewFileStore(filepath.Join(s.dir, "upload_state.json"))
	s.loc = time.FixedZone("+05:30", 5*3600+30*60)
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	cat, err := catalog.New(
		[][]types.Challenge{
			{
				{ID: 1, MainTitle: "Box Breath"},
				{ID: 2, MainTitle: "Ocean Breath"},
				{ID: 3, MainTitle: "Fire Breath"},
				{ID: 5, MainTitle: "Lion Breath"},
			},
			{
				{ID: 2, MainTitle: "Ocean Breath Advanced"},
			},
		},
		[]map[int]types.Override{
			{1: {Title: "Box Breathing for Calm Focus"}},
		},
	)
	s.Require().NoError(err)
	s.catalog = cat

	s.runner = s.newRunner(nil)
}

func (s *RunnerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestRunnerTestSuite(t *testing.T) {
	suite.Run(t, new(RunnerTestSuite))
}

func (s *RunnerTestSuite) newRunner(preflight *video.Preflight) *Runner {
	return NewRunner(Deps{
		Catalog:   s.catalog,
		Publisher: s.publisher,
		Store:     s.store,
		Scheduler: schedule.New(rand.NewPCG(1, 2)),
		Notifier:  s.notifier,
		Preflight: preflight,
		Logger:    s.logger,
		Now:       func() time.Time { return time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC) },
	})
}

func (s *RunnerTestSuite) options() Options {
	return Options{
		Profile: "default",
		Channel: config.ChannelProfile{
			PlaylistName:      "Breathing Challenges",
			ScheduleStartDate: "2026-11-01",
			PublishHourStart:  18,
			PublishHourEnd:    23,
			Timezone:          "+05:30",
		},
		Source:     config.SourceScan,
		VideosDir:  s.videosDir,
		Prefix:     config.DefaultVideoPrefix,
		Suffix:     config.DefaultVideoSuffix,
		CategoryID: config.YouTubeCategoryID,
		MaxUploads: 30,
	}
}

func (s *RunnerTestSuite) writeVideos(keys ...string) {
	for _, key := range keys {
		path := s.videoPath(key)
		s.Require().NoError(os.WriteFile(path, []byte("mp4"), 0o644))
	}
}

func (s *RunnerTestSuite) videoPath(key string) string {
	return filepath.Join(s.videosDir, config.DefaultVideoPrefix+key+config.DefaultVideoSuffix)
}

func (s *RunnerTestSuite) expectPlaylist() {
	s.publisher.EXPECT().FindPlaylistID(gomock.Any(), "Breathing Challenges").Return("PL1", nil).AnyTimes()
}

// expectPublish expects the full upload sequence for key and records the publish instant.
func (s *RunnerTestSuite) expectPublish(key, videoID string, at *time.Time) {
	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath(key), gomock.Any()).Return(videoID, nil)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), videoID, "PL1").Return(nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), videoID, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, t time.Time) error {
			if at != nil {
				*at = t
			}
			return nil
		},
	)
}

func (s *RunnerTestSuite) day(t time.Time) string {
	return t.In(s.loc).Format(config.DateLayout)
}

func (s *RunnerTestSuite) channelState() *progress.ChannelState {
	state, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	return state.Channel("default")
}

func (s *RunnerTestSuite) TestRun_PublishesAndPersists() {
	ctx := context.Background()
	s.writeVideos("1", "2", "2c", "3")
	s.expectPlaylist()

	var at [4]time.Time
	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, meta types.VideoMetadata) (string, error) {
			s.Equal("Box Breathing for Calm Focus", meta.Title)
			s.Equal("27", meta.CategoryID)
			return "vid1", nil
		},
	)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vid1", "PL1").Return(nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, t time.Time) error { at[0] = t; return nil },
	)
	s.expectPublish("2", "vid2", &at[1])
	s.expectPublish("2c", "vid2c", &at[2])
	s.expectPublish("3", "vid3", &at[3])

	summary, err := s.runner.Run(ctx, s.options())

	s.Require().NoError(err)
	s.Equal(4, summary.TotalItems)
	s.Equal(4, summary.InWindow)
	s.Equal(4, summary.Published)
	s.Equal(0, summary.Errors)
	s.Equal("3", summary.LastPublished)
	s.False(summary.CapReached)

	for i, want := range []string{"2026-11-01", "2026-11-02", "2026-11-03", "2026-11-04"} {
		s.Equal(want, s.day(at[i]))
		hour := at[i].In(s.loc).Hour()
		s.GreaterOrEqual(hour, 18)
		s.LessOrEqual(hour, 23)
		s.Zero(at[i].Second())
	}

	cs := s.channelState()
	s.Equal(map[string]string{"1": "vid1", "2": "vid2", "2c": "vid2c", "3": "vid3"}, cs.Published)
	s.Require().NotNil(cs.LastPublished)
	s.Equal("3", *cs.LastPublished)

	s.Require().Len(s.notifier.events, 4)
	s.Equal("2c", s.notifier.events[2].Key)
	s.Equal("vid2c", s.notifier.events[2].VideoID)
	s.Equal(summary.RunID, s.notifier.events[2].RunID)
}

func (s *RunnerTestSuite) TestRun_SecondRunIsNoop() {
	ctx := context.Background()
	s.writeVideos("1", "2")
	s.expectPlaylist()
	s.expectPublish("1", "vid1", nil)
	s.expectPublish("2", "vid2", nil)

	_, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(2, summary.PublishedBefore)
	s.Equal(0, summary.InWindow)
	s.Equal(0, summary.Published)
	s.Equal("2", summary.LastPublished)
}

func (s *RunnerTestSuite) TestRun_ExplicitStartSkipsDoneItems() {
	ctx := context.Background()
	s.writeVideos("1", "2")
	s.expectPlaylist()
	s.expectPublish("1", "vid1", nil)
	s.expectPublish("2", "vid2", nil)

	_, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)

	opts := s.options()
	opts.StartFrom = "1"
	summary, err := s.runner.Run(ctx, opts)
	s.Require().NoError(err)
	s.Equal(2, summary.InWindow)
	s.Equal(2, summary.AlreadyDone)
	s.Equal(2, summary.Skipped())
	s.Equal(0, summary.Published)
}

func (s *RunnerTestSuite) TestRun_CapStopsAndNextRunContinues() {
	ctx := context.Background()
	s.writeVideos("1", "2", "3")
	s.expectPlaylist()
	s.expectPublish("1", "vid1", nil)
	s.expectPublish("2", "vid2", nil)

	opts := s.options()
	opts.MaxUploads = 2
	summary, err := s.runner.Run(ctx, opts)
	s.Require().NoError(err)
	s.Equal(2, summary.Published)
	s.True(summary.CapReached)

	var at time.Time
	s.expectPublish("3", "vid3", &at)

	summary, err = s.runner.Run(ctx, opts)
	s.Require().NoError(err)
	s.Equal(1, summary.Published)
	s.False(summary.CapReached)
	s.Equal("2026-11-03", s.day(at))
	s.Equal(3, s.channelState().Count())
}

func (s *RunnerTestSuite) TestRun_UploadFailureIsNotRecorded() {
	ctx := context.Background()
	s.writeVideos("1", "2")
	s.expectPlaylist()

	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).Return("", errors.New("quota exceeded"))
	var at time.Time
	s.expectPublish("2", "vid2", &at)

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(1, summary.Errors)
	s.Equal(1, summary.Published)
	s.Equal(OutcomeFailed, summary.Items[0].Outcome)
	s.Equal("quota exceeded", summary.Items[0].Error)

	// the failed item used no day
	s.Equal("2026-11-01", s.day(at))

	cs := s.channelState()
	s.False(cs.IsDone("1"))
	s.True(cs.IsDone("2"))
}

func (s *RunnerTestSuite) TestRun_ScheduleFailureIsNotRecorded() {
	ctx := context.Background()
	s.writeVideos("1")
	s.expectPlaylist()

	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).Return("vid1", nil)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vid1", "PL1").Return(nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).Return(errors.New("backend error"))

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(1, summary.Errors)
	s.Equal("vid1", summary.Items[0].VideoID)
	s.Empty(summary.LastPublished)

	cs := s.channelState()
	s.Equal(0, cs.Count())
	s.Nil(cs.LastPublished)
	s.Empty(s.notifier.events)
}

func (s *RunnerTestSuite) TestRun_PlaylistAddFailureStillSchedules() {
	ctx := context.Background()
	s.writeVideos("1")
	s.expectPlaylist()

	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).Return("vid1", nil)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vid1", "PL1").Return(errors.New("forbidden"))
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).Return(nil)

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(1, summary.Published)
	s.Equal(0, summary.Errors)
	s.True(s.channelState().IsDone("1"))
}

func (s *RunnerTestSuite) TestRun_UnknownItemsAreNotFound() {
	ctx := context.Background()
	// 4 is not in the catalog; 5 exists only as base content, so 5c has no match.
	s.writeVideos("1", "4", "5c")
	s.expectPlaylist()
	s.expectPublish("1", "vid1", nil)

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(1, summary.Published)
	s.Equal(2, summary.NotFound)
	s.Equal(OutcomeNotFound, summary.Items[1].Outcome)
	s.Equal("5c", summary.Items[2].Key)
	s.Equal(OutcomeNotFound, summary.Items[2].Outcome)
}

func (s *RunnerTestSuite) TestRun_DryRunTouchesNothingRemote() {
	ctx := context.Background()
	s.writeVideos("1", "2")

	opts := s.options()
	opts.DryRun = true
	summary, err := s.runner.Run(ctx, opts)

	s.Require().NoError(err)
	s.True(summary.DryRun)
	s.Equal(2, summary.Published)
	s.Equal(OutcomeDryRun, summary.Items[0].Outcome)

	cs := s.channelState()
	s.Equal(map[string]string{"1": "dry_1", "2": "dry_2"}, cs.Published)
	s.Require().Len(s.notifier.events, 2)
	s.True(s.notifier.events[0].DryRun)
}

func (s *RunnerTestSuite) TestRun_DryRunNeedsNoPublisher() {
	s.writeVideos("1")
	runner := NewRunner(Deps{Catalog: s.catalog, Store: s.store, Logger: s.logger})

	opts := s.options()
	opts.DryRun = true
	summary, err := runner.Run(context.Background(), opts)
	s.Require().NoError(err)
	s.Equal(1, summary.Published)

	opts.DryRun = false
	_, err = runner.Run(context.Background(), opts)
	s.ErrorIs(err, config.ErrInvalidConfig)
}

func (s *RunnerTestSuite) TestRun_MissingPlaylistSkipsPlaylistAdd() {
	ctx := context.Background()
	s.writeVideos("1")

	s.publisher.EXPECT().FindPlaylistID(gomock.Any(), "Breathing Challenges").Return("", errors.New("playlist not found"))
	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).Return("vid1", nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).Return(nil)

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(1, summary.Published)
}

func (s *RunnerTestSuite) TestRun_PlaylistOverrideSkipsLookup() {
	ctx := context.Background()
	s.writeVideos("1")

	opts := s.options()
	opts.Channel.PlaylistIDOverride = "PLX"
	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).Return("vid1", nil)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vid1", "PLX").Return(nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).Return(nil)

	_, err := s.runner.Run(ctx, opts)
	s.Require().NoError(err)
}

func (s *RunnerTestSuite) TestRun_RejectsConcurrentRun() {
	ctx := context.Background()
	s.writeVideos("1")
	s.expectPlaylist()

	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).DoAndReturn(
		func(context.Context, string, types.VideoMetadata) (string, error) {
			s.True(s.runner.Busy())
			_, err := s.runner.Run(ctx, s.options())
			s.ErrorIs(err, ErrBusy)
			return "vid1", nil
		},
	)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vid1", "PL1").Return(nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).Return(nil)

	_, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.False(s.runner.Busy())
}

func (s *RunnerTestSuite) TestStart_ClaimsBeforeReturning() {
	ctx := context.Background()
	s.writeVideos("1")
	s.expectPlaylist()

	release := make(chan struct{})
	s.publisher.EXPECT().Upload(gomock.Any(), s.videoPath("1"), gomock.Any()).DoAndReturn(
		func(context.Context, string, types.VideoMetadata) (string, error) {
			<-release
			return "vid1", nil
		},
	)
	s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vid1", "PL1").Return(nil)
	s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vid1", gomock.Any()).Return(nil)

	type result struct {
		summary Summary
		err     error
		busy    bool
	}
	done := make(chan result, 1)
	s.Require().NoError(s.runner.Start(ctx, s.options(), func(summary Summary, err error) {
		done <- result{summary: summary, err: err, busy: s.runner.Busy()}
	}))

	s.True(s.runner.Busy())
	s.ErrorIs(s.runner.Start(ctx, s.options(), nil), ErrBusy)
	_, err := s.runner.Run(ctx, s.options())
	s.ErrorIs(err, ErrBusy)

	close(release)
	got := <-done
	s.Require().NoError(got.err)
	s.False(got.busy, "runner is released before done is called")
	s.Equal(1, got.summary.Published)
}

func (s *RunnerTestSuite) TestRun_CatalogSource() {
	ctx := context.Background()
	// catalog order is 1, 2, 3, 5, then group two's 2 again
	s.writeVideos("1", "2")
	s.expectPlaylist()
	s.expectPublish("1", "vid1", nil)
	s.expectPublish("2", "vid2", nil)

	opts := s.options()
	opts.Source = config.SourceCatalog
	summary, err := s.runner.Run(ctx, opts)

	s.Require().NoError(err)
	s.Equal(5, summary.TotalItems)
	s.Equal(2, summary.Published)
	s.Equal(2, summary.NotFound)
	s.Equal(1, summary.AlreadyDone)
}

func (s *RunnerTestSuite) TestRun_InterruptedBeforeFirstItem() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.writeVideos("1", "2")
	s.expectPlaylist()

	summary, err := s.runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.True(summary.Interrupted)
	s.Equal(0, summary.Published)
}

func (s *RunnerTestSuite) TestRun_PreflightRejectsLongVideo() {
	ctx := context.Background()
	s.writeVideos("1")
	s.expectPlaylist()

	report := `{"streams":[{"codec_type":"video","width":1080,"height":1920}],"format":{"duration":"75.0"}}`
	prober := video.NewProberWith(func(string, ...ffmpeg.KwArgs) (string, error) { return report, nil })
	runner := s.newRunner(video.NewPreflight(prober, 60, false))

	summary, err := runner.Run(ctx, s.options())
	s.Require().NoError(err)
	s.Equal(1, summary.Errors)
	s.Contains(summary.Items[0].Error, "exceeds maximum duration")
}

func (s *RunnerTestSuite) TestRun_InvalidChannelFailsRun() {
	opts := s.options()
	opts.Channel.ScheduleStartDate = "next week"

	_, err := s.runner.Run(context.Background(), opts)
	s.ErrorIs(err, config.ErrInvalidConfig)
	status := s.runner.Status().GetStatus()
	s.Equal(StateError, status.State)
	s.NotEmpty(status.Error)
}

func (s *RunnerTestSuite) TestRun_StatusReportsSummary() {
	s.writeVideos("1")
	s.expectPlaylist()
	s.expectPublish("1", "vid1", nil)

	summary, err := s.runner.Run(context.Background(), s.options())
	s.Require().NoError(err)

	status := s.runner.Status().GetStatus()
	s.Equal(StateComplete, status.State)
	s.Equal(summary.RunID, status.RunID)
	s.Empty(status.Current)
	s.Require().NotNil(status.Summary)
	s.Equal(1, status.Summary.Published)
	s.NotEmpty(status.Logs)
}

func (s *RunnerTestSuite) TestPlan_HasNoSideEffects() {
	ctx := context.Background()
	s.writeVideos("1", "2", "4")

	plan, err := s.runner.Plan(ctx, s.options())
	s.Require().NoError(err)

	s.Require().Len(plan, 3)
	s.Equal(OutcomePlanned, plan[0].Outcome)
	s.Equal("Box Breathing for Calm Focus", plan[0].Title)
	s.Equal("2026-11-01", plan[0].Day)
	s.Equal(OutcomePlanned, plan[1].Outcome)
	s.Equal(1, plan[1].GlobalIndex)
	s.Equal("2026-11-02", plan[1].Day)
	s.Equal(OutcomeNotFound, plan[2].Outcome)
	s.Equal("no catalog entry", plan[2].Reason)

	_, err = os.Stat(filepath.Join(s.dir, "upload_state.json"))
	s.True(errors.Is(err, os.ErrNotExist))
}

func (s *RunnerTestSuite) TestPlan_StopsAtCap() {
	s.writeVideos("1", "2", "3")

	opts := s.options()
	opts.MaxUploads = 2
	plan, err := s.runner.Plan(context.Background(), opts)
	s.Require().NoError(err)
	s.Len(plan, 2)
}

func (s *RunnerTestSuite) TestRunBatch_FixedTimeSkipsMissingFiles() {
	ctx := context.Background()
	folder := filepath.Join(s.dir, "batch")
	s.Require().NoError(os.MkdirAll(folder, 0o755))
	for _, name := range []string{"a.mp4", "c.mp4"} {
		s.Require().NoError(os.WriteFile(filepath.Join(folder, name), []byte("mp4"), 0o644))
	}

	opts := BatchOptions{
		Folder: folder,
		Entries: []catalog.BatchEntry{
			{Name: "a", Override: types.Override{Title: "A", Description: "Breathe in #calm #focus"}},
			{Name: "b", Override: types.Override{Title: "B"}},
			{Name: "c", Override: types.Override{Title: "C", Tags: []string{}}},
		},
		PlaylistID: "PLB",
		Profile:    schedule.Profile{StartDate: time.Date(2026, 11, 1, 0, 0, 0, 0, s.loc), Location: s.loc},
		FixedTime:  true,
		Hour:       9,
		Minute:     30,
		CategoryID: "27",
	}

	var times []time.Time
	gomock.InOrder(
		s.publisher.EXPECT().Upload(gomock.Any(), filepath.Join(folder, "a.mp4"), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, meta types.VideoMetadata) (string, error) {
				s.Equal([]string{"calm", "focus"}, meta.Tags)
				return "va", nil
			},
		),
		s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "va", "PLB").Return(nil),
		s.publisher.EXPECT().SchedulePublish(gomock.Any(), "va", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, t time.Time) error { times = append(times, t); return nil },
		),
		s.publisher.EXPECT().Upload(gomock.Any(), filepath.Join(folder, "c.mp4"), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, meta types.VideoMetadata) (string, error) {
				s.NotNil(meta.Tags)
				s.Empty(meta.Tags)
				return "vc", nil
			},
		),
		s.publisher.EXPECT().AddToPlaylist(gomock.Any(), "vc", "PLB").Return(nil),
		s.publisher.EXPECT().SchedulePublish(gomock.Any(), "vc", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, t time.Time) error { times = append(times, t); return nil },
		),
	)

	var reported []string
	summary, err := s.runner.RunBatch(ctx, opts, func(r ItemResult) { reported = append(reported, r.Key) })

	s.Require().NoError(err)
	s.Equal([]string{"a", "b", "c"}, reported)
	s.Equal(2, summary.Published)
	s.Equal(1, summary.NotFound)
	s.Require().Len(times, 2)
	s.True(times[0].Equal(time.Date(2026, 11, 1, 9, 30, 0, 0, s.loc)))
	s.True(times[1].Equal(time.Date(2026, 11, 2, 9, 30, 0, 0, s.loc)))

	// batches keep no progress
	_, err = os.Stat(filepath.Join(s.dir, "upload_state.json"))
	s.True(errors.Is(err, os.ErrNotExist))
}

func (s *RunnerTestSuite) TestRunBatch_PreflightRejectsLongVideo() {
	folder := filepath.Join(s.dir, "batch")
	s.Require().NoError(os.MkdirAll(folder, 0o755))
	for _, name := range []string{"long.mp4", "short.mp4"} {
		s.Require().NoError(os.WriteFile(filepath.Join(folder, name), []byte("mp4"), 0o644))
	}

	reports := map[string]string{
		filepath.Join(folder, "long.mp4"):  `{"streams":[{"codec_type":"video","width":1080,"height":1920}],"format":{"duration":"600.0"}}`,
		filepath.Join(folder, "short.mp4"): `{"streams":[{"codec_type":"video","width":1080,"height":1920}],"format":{"duration":"45.0"}}`,
	}
	prober := video.NewProberWith(func(path string, _ ...ffmpeg.KwArgs) (string, error) { return reports[path], nil })
	runner := s.newRunner(video.NewPreflight(prober, 60, false))

	summary, err := runner.RunBatch(context.Background(), BatchOptions{
		Folder: folder,
		Entries: []catalog.BatchEntry{
			{Name: "long", Override: types.Override{Title: "Long"}},
			{Name: "short", Override: types.Override{Title: "Short"}},
		},
		Profile:   schedule.Profile{StartDate: time.Date(2026, 11, 1, 0, 0, 0, 0, s.loc), Location: s.loc},
		FixedTime: true,
		Hour:      9,
		DryRun:    true,
	}, nil)

	s.Require().NoError(err)
	s.Equal(1, summary.Errors)
	s.Equal(1, summary.Published)
	s.Require().Len(summary.Items, 2)
	s.Equal(OutcomeFailed, summary.Items[0].Outcome)
	s.Contains(summary.Items[0].Error, "exceeds maximum duration")
	s.Equal(OutcomeDryRun, summary.Items[1].Outcome)
	s.True(summary.Items[1].PublishAt.Equal(time.Date(2026, 11, 1, 9, 0, 0, 0, s.loc)), "a rejected file does not use a day")
}

func (s *RunnerTestSuite) TestRunBatch_RejectsBadClock() {
	_, err := s.runner.RunBatch(context.Background(), BatchOptions{
		Profile:   schedule.Profile{StartDate: time.Now(), Location: time.UTC},
		FixedTime: true,
		Hour:      24,
	}, nil)
	s.ErrorIs(err, config.ErrInvalidConfig)
}

func TestStatusKeepsLastLogs(t *testing.T) {
	status := NewStatus(3)
	for _, msg := range []string{"one", "two", "three", "four", "five"} {
		status.AddLog(msg)
	}

	logs := status.GetStatus().Logs
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	if logs[0].Message != "three" || logs[2].Message != "five" {
		t.Fatalf("unexpected logs: %+v", logs)
	}
	if status.GetState() != StateIdle {
		t.Fatalf("expected idle state, got %s", status.GetState())
	}
}
