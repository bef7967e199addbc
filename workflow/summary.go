package workflow

import (
	"log/slog"
	"time"
)

// Outcome is what happened to one work item.
type Outcome string

const (
	OutcomePublished   Outcome = "published"
	OutcomeDryRun      Outcome = "dry_run"
	OutcomeAlreadyDone Outcome = "already_done"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeFailed      Outcome = "failed"
)

// ItemResult records the handling of one work item.
type ItemResult struct {
	Key       string    `json:"key"`
	Outcome   Outcome   `json:"outcome"`
	Title     string    `json:"title,omitempty"`
	VideoID   string    `json:"video_id,omitempty"`
	PublishAt time.Time `json:"publish_at,omitzero"`
	Error     string    `json:"error,omitempty"`
}

// Summary is reported at the end of every run.
type Summary struct {
	RunID      string    `json:"run_id"`
	Profile    string    `json:"profile"`
	DryRun     bool      `json:"dry_run"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	TotalItems      int `json:"total_items"`
	InWindow        int `json:"in_window"`
	PublishedBefore int `json:"published_before"`
	Published       int `json:"published"`
	AlreadyDone     int `json:"already_done"`
	NotFound        int `json:"not_found"`
	Errors          int `json:"errors"`

	CapReached    bool   `json:"cap_reached"`
	Interrupted   bool   `json:"interrupted"`
	LastPublished string `json:"last_published,omitempty"`

	Items []ItemResult `json:"items"`
}

// Skipped counts items that were passed over without contacting the publisher.
func (s Summary) Skipped() int {
	return s.AlreadyDone + s.NotFound
}

func (s *Summary) add(r ItemResult) {
	s.Items = append(s.Items, r)
	switch r.Outcome {
	case OutcomePublished, OutcomeDryRun:
		s.Published++
	case OutcomeAlreadyDone:
		s.AlreadyDone++
	case OutcomeNotFound:
		s.NotFound++
	case OutcomeFailed:
		s.Errors++
	}
}

// Log writes the end-of-run report.
func (s Summary) Log(logger *slog.Logger) {
	logger.Info("📊 Upload summary",
		"run_id", s.RunID,
		"profile", s.Profile,
		"dry_run", s.DryRun,
		"total_items", s.TotalItems,
		"in_window", s.InWindow,
		"published_before", s.PublishedBefore,
		"published", s.Published,
		"already_done", s.AlreadyDone,
		"not_found", s.NotFound,
		"errors", s.Errors,
		"cap_reached", s.CapReached,
		"interrupted", s.Interrupted,
		"last_published", s.LastPublished,
		"duration", s.FinishedAt.Sub(s.StartedAt).Round(time.Millisecond),
	)
}
