package workflow

import (
	"context"
	"errors"
	"fmt"
	"os"

	"breathbot/catalog"
	"breathbot/config"
	"breathbot/progress"
)

// OutcomePlanned marks an item a run would publish.
const OutcomePlanned Outcome = "planned"

// PlanItem previews the handling of one item without side effects.
type PlanItem struct {
	Key         string  `json:"key"`
	Path        string  `json:"path"`
	Outcome     Outcome `json:"outcome"`
	Title       string  `json:"title,omitempty"`
	GlobalIndex int     `json:"global_index,omitempty"`
	Day         string  `json:"day,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// Plan resolves the next run's window against the stored progress and
// reports what would happen to each item. Nothing is uploaded or saved.
func (r *Runner) Plan(ctx context.Context, opts Options) ([]PlanItem, error) {
	if r.catalog == nil || r.store == nil {
		return nil, fmt.Errorf("%w: planning needs a catalog and a progress store", config.ErrInvalidConfig)
	}
	if opts.MaxUploads <= 0 {
		opts.MaxUploads = config.DefaultMaxUploadsPerRun
	}

	profile, err := opts.Channel.ScheduleProfile()
	if err != nil {
		return nil, fmt.Errorf("%w: channel %q: %v", config.ErrInvalidConfig, opts.Profile, err)
	}

	items, err := r.workItems(opts)
	if err != nil {
		return nil, fmt.Errorf("collect work items: %w", err)
	}

	state, err := r.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress from %s: %w", r.store.Describe(), err)
	}
	cs := state.Channel(opts.Profile).Clone()

	window, _ := progress.Window(items, progress.Resume{
		StartFrom:      opts.StartFrom,
		StartExclusive: opts.StartExclusive,
		StopAt:         opts.StopAt,
		LastPublished:  cs.LastPublished,
	})

	var plan []PlanItem
	planned := 0
	for _, item := range window {
		if planned >= opts.MaxUploads {
			break
		}

		key := item.Key()
		p := PlanItem{Key: key, Path: item.Path}

		if cs.IsDone(key) {
			p.Outcome = OutcomeAlreadyDone
			plan = append(plan, p)
			continue
		}

		res, err := r.catalog.Resolve(item, opts.CategoryID)
		if err != nil {
			p.Outcome = OutcomeNotFound
			if errors.Is(err, catalog.ErrNotFound) {
				p.Reason = "no catalog entry"
			} else {
				p.Reason = err.Error()
			}
			plan = append(plan, p)
			continue
		}
		p.Title = res.Metadata.Title

		if _, err := os.Stat(item.Path); err != nil {
			p.Outcome = OutcomeNotFound
			p.Reason = "video file missing"
			plan = append(plan, p)
			continue
		}

		p.Outcome = OutcomePlanned
		p.GlobalIndex = cs.Count()
		p.Day = profile.StartDate.AddDate(0, 0, p.GlobalIndex).Format(config.DateLayout)
		cs.RecordSuccess(key, "")
		planned++
		plan = append(plan, p)
	}

	return plan, nil
}
