package tui

import (
	"fmt"
	"os"
	"strings"

	"breathbot/catalog"
	"breathbot/schedule"
	"breathbot/workflow"
)

// batchOptions validates every field and returns the batch to run, or the
// per-field errors to show inline.
func (m Model) batchOptions() (workflow.BatchOptions, map[int]string) {
	errs := map[int]string{}
	value := func(i int) string { return strings.TrimSpace(m.inputs[i].Value()) }

	opts := workflow.BatchOptions{
		Folder:     value(fieldFolder),
		Suffix:     m.opts.Suffix,
		PlaylistID: m.Playlist.ID,
		Profile:    m.opts.Profile,
		FixedTime:  m.opts.FixedTime,
		CategoryID: m.opts.CategoryID,
		DryRun:     m.opts.DryRun,
	}
	if m.opts.UsePrefix {
		opts.Prefix = m.opts.Prefix
	}

	if opts.Folder == "" {
		errs[fieldFolder] = "pick a video folder"
	} else if info, err := os.Stat(opts.Folder); err != nil || !info.IsDir() {
		errs[fieldFolder] = fmt.Sprintf("%s is not a folder", opts.Folder)
	}

	if path := value(fieldMetadata); path == "" {
		errs[fieldMetadata] = "pick a metadata JSON file"
	} else if entries, err := catalog.LoadBatch(path); err != nil {
		errs[fieldMetadata] = err.Error()
	} else if len(entries) == 0 {
		errs[fieldMetadata] = "metadata file has no entries"
	} else {
		opts.Entries = entries
	}

	start, err := schedule.ParseDate(value(fieldStartDate), m.opts.Profile.Location)
	if err != nil {
		errs[fieldStartDate] = "date must be YYYY-MM-DD"
	} else {
		opts.Profile.StartDate = start
	}

	if m.opts.FixedTime {
		hour, minute, err := schedule.ParseClock(value(fieldTime))
		if err != nil {
			errs[fieldTime] = "time must be HH:MM"
		} else {
			opts.Hour, opts.Minute = hour, minute
		}
	}

	return opts, errs
}
