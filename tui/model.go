// Package tui is the interactive form for ad-hoc batches: pick a channel and
// playlist, point at a folder of videos and a metadata file, and schedule
// them one per day.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"breathbot/config"
	"breathbot/schedule"
	"breathbot/workflow"
	"breathbot/youtube"
)

// Step is the screen the form is on.
type Step int

const (
	StepAuth Step = iota
	StepChannels
	StepPlaylists
	StepForm
	StepRunning
	StepDone
)

// Options are the form's capabilities and fixed settings.
type Options struct {
	// UsePrefix reads <folder>/<prefix><name><suffix> instead of <folder>/<name><suffix>.
	UsePrefix bool
	// FixedTime asks for an HH:MM publish time instead of drawing one from the profile window.
	FixedTime bool

	Prefix     string
	Suffix     string
	Profile    schedule.Profile
	CategoryID string
	DryRun     bool
}

const (
	fieldFolder = iota
	fieldMetadata
	fieldStartDate
	fieldTime
)

// Model is the form state.
type Model struct {
	backend Backend
	opts    Options
	keys    Keymap

	ctx    context.Context
	cancel context.CancelFunc

	Step    Step
	Busy    bool
	AuthURL string
	Err     error

	Channels  []youtube.Channel
	Playlists []youtube.Playlist
	Cursor    int
	Channel   youtube.Channel
	Playlist  youtube.Playlist

	inputs    []textinput.Model
	focus     int
	FieldErrs map[int]string

	results  chan workflow.ItemResult
	done     chan BatchDoneMsg
	Items    []workflow.ItemResult
	Summary  *workflow.Summary
	quitting bool
}

// NewModel creates the form. now seeds the default start date.
func NewModel(backend Backend, opts Options, now time.Time) Model {
	ctx, cancel := context.WithCancel(context.Background())

	if opts.Profile.Location == nil {
		opts.Profile.Location = time.UTC
	}
	if opts.Suffix == "" {
		opts.Suffix = config.DefaultVideoSuffix
	}

	start := opts.Profile.StartDate
	if start.IsZero() {
		start = now
	}

	m := Model{
		backend:   backend,
		opts:      opts,
		keys:      DefaultKeymap(),
		ctx:       ctx,
		cancel:    cancel,
		Step:      StepAuth,
		FieldErrs: map[int]string{},
	}

	m.inputs = append(m.inputs,
		newInput("videos/", ""),
		newInput("metadata.json", ""),
		newInput(config.DateLayout, start.In(opts.Profile.Location).Format(config.DateLayout)),
	)
	if opts.FixedTime {
		m.inputs = append(m.inputs, newInput(config.TimeLayout, TextDefaultClock))
	}
	return m
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 48
	ti.SetValue(value)

	ti.PlaceholderStyle = inputPlaceholderStyle
	ti.Cursor.Style = inputPromptStyle
	ti.PromptStyle = inputPromptStyle
	return ti
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) fieldLabel(i int) string {
	switch i {
	case fieldFolder:
		return "Video folder"
	case fieldMetadata:
		return "Metadata JSON"
	case fieldStartDate:
		return "Start date (YYYY-MM-DD)"
	case fieldTime:
		return "Publish time (HH:MM)"
	default:
		return ""
	}
}

// playlistChoices is the number of rows on the playlist screen; row 0 is "no playlist".
func (m Model) playlistChoices() int {
	return len(m.Playlists) + 1
}
