package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"breathbot/workflow"
	"breathbot/youtube"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case AuthURLMsg:
		m.AuthURL = msg.URL
		return m, nil
	case AuthDoneMsg:
		return m.handleAuthDone(msg)
	case ChannelsLoadedMsg:
		return m.handleChannelsLoaded(msg)
	case PlaylistsLoadedMsg:
		return m.handlePlaylistsLoaded(msg)
	case ItemDoneMsg:
		m.Items = append(m.Items, msg.Result)
		return m, listen(m.results, m.done)
	case BatchDoneMsg:
		return m.handleBatchDone(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Force) {
		if m.Step == StepRunning {
			// the batch stops after the current video and BatchDoneMsg quits
			m.cancel()
			m.quitting = true
			return m, nil
		}
		m.cancel()
		return m, tea.Quit
	}

	switch m.Step {
	case StepAuth:
		return m.handleAuthKeys(msg)
	case StepChannels, StepPlaylists:
		return m.handleListKeys(msg)
	case StepForm:
		return m.handleFormKeys(msg)
	case StepDone:
		if key.Matches(msg, m.keys.Quit, m.keys.Select) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select) && !m.Busy:
		m.Busy = true
		m.Err = nil
		return m, authenticate(m.ctx, m.backend)
	}
	return m, nil
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.Busy {
		return m, nil
	}

	rows := len(m.Channels)
	if m.Step == StepPlaylists {
		rows = m.playlistChoices()
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.Cursor > 0 {
			m.Cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.Cursor < rows-1 {
			m.Cursor++
		}
	case key.Matches(msg, m.keys.Back):
		m.Cursor = 0
		m.Err = nil
		if m.Step == StepPlaylists {
			m.Step = StepChannels
		}
	case key.Matches(msg, m.keys.Select):
		if rows == 0 {
			return m, nil
		}
		if m.Step == StepChannels {
			m.Channel = m.Channels[m.Cursor]
			m.Busy = true
			m.Err = nil
			return m, loadPlaylists(m.ctx, m.backend, m.Channel.ID)
		}
		m.Playlist = m.playlistAt(m.Cursor)
		m.Step = StepForm
		m.focus = 0
		return m, m.focusInput()
	}
	return m, nil
}

func (m Model) playlistAt(row int) youtube.Playlist {
	if row == 0 {
		return youtube.Playlist{}
	}
	return m.Playlists[row-1]
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.inputs) - 1

	switch {
	case key.Matches(msg, m.keys.Back):
		m.Step = StepPlaylists
		m.Cursor = 0
		return m, nil
	case key.Matches(msg, m.keys.Next):
		if m.focus < last {
			m.focus++
		}
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Prev):
		if m.focus > 0 {
			m.focus--
		}
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Select):
		if m.focus < last {
			m.focus++
			return m, m.focusInput()
		}
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	delete(m.FieldErrs, m.focus)
	return m, cmd
}

// focusInput focuses the current field and blurs the rest.
func (m Model) focusInput() tea.Cmd {
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == m.focus {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

// submit validates the form and starts the batch.
func (m Model) submit() (tea.Model, tea.Cmd) {
	opts, errs := m.batchOptions()
	m.FieldErrs = errs
	if len(errs) > 0 {
		return m, nil
	}

	m.Step = StepRunning
	m.Err = nil
	m.Items = nil
	m.results = make(chan workflow.ItemResult)
	m.done = make(chan BatchDoneMsg, 1)

	return m, tea.Batch(
		runBatch(m.ctx, m.backend, opts, m.results, m.done),
		listen(m.results, m.done),
	)
}

func (m Model) handleAuthDone(msg AuthDoneMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	m.AuthURL = ""
	if msg.Err != nil {
		m.Err = fmt.Errorf("authentication failed: %w", msg.Err)
		return m, nil
	}
	m.Step = StepChannels
	m.Cursor = 0
	m.Busy = true
	return m, loadChannels(m.ctx, m.backend)
}

func (m Model) handleChannelsLoaded(msg ChannelsLoadedMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.Err != nil {
		m.Err = fmt.Errorf("failed to load channels: %w", msg.Err)
		return m, nil
	}
	if len(msg.Channels) == 0 {
		m.Err = errors.New("no channels found for this account")
	}
	m.Channels = msg.Channels
	m.Cursor = 0
	return m, nil
}

func (m Model) handlePlaylistsLoaded(msg PlaylistsLoadedMsg) (tea.Model, tea.Cmd) {
	m.Busy = false
	if msg.Err != nil {
		m.Err = fmt.Errorf("failed to load playlists: %w", msg.Err)
		return m, nil
	}
	m.Playlists = msg.Playlists
	m.Step = StepPlaylists
	m.Cursor = 0
	return m, nil
}

func (m Model) handleBatchDone(msg BatchDoneMsg) (tea.Model, tea.Cmd) {
	m.Step = StepDone
	m.Summary = &msg.Summary
	m.Err = msg.Err
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}
