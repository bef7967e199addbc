package tui

import (
	"fmt"
	"strings"

	"breathbot/schedule"
	"breathbot/workflow"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(TextTitle))
	b.WriteString("\n")
	if m.opts.DryRun {
		b.WriteString(badgeStyle.Render("DRY RUN"))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch m.Step {
	case StepAuth:
		b.WriteString(m.authView())
	case StepChannels:
		b.WriteString(m.channelsView())
	case StepPlaylists:
		b.WriteString(m.playlistsView())
	case StepForm:
		b.WriteString(m.formView())
	case StepRunning, StepDone:
		b.WriteString(m.progressView())
	}

	if m.Err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("❌ %v", m.Err)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) authView() string {
	if !m.Busy {
		return badgeStyle.Render("👋 Ready") + "\n\n" + hintStyle.Render(TextAuthInstruction) + "\n"
	}
	s := progressStyle.Render("🔐 Waiting for Google authorization...") + "\n"
	if m.AuthURL != "" {
		s += "\n" + hintStyle.Render("Open this URL if the browser did not start:") + "\n" + m.AuthURL + "\n"
	}
	return s
}

func (m Model) channelsView() string {
	if m.Busy {
		return progressStyle.Render("⏳ Loading channels...") + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render("Select a channel:"))
	b.WriteString("\n")
	for i, ch := range m.Channels {
		b.WriteString(m.row(i, ch.Title))
	}
	return b.String()
}

func (m Model) playlistsView() string {
	if m.Busy {
		return progressStyle.Render("⏳ Loading playlists...") + "\n"
	}
	var b strings.Builder
	b.WriteString(labelStyle.Render(fmt.Sprintf("Select a playlist on %s:", m.Channel.Title)))
	b.WriteString("\n")
	b.WriteString(m.row(0, TextNoPlaylist))
	for i, p := range m.Playlists {
		b.WriteString(m.row(i+1, p.Title))
	}
	return b.String()
}

func (m Model) row(i int, label string) string {
	if i == m.Cursor {
		return cursorStyle.Render("> "+label) + "\n"
	}
	return "  " + label + "\n"
}

func (m Model) formView() string {
	var b strings.Builder

	target := m.Channel.Title
	if m.Playlist.ID != "" {
		target += " / " + m.Playlist.Title
	}
	b.WriteString(hintStyle.Render("Publishing to " + target))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		b.WriteString(labelStyle.Render(m.fieldLabel(i)))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
		if msg, ok := m.FieldErrs[i]; ok {
			b.WriteString(errorStyle.Render("✗ " + msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if !m.opts.FixedTime {
		p := m.opts.Profile
		b.WriteString(hintStyle.Render(fmt.Sprintf("Publish time: random between %02d:00 and %02d:59 (%s)",
			p.HourStart, p.HourEnd, p.Location)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) progressView() string {
	var b strings.Builder

	if m.Step == StepRunning {
		b.WriteString(progressStyle.Render(fmt.Sprintf("📤 Uploading... %d done", len(m.Items))))
		b.WriteString("\n\n")
	}

	for _, r := range m.Items {
		b.WriteString(formatResult(r))
		b.WriteString("\n")
	}

	if m.Step == StepDone && m.Summary != nil {
		b.WriteString("\n")
		b.WriteString(summaryBoxStyle.Render(formatSummary(*m.Summary)))
		b.WriteString("\n")
	}
	return b.String()
}

func formatResult(r workflow.ItemResult) string {
	switch r.Outcome {
	case workflow.OutcomePublished, workflow.OutcomeDryRun:
		return progressStyle.Render(fmt.Sprintf("✅ %s → %s at %s", r.Key, r.VideoID, schedule.FormatPublishAt(r.PublishAt)))
	case workflow.OutcomeNotFound:
		return hintStyle.Render(fmt.Sprintf("⏭️ %s: file not found", r.Key))
	default:
		return errorStyle.Render(fmt.Sprintf("❌ %s: %s", r.Key, r.Error))
	}
}

func formatSummary(s workflow.Summary) string {
	var b strings.Builder
	b.WriteString(badgeStyle.Render("Batch complete"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Scheduled: %d\n", s.Published))
	b.WriteString(fmt.Sprintf("Not found: %d\n", s.NotFound))
	b.WriteString(fmt.Sprintf("Errors:    %d\n", s.Errors))
	if s.Interrupted {
		b.WriteString("\nStopped before the end of the batch\n")
	}
	return b.String()
}

func (m Model) footer() string {
	switch m.Step {
	case StepChannels, StepPlaylists:
		return hintStyle.Render(TextListInstruction)
	case StepForm:
		return hintStyle.Render(TextFormInstruction)
	case StepRunning:
		return hintStyle.Render(TextFooterRunning)
	case StepDone:
		return badgeStyle.Render(TextFooterDone)
	default:
		return hintStyle.Render("Press 'q' or ctrl+c to quit")
	}
}
