package tui

import "github.com/charmbracelet/lipgloss"

// Calm sea palette.
var (
	tide  = lipgloss.AdaptiveColor{Light: "#0E7C86", Dark: "#4FD1C5"}
	mist  = lipgloss.AdaptiveColor{Light: "#6B7A80", Dark: "#8FA3A8"}
	coral = lipgloss.AdaptiveColor{Light: "#C0392B", Dark: "#FF7A6B"}
	foam  = lipgloss.AdaptiveColor{Light: "#1B2B30", Dark: "#E6F4F1"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(tide).MarginBottom(1)

	// badgeStyle marks modes and milestones: DRY RUN, Ready, Batch complete.
	badgeStyle = lipgloss.NewStyle().Bold(true).Foreground(foam).Background(tide).Padding(0, 1)

	labelStyle    = lipgloss.NewStyle().Foreground(foam)
	hintStyle     = lipgloss.NewStyle().Foreground(mist)
	progressStyle = lipgloss.NewStyle().Foreground(tide)
	errorStyle    = lipgloss.NewStyle().Foreground(coral)
	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(tide)

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(tide).
			PaddingLeft(2)

	inputPromptStyle      = lipgloss.NewStyle().Foreground(tide)
	inputPlaceholderStyle = lipgloss.NewStyle().Foreground(mist).Italic(true)
)
