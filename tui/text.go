package tui

// UI Text Constants
const (
	TextTitle = "🌬️ Breathing Shorts Scheduler"

	// Instructions
	TextAuthInstruction = "Press enter to authenticate with Google"
	TextListInstruction = "↑/↓ to move | enter to select | esc to go back"
	TextFormInstruction = "tab/↓ next field | shift+tab/↑ previous | enter on the last field to start"

	// Footer
	TextFooterRunning = "Uploading... ctrl+c stops after the current video"
	TextFooterDone    = "Press 'q' or ctrl+c to exit"

	TextNoPlaylist   = "(no playlist)"
	TextDefaultClock = "19:00"
)
