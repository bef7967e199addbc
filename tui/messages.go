package tui

import (
	"breathbot/workflow"
	"breathbot/youtube"
)

// Messages for the tea program

// AuthURLMsg carries the consent URL while authorization waits for the browser.
type AuthURLMsg struct {
	URL string
}

// AuthDoneMsg is sent when authentication finished.
type AuthDoneMsg struct {
	Err error
}

// ChannelsLoadedMsg is sent when the user's channels were listed.
type ChannelsLoadedMsg struct {
	Channels []youtube.Channel
	Err      error
}

// PlaylistsLoadedMsg is sent when a channel's playlists were listed.
type PlaylistsLoadedMsg struct {
	Playlists []youtube.Playlist
	Err       error
}

// ItemDoneMsg reports one finished batch entry.
type ItemDoneMsg struct {
	Result workflow.ItemResult
}

// BatchDoneMsg is sent when the batch finished.
type BatchDoneMsg struct {
	Summary workflow.Summary
	Err     error
}
