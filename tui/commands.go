package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"breathbot/workflow"
)

// authenticate runs the OAuth flow, which may wait for the browser.
func authenticate(ctx context.Context, backend Backend) tea.Cmd {
	return func() tea.Msg {
		return AuthDoneMsg{Err: backend.Authenticate(ctx)}
	}
}

func loadChannels(ctx context.Context, backend Backend) tea.Cmd {
	return func() tea.Msg {
		channels, err := backend.ListChannels(ctx)
		return ChannelsLoadedMsg{Channels: channels, Err: err}
	}
}

func loadPlaylists(ctx context.Context, backend Backend, channelID string) tea.Cmd {
	return func() tea.Msg {
		playlists, err := backend.ListPlaylists(ctx, channelID)
		return PlaylistsLoadedMsg{Playlists: playlists, Err: err}
	}
}

// runBatch publishes the batch, streaming each result to results.
func runBatch(ctx context.Context, backend Backend, opts workflow.BatchOptions, results chan<- workflow.ItemResult, done chan<- BatchDoneMsg) tea.Cmd {
	return func() tea.Msg {
		summary, err := backend.RunBatch(ctx, opts, func(r workflow.ItemResult) {
			results <- r
		})
		close(results)
		done <- BatchDoneMsg{Summary: summary, Err: err}
		return nil
	}
}

// listen waits for the next batch result, then for the final summary.
func listen(results <-chan workflow.ItemResult, done <-chan BatchDoneMsg) tea.Cmd {
	return func() tea.Msg {
		if r, ok := <-results; ok {
			return ItemDoneMsg{Result: r}
		}
		return <-done
	}
}
