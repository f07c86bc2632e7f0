package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/service"
)

// Command factories for async operations

// DefaultFetchTimeout bounds a single page fetch
const DefaultFetchTimeout = 30 * time.Second

// FetchPageCmd runs one fetch and reports back with a browse.FetchResult
// carrying the command's sequence number. Errors never escape as messages
// of their own; they travel inside the result.
func FetchPageCmd(svc *service.CatalogService, fc browse.FetchCommand, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := svc.FetchPage(ctx, fc.Request)
		return fc.Result(page, err)
	}
}

// OpenPosterCmd opens the movie's poster in the system viewer
func OpenPosterCmd(svc *service.PosterService, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := svc.Open(movie); err != nil {
			return ErrMsg{Err: err, Context: "opening poster"}
		}
		return PosterOpenedMsg{Movie: movie}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
