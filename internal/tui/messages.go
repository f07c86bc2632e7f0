package tui

import "github.com/mmcdole/reel/internal/domain"

// Message types for the TUI. Fetch results arrive as browse.FetchResult.

// ErrMsg represents an error outside the fetch path
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// PosterOpenedMsg signals that the viewer was launched
type PosterOpenedMsg struct {
	Movie domain.Movie
}

// TickMsg is sent periodically to drive the spinner
type TickMsg struct{}

// ClearStatusMsg clears the status message
type ClearStatusMsg struct{}
