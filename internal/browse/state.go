// Package browse holds the query state of a browsing session and the
// reducer that moves it forward.
//
// Update is pure: it takes the current State and one Event, and returns the
// next State plus, at most, one FetchCommand for the caller to execute. The
// outcome of that command comes back as a FetchResult event. Nothing in this
// package performs I/O.
package browse

import (
	"github.com/mmcdole/reel/internal/domain"
)

// State is the complete, serializable query state of one session
type State struct {
	Page       int            `json:"page"`        // 1-based, never above TotalPages
	TotalPages int            `json:"total_pages"` // 1 until the first response
	Query      string         `json:"query"`       // Committed search text; empty means discover mode
	SortKey    SortKey        `json:"sort_key"`
	Loading    bool           `json:"loading"`
	Err        string         `json:"error,omitempty"` // Last fetch failure, cleared by the next fetch
	Movies     []domain.Movie `json:"movies"`

	// Seq identifies the most recently issued fetch. Results carrying any
	// other sequence number are stale.
	Seq uint64 `json:"seq"`
}

// New returns the state of a fresh session
func New() State {
	return State{
		Page:       1,
		TotalPages: 1,
		SortKey:    DefaultSort,
	}
}

// Mode reports which endpoint serves the current query
func (s State) Mode() domain.FetchMode {
	if s.Query != "" {
		return domain.ModeSearch
	}
	return domain.ModeDiscover
}

// HasPrev reports whether a previous page exists
func (s State) HasPrev() bool {
	return s.Page > 1
}

// HasNext reports whether a next page exists
func (s State) HasNext() bool {
	return s.Page < s.TotalPages
}

// request builds the page request for the current page and query
func (s State) request() domain.PageRequest {
	return domain.PageRequest{
		Mode:  s.Mode(),
		Query: s.Query,
		Page:  s.Page,
	}
}

// clampPage bounds page to [1, totalPages]
func clampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}
