package domain

// FetchMode selects which catalog endpoint serves a page
type FetchMode int

const (
	ModeDiscover FetchMode = iota // Unfiltered, popularity-sorted catalog
	ModeSearch                    // Free-text query results
)

// String returns the mode name used in logs and the UI
func (m FetchMode) String() string {
	switch m {
	case ModeDiscover:
		return "discover"
	case ModeSearch:
		return "search"
	default:
		return "unknown"
	}
}

// PageRequest identifies one page to fetch
type PageRequest struct {
	Mode  FetchMode `json:"mode"`
	Query string    `json:"query,omitempty"` // Only meaningful in search mode
	Page  int       `json:"page"`
}

// ResultPage is one response's worth of movies plus pagination metadata
type ResultPage struct {
	Movies       []Movie `json:"results"`
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`   // Always >= 1
	TotalResults int     `json:"total_results"`
}
