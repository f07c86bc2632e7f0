package browse

import (
	"slices"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// Update applies one event and returns the next state. When the event calls
// for a network round trip, the returned command is non-nil and its result
// must be fed back in as a FetchResult.
func Update(s State, ev Event) (State, *FetchCommand) {
	switch ev := ev.(type) {
	case Mounted:
		return s.fetch()

	case NextPage:
		if !s.HasNext() {
			return s, nil
		}
		return s.goTo(s.Page + 1)

	case PrevPage:
		if !s.HasPrev() {
			return s, nil
		}
		return s.goTo(s.Page - 1)

	case GoToPage:
		return s.goTo(clampPage(ev.Page, s.TotalPages))

	case SubmitSearch:
		text := strings.TrimSpace(ev.Text)
		if text == "" {
			return s, nil
		}
		s.Query = text
		s.Movies = nil
		s.Page = 1
		return s.fetch()

	case ClearSearch:
		if s.Query == "" {
			return s, nil
		}
		s.Query = ""
		s.Movies = nil
		s.Page = 1
		return s.fetch()

	case ChangeSort:
		s.SortKey = ParseSortKey(string(ev.Key))
		s.Movies = SortMovies(s.Movies, s.SortKey)
		return s, nil

	case Refresh:
		if s.Mode() == domain.ModeSearch {
			s.Movies = nil
			s.Page = 1
		}
		return s.fetch()

	case FetchResult:
		return s.applyResult(ev), nil
	}

	return s, nil
}

// goTo moves to page and fetches it. Same page is a no-op. Search pages
// append in order, so a search page change waits for the pending one.
func (s State) goTo(page int) (State, *FetchCommand) {
	if page == s.Page {
		return s, nil
	}
	if s.Loading && s.Mode() == domain.ModeSearch {
		return s, nil
	}
	s.Page = page
	return s.fetch()
}

// fetch starts a new fetch for the current page, superseding any in flight
func (s State) fetch() (State, *FetchCommand) {
	s.Seq++
	s.Loading = true
	s.Err = ""
	return s, &FetchCommand{Seq: s.Seq, Request: s.request()}
}

func (s State) applyResult(r FetchResult) State {
	if r.Seq != s.Seq {
		// Superseded by a newer fetch
		return s
	}

	s.Loading = false

	switch r.Outcome() {
	case OutcomeCancelled:
		return s

	case OutcomeFailed:
		s.Err = r.Err.Error()
		if r.Request.Mode == domain.ModeSearch && r.Request.Page > 1 {
			// The page was never appended; the next NextPage retries it
			s.Page = r.Request.Page - 1
		}
		return s
	}

	if r.Page == nil {
		return s
	}

	if r.Request.Mode == domain.ModeSearch {
		s.Movies = append(append(slices.Grow([]domain.Movie(nil), len(s.Movies)+len(r.Page.Movies)), s.Movies...), r.Page.Movies...)
	} else {
		s.Movies = slices.Clone(r.Page.Movies)
	}

	s.TotalPages = r.Page.TotalPages
	if s.TotalPages < 1 {
		s.TotalPages = 1
	}
	s.Page = clampPage(s.Page, s.TotalPages)

	s.Movies = SortMovies(s.Movies, s.SortKey)

	return s
}
