package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/browse"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.State == StateHelp {
		// Any key closes help
		m.State = StateBrowsing
		return m, nil
	}

	// Route to active input or modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		if m.List.IsFiltering() {
			m.List.ClearFilter()
			m.updateInspector()
		}
		return m, nil

	case key.Matches(msg, Keys.Search):
		m.SearchBar.SetValue(m.Browse.Query)
		return m, m.SearchBar.Focus()

	case key.Matches(msg, Keys.ClearSearch):
		m.SearchBar.SetValue("")
		return m.dispatch(browse.ClearSearch{})

	case key.Matches(msg, Keys.NextPage):
		return m.dispatch(browse.NextPage{})

	case key.Matches(msg, Keys.PrevPage):
		return m.dispatch(browse.PrevPage{})

	case key.Matches(msg, Keys.FirstPage):
		return m.dispatch(browse.GoToPage{Page: 1})

	case key.Matches(msg, Keys.LastPage):
		return m.dispatch(browse.GoToPage{Page: m.Browse.TotalPages})

	case key.Matches(msg, Keys.Refresh):
		return m.dispatch(browse.Refresh{})

	case key.Matches(msg, Keys.Filter):
		return m, m.List.ToggleFilter()

	case key.Matches(msg, Keys.Sort):
		m.SortModal.Show(m.Browse.SortKey)
		return m, nil

	case key.Matches(msg, Keys.ToggleInspector):
		m.ShowInspector = !m.ShowInspector
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.OpenPoster):
		if m.PosterSvc == nil {
			return m, nil
		}
		if movie, ok := m.List.Selected(); ok {
			return m, OpenPosterCmd(m.PosterSvc, movie)
		}
		return m, nil
	}

	// Everything else is cursor movement
	if handled, cmd := m.List.Update(msg); handled {
		m.updateInspector()
		return m, cmd
	}

	return m, nil
}

// routeToModal gives the sort modal, the search bar, and the list filter
// first claim on a key, in that order
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if m.SortModal.IsVisible() {
		handled, selection := m.SortModal.HandleKey(msg.String())
		if handled {
			if selection != nil {
				next, cmd := m.dispatch(browse.ChangeSort{Key: *selection})
				return true, next, cmd
			}
			return true, m, nil
		}
	}

	if m.SearchBar.Focused() {
		var (
			cmd       tea.Cmd
			submitted bool
		)
		m.SearchBar, cmd, submitted = m.SearchBar.Update(msg)
		if submitted {
			// Blank input is a no-op in the reducer
			next, fetch := m.dispatch(browse.SubmitSearch{Text: m.SearchBar.Value()})
			return true, next, tea.Batch(cmd, fetch)
		}
		return true, m, cmd
	}

	if m.List.IsTyping() {
		_, cmd := m.List.Update(msg)
		m.updateInspector()
		return true, m, cmd
	}

	return false, m, nil
}
