package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/tui/styles"
)

// SearchBar is the free-text input in the header. Typing never fetches;
// only enter submits.
type SearchBar struct {
	input textinput.Model
}

// NewSearchBar creates a new search bar
func NewSearchBar() SearchBar {
	ti := textinput.New()
	ti.Placeholder = "search movies..."
	ti.CharLimit = 100
	ti.Prompt = "/ "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.InputStyle
	ti.PlaceholderStyle = styles.DimStyle

	return SearchBar{input: ti}
}

// Focus puts the cursor in the bar
func (s *SearchBar) Focus() tea.Cmd {
	return s.input.Focus()
}

// Blur releases keyboard focus, keeping the text
func (s *SearchBar) Blur() {
	s.input.Blur()
}

// Focused reports whether the bar has keyboard focus
func (s SearchBar) Focused() bool {
	return s.input.Focused()
}

// Value returns the current text
func (s SearchBar) Value() string {
	return s.input.Value()
}

// SetValue replaces the text
func (s *SearchBar) SetValue(v string) {
	s.input.SetValue(v)
}

// SetWidth sets the visible input width
func (s *SearchBar) SetWidth(w int) {
	s.input.Width = max(w, 1)
}

// Update handles input events, returns (bar, cmd, submitted).
// Esc blurs without submitting.
func (s SearchBar) Update(msg tea.Msg) (SearchBar, tea.Cmd, bool) {
	if !s.input.Focused() {
		return s, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			s.input.Blur()
			return s, nil, true
		case "esc":
			s.input.Blur()
			return s, nil, false
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd, false
}

// View renders the bar
func (s SearchBar) View() string {
	return s.input.View()
}
