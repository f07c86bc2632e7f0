package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/filter"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Layout constants for the movie list
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2

	ratingWidth = 7 // "★ 10.0 "
	yearWidth   = 6 // "  1995"
)

// MovieList is a scrollable, locally filterable list of movies
type MovieList struct {
	movies []domain.Movie

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	title string

	// Loading state
	loading      bool
	spinnerFrame int

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	matches      []filter.Match // nil when no filter query
}

// NewMovieList creates an empty movie list
func NewMovieList() *MovieList {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "f "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = styles.InputStyle

	return &MovieList{
		filterInput: ti,
		focused:     true,
	}
}

// SetMovies replaces the list contents, keeping the cursor where it can
func (c *MovieList) SetMovies(movies []domain.Movie) {
	c.movies = movies
	c.refilter()
	c.clampCursor()
}

// Reset moves the cursor back to the first row
func (c *MovieList) Reset() {
	c.cursor = 0
	c.offset = 0
}

// SetTitle sets the title shown above the rows
func (c *MovieList) SetTitle(title string) {
	c.title = title
}

// SetLoading toggles the loading placeholder for an empty list
func (c *MovieList) SetLoading(loading bool, frame int) {
	c.loading = loading
	c.spinnerFrame = frame
}

// SetSize updates the component dimensions
func (c *MovieList) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

// Width returns the rendered width
func (c *MovieList) Width() int {
	return c.width
}

// Count returns the number of rows shown, after filtering
func (c *MovieList) Count() int {
	if c.matches != nil {
		return len(c.matches)
	}
	return len(c.movies)
}

// Cursor returns the selected row
func (c *MovieList) Cursor() int {
	return c.cursor
}

// Selected returns the movie under the cursor
func (c *MovieList) Selected() (domain.Movie, bool) {
	if c.cursor >= c.Count() {
		return domain.Movie{}, false
	}
	return c.movies[c.mapIndex(c.cursor)], true
}

// IsFiltering returns true while a filter is active, typed or not
func (c *MovieList) IsFiltering() bool {
	return c.filterActive
}

// IsTyping returns true while the filter input has focus
func (c *MovieList) IsTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// FilterQuery returns the current filter text
func (c *MovieList) FilterQuery() string {
	return c.filterInput.Value()
}

// ToggleFilter opens the filter input, or refocuses it when already open
func (c *MovieList) ToggleFilter() tea.Cmd {
	c.filterActive = true
	c.recalcMaxVisible()
	return c.filterInput.Focus()
}

// ClearFilter removes the filter and shows every movie again
func (c *MovieList) ClearFilter() {
	c.filterActive = false
	c.matches = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
	c.clampCursor()
}

// Update handles a key, returns whether the list consumed it
func (c *MovieList) Update(msg tea.KeyMsg) (bool, tea.Cmd) {
	if c.IsTyping() {
		switch msg.String() {
		case "esc":
			c.ClearFilter()
			return true, nil
		case "enter":
			// Keep the results, hand keys back to navigation
			c.filterInput.Blur()
			return true, nil
		case "backspace":
			if c.filterInput.Value() == "" {
				c.ClearFilter()
				return true, nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return true, cmd
	}

	count := c.Count()

	switch msg.String() {
	case "j", "down":
		if c.cursor < count-1 {
			c.cursor++
			c.ensureVisible()
		}
	case "k", "up":
		if c.cursor > 0 {
			c.cursor--
			c.ensureVisible()
		}
	case "home":
		c.cursor = 0
		c.offset = 0
	case "end":
		c.cursor = max(count-1, 0)
		c.ensureVisible()
	case "ctrl+d", "pgdown":
		c.cursor = min(c.cursor+max(c.maxVisible/2, 1), max(count-1, 0))
		c.ensureVisible()
	case "ctrl+u", "pgup":
		c.cursor = max(c.cursor-max(c.maxVisible/2, 1), 0)
		c.ensureVisible()
	default:
		return false, nil
	}

	return true, nil
}

// View renders the list inside its border
func (c *MovieList) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *MovieList) mapIndex(i int) int {
	if c.matches != nil {
		return c.matches[i].Index
	}
	return i
}

func (c *MovieList) recalcMaxVisible() {
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1 // -1 for title
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *MovieList) ensureVisible() {
	if c.maxVisible <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *MovieList) clampCursor() {
	count := c.Count()
	if c.cursor >= count {
		c.cursor = max(count-1, 0)
	}
	if c.offset > c.cursor {
		c.offset = c.cursor
	}
	c.ensureVisible()
}

func (c *MovieList) applyFilter() {
	c.refilter()
	c.cursor = 0
	c.offset = 0
}

// refilter recomputes matches against the current movies
func (c *MovieList) refilter() {
	if !c.filterActive {
		c.matches = nil
		return
	}
	c.matches = filter.Movies(c.filterInput.Value(), c.movies)
	if c.matches == nil && strings.TrimSpace(c.filterInput.Value()) != "" {
		c.matches = []filter.Match{}
	}
}

func (c *MovieList) renderContent() string {
	itemWidth := max(c.width-BorderWidth, 10)

	titleLine := styles.AccentStyle.Render(styles.Truncate(c.title, itemWidth))

	count := c.Count()
	if count == 0 {
		msg := "No movies"
		switch {
		case c.loading:
			msg = styles.SpinnerFrames[c.spinnerFrame%len(styles.SpinnerFrames)] + " Loading..."
		case c.filterActive && c.filterInput.Value() != "":
			msg = "No matches"
		}
		content := titleLine + "\n \n" + styles.DimStyle.Render(msg) + "\n "
		if c.filterActive {
			content += "\n" + c.filterInput.View()
		}
		return content
	}

	end := min(c.offset+c.maxVisible, count)

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		var matched []int
		if c.matches != nil {
			matched = c.matches[i].MatchedIndexes
		}
		lines = append(lines, renderMovieRow(c.movies[c.mapIndex(i)], matched, i == c.cursor, itemWidth))
	}

	// Always reserve the indicator lines so rows never shift
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}
	footer := " "
	if end < count {
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer
	if c.filterActive {
		content += "\n" + c.filterInput.View()
	}
	return content
}

// renderMovieRow renders "★ 7.9  Title  1995" with filter matches highlighted
func renderMovieRow(m domain.Movie, matched []int, selected bool, width int) string {
	rating := fmt.Sprintf("★ %-4s ", m.FormattedRating())

	year := ""
	if y := m.Year(); y > 0 {
		year = fmt.Sprintf("  %d", y)
	}

	titleWidth := width - 2 - ratingWidth - yearWidth
	title := styles.Truncate(m.Title, titleWidth)

	parts := []styles.RowPart{{Text: rating, Foreground: styles.Color(styles.Yellow)}}
	parts = append(parts, highlightParts(m.Title, title, matched)...)
	if year != "" {
		parts = append(parts, styles.RowPart{Text: year, Foreground: styles.Color(styles.DimGray)})
	}

	return styles.RenderListRow(parts, selected, width)
}

// highlightParts splits shown (a possibly truncated full title) into runs,
// marking bytes whose offsets appear in matched
func highlightParts(full, shown string, matched []int) []styles.RowPart {
	// Offsets index the lowercased title; only trust them when lowercasing
	// kept every byte in place
	if len(matched) == 0 || len(strings.ToLower(full)) != len(full) {
		return []styles.RowPart{{Text: shown}}
	}

	limit := len(shown)
	if shown != full {
		limit = len(shown) - len("...")
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var (
		parts []styles.RowPart
		run   strings.Builder
		inHit bool
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		part := styles.RowPart{Text: run.String()}
		part.Highlight = inHit
		parts = append(parts, part)
		run.Reset()
	}

	for i, r := range shown {
		h := i < limit && hit[i]
		if h != inHit {
			flush()
			inHit = h
		}
		run.WriteRune(r)
	}
	flush()

	return parts
}
