package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// View renders the whole screen
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	layout := m.calculateLayout()

	content := m.List.View()
	if layout.inspectorWidth > 0 {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.Inspector.View())
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		content,
		m.renderFooter(),
	)

	if m.SortModal.IsVisible() {
		view = lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.SortModal.View())
	}

	return view
}

// listTitle names what the list is showing
func (m Model) listTitle() string {
	if m.Browse.Mode() == domain.ModeSearch {
		return fmt.Sprintf("Results for %q", m.Browse.Query)
	}
	return "Popular movies"
}

// renderHeader renders the app badge, the mode, the search bar, and the sort
func (m Model) renderHeader() string {
	badge := styles.BadgeStyle.Render("reel")

	mode := styles.DimBadgeStyle.Render("discover")
	if m.Browse.Mode() == domain.ModeSearch {
		mode = styles.DimBadgeStyle.Render("search")
	}

	var search string
	switch {
	case m.SearchBar.Focused():
		search = m.SearchBar.View()
	case m.Browse.Query != "":
		search = styles.AccentStyle.Render("/ ") + styles.TitleStyle.Render(m.Browse.Query) +
			styles.DimStyle.Render("  x clear")
	default:
		search = styles.DimStyle.Render("/ search movies")
	}

	left := badge + " " + mode + "  " + search
	right := styles.DimStyle.Render("sort: ") + styles.AccentStyle.Render(m.Browse.SortKey.String())

	gap := max(m.Width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// renderFooter renders a single-line footer: status, page, help hint
func (m Model) renderFooter() string {
	var left string
	switch {
	case m.Browse.Loading:
		left = RenderSpinner(m.SpinnerFrame) + " " + styles.DimStyle.Render("Loading...")
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.Browse.Err != "":
		left = styles.ErrorStyle.Render("Error: " + m.Browse.Err)
	}

	center := styles.SubtitleStyle.Render(fmt.Sprintf("Page %d of %d", m.Browse.Page, m.Browse.TotalPages))
	if m.List.IsFiltering() {
		center += styles.DimStyle.Render(fmt.Sprintf(" · %d shown", m.List.Count()))
	}

	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	// Not enough space: the page indicator wins over the status text
	if leftWidth+centerWidth+rightWidth >= m.Width {
		left = styles.Truncate(left, max(m.Width-centerWidth-rightWidth-2, 0))
		leftWidth = lipgloss.Width(left)
	}

	available := max(m.Width-leftWidth-rightWidth, centerWidth)
	leftPad := max((available-centerWidth)/2, 1)
	rightPad := max(available-centerWidth-leftPad, 1)

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	body := m.Help.FullHelpView(Keys.FullHelp())

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(
			styles.ModalTitleStyle.Render("Keys")+"\n"+body+"\n\n"+
				styles.DimStyle.Render("Press any key to return..."),
		))
}

// RenderSpinner renders a loading spinner
func RenderSpinner(frame int) string {
	return styles.SpinnerStyle.Render(styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])
}
