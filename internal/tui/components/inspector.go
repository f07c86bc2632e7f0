package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Inspector displays details for the selected movie
type Inspector struct {
	movie     *domain.Movie
	posterURL string
	width     int
	height    int
}

// NewInspector creates a new inspector component
func NewInspector() Inspector {
	return Inspector{}
}

// SetMovie sets the movie to display, nil clears it. posterURL is what the
// open-poster key would open.
func (i *Inspector) SetMovie(movie *domain.Movie, posterURL string) {
	i.movie = movie
	i.posterURL = posterURL
}

// SetSize updates the component dimensions
func (i *Inspector) SetSize(width, height int) {
	i.width = width
	i.height = height
}

// HasMovie returns true if there is a movie to display
func (i Inspector) HasMovie() bool {
	return i.movie != nil
}

// View renders the component
func (i Inspector) View() string {
	style := styles.InactiveBorder

	// Border takes 2 chars, leave 1 char safety margin
	contentWidth := max(i.width-3, 10)

	parts := []string{
		styles.AccentStyle.Render(styles.Truncate("Info", contentWidth)),
		"",
	}

	if i.movie == nil {
		parts = append(parts, styles.DimStyle.Render("No movie selected"))
	} else {
		parts = append(parts, renderMovieDetails(*i.movie, i.posterURL, contentWidth))
	}

	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(i.width-frameW, 0)).
		Height(max(i.height-frameH, 0)).
		Render(strings.Join(parts, "\n"))
}

func renderMovieDetails(m domain.Movie, posterURL string, width int) string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(styles.Truncate(m.Title, width)))
	b.WriteString("\n\n")

	released := "Unknown"
	if t, ok := m.Released(); ok {
		released = t.Format("January 2, 2006")
	} else if m.ReleaseDate != "" {
		released = m.ReleaseDate
	}

	ratingText := "★ " + m.FormattedRating()
	var ratingStyle lipgloss.Style
	switch {
	case m.VoteAverage >= 7:
		ratingStyle = lipgloss.NewStyle().Foreground(styles.Green)
	case m.VoteAverage >= 5:
		ratingStyle = styles.RatingStyle
	default:
		ratingStyle = lipgloss.NewStyle().Foreground(styles.Red)
	}

	rows := []struct {
		label string
		value string
	}{
		{"Released", released},
		{"Rating", ratingStyle.Render(ratingText)},
		{"Popularity", fmt.Sprintf("%.1f", m.Popularity)},
	}
	for _, row := range rows {
		b.WriteString(styles.DimStyle.Render(styles.Pad(row.label, 12)))
		b.WriteString(row.value)
		b.WriteString("\n")
	}

	if posterURL != "" {
		label := "Poster"
		if m.PosterPath == "" {
			label = "Page"
		}
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wrapURL(posterURL, width)))
	}

	return strings.TrimRight(b.String(), "\n")
}

// wrapURL hard-wraps a URL, which has no spaces to break on
func wrapURL(url string, width int) string {
	if width <= 0 || len(url) <= width {
		return url
	}
	var lines []string
	for len(url) > width {
		lines = append(lines, url[:width])
		url = url[width:]
	}
	if url != "" {
		lines = append(lines, url)
	}
	return strings.Join(lines, "\n")
}
