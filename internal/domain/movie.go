package domain

import (
	"fmt"
	"time"
)

// ReleaseDateLayout is the calendar date format used by TMDB for release dates
const ReleaseDateLayout = "2006-01-02"

// movieWebURL is the public TMDB page for a movie, by ID
const movieWebURL = "https://www.themoviedb.org/movie/%d"

// Movie is a single movie record as returned by the catalog
type Movie struct {
	ID          int     `json:"id"`           // Stable TMDB identifier
	Title       string  `json:"title"`        // Display title
	ReleaseDate string  `json:"release_date"` // Raw "YYYY-MM-DD", may be empty or malformed
	Popularity  float64 `json:"popularity"`   // Non-negative TMDB popularity score
	VoteAverage float64 `json:"vote_average"` // Average rating, 0-10
	PosterPath  string  `json:"poster_path"`  // Relative image path, empty when absent
}

// Released parses the release date. ok is false when the date is missing or malformed.
func (m Movie) Released() (t time.Time, ok bool) {
	if m.ReleaseDate == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(ReleaseDateLayout, m.ReleaseDate)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Year returns the release year (0 if unknown)
func (m Movie) Year() int {
	if t, ok := m.Released(); ok {
		return t.Year()
	}
	return 0
}

// PosterURL joins the image base URL with the poster path.
// Returns "" when the movie has no poster.
func (m Movie) PosterURL(imageBase string) string {
	if m.PosterPath == "" {
		return ""
	}
	return imageBase + m.PosterPath
}

// PageURL returns the movie's page on themoviedb.org
func (m Movie) PageURL() string {
	return fmt.Sprintf(movieWebURL, m.ID)
}

// FormattedRating returns the vote average with one decimal (e.g., "7.4")
func (m Movie) FormattedRating() string {
	return fmt.Sprintf("%.1f", m.VoteAverage)
}

// DisplayTitle returns the title with the year appended when known
func (m Movie) DisplayTitle() string {
	if year := m.Year(); year > 0 {
		return fmt.Sprintf("%s (%d)", m.Title, year)
	}
	return m.Title
}
