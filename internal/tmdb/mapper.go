package tmdb

import (
	"strings"

	"github.com/mmcdole/reel/internal/domain"
)

// MaxPage is the highest page TMDB will serve for list endpoints
const MaxPage = 500

// MapPage converts a TMDB page envelope to a domain result page
func MapPage(resp PageResponse) *domain.ResultPage {
	totalPages := resp.TotalPages
	if totalPages < 1 {
		totalPages = 1
	}
	if totalPages > MaxPage {
		totalPages = MaxPage
	}

	return &domain.ResultPage{
		Movies:       MapMovies(resp.Results),
		Page:         resp.Page,
		TotalPages:   totalPages,
		TotalResults: resp.TotalResults,
	}
}

// MapMovies converts TMDB movie entries to domain movies
func MapMovies(results []Movie) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, mapMovie(r))
	}
	return movies
}

func mapMovie(r Movie) domain.Movie {
	movie := domain.Movie{
		ID:          r.ID,
		Title:       r.Title,
		ReleaseDate: strings.TrimSpace(r.ReleaseDate),
		Popularity:  r.Popularity,
		VoteAverage: r.VoteAverage,
	}

	if movie.Title == "" {
		movie.Title = r.OriginalTitle
	}
	if r.PosterPath != nil {
		movie.PosterPath = *r.PosterPath
	}

	// Clamp to documented ranges
	if movie.Popularity < 0 {
		movie.Popularity = 0
	}
	switch {
	case movie.VoteAverage < 0:
		movie.VoteAverage = 0
	case movie.VoteAverage > 10:
		movie.VoteAverage = 10
	}

	return movie
}
