package browse

import (
	"slices"

	"github.com/mmcdole/reel/internal/domain"
)

// SortKey selects how the loaded result list is ordered
type SortKey string

const (
	SortPopularityDesc  SortKey = "popularity.desc"
	SortReleaseDateAsc  SortKey = "release_date.asc"
	SortReleaseDateDesc SortKey = "release_date.desc"
	SortRatingAsc       SortKey = "vote_average.asc"
	SortRatingDesc      SortKey = "vote_average.desc"

	// DefaultSort is the order used until the user picks one
	DefaultSort = SortPopularityDesc
)

// SortKeys returns every supported key in menu order
func SortKeys() []SortKey {
	return []SortKey{
		SortPopularityDesc,
		SortReleaseDateAsc,
		SortReleaseDateDesc,
		SortRatingAsc,
		SortRatingDesc,
	}
}

// ParseSortKey maps a wire name to a key. Unknown names fall back to DefaultSort.
func ParseSortKey(name string) SortKey {
	key := SortKey(name)
	if key.Valid() {
		return key
	}
	return DefaultSort
}

// Valid reports whether k is one of the supported keys
func (k SortKey) Valid() bool {
	return slices.Contains(SortKeys(), k)
}

// String returns the display name for the sort key
func (k SortKey) String() string {
	switch k {
	case SortReleaseDateAsc:
		return "Release Date (Asc)"
	case SortReleaseDateDesc:
		return "Release Date (Desc)"
	case SortRatingAsc:
		return "Rating (Asc)"
	case SortRatingDesc:
		return "Rating (Desc)"
	default:
		return "Popularity"
	}
}

// SortMovies returns a sorted copy of movies; the input is left untouched.
// The sort is stable, and movies without a parsable release date always
// come after dated ones regardless of direction.
func SortMovies(movies []domain.Movie, key SortKey) []domain.Movie {
	sorted := slices.Clone(movies)
	slices.SortStableFunc(sorted, comparator(key))
	return sorted
}

func comparator(key SortKey) func(a, b domain.Movie) int {
	switch key {
	case SortReleaseDateAsc:
		return func(a, b domain.Movie) int { return compareRelease(a, b, false) }
	case SortReleaseDateDesc:
		return func(a, b domain.Movie) int { return compareRelease(a, b, true) }
	case SortRatingAsc:
		return func(a, b domain.Movie) int { return compareFloat(a.VoteAverage, b.VoteAverage) }
	case SortRatingDesc:
		return func(a, b domain.Movie) int { return compareFloat(b.VoteAverage, a.VoteAverage) }
	default:
		return func(a, b domain.Movie) int { return compareFloat(b.Popularity, a.Popularity) }
	}
}

func compareRelease(a, b domain.Movie, desc bool) int {
	at, aok := a.Released()
	bt, bok := b.Released()

	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return 1 // undated last
	case !bok:
		return -1
	}

	c := at.Compare(bt)
	if desc {
		return -c
	}
	return c
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
