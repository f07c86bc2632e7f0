package browse_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/reel/internal/browse"
	"github.com/mmcdole/reel/internal/domain"
)

func sampleMovies() []domain.Movie {
	return []domain.Movie{
		{ID: 1, Title: "Heat", ReleaseDate: "1995-12-15", Popularity: 40.2, VoteAverage: 7.9},
		{ID: 2, Title: "Undated", ReleaseDate: "", Popularity: 3.1, VoteAverage: 5.0},
		{ID: 3, Title: "Alien", ReleaseDate: "1979-05-25", Popularity: 55.0, VoteAverage: 8.1},
		{ID: 4, Title: "Garbled", ReleaseDate: "soon", Popularity: 12.5, VoteAverage: 6.4},
		{ID: 5, Title: "Dune", ReleaseDate: "2021-09-15", Popularity: 120.7, VoteAverage: 7.8},
	}
}

func ids(movies []domain.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestSortMovies(t *testing.T) {
	tests := []struct {
		key  browse.SortKey
		want []int
	}{
		{browse.SortPopularityDesc, []int{5, 3, 1, 4, 2}},
		{browse.SortReleaseDateAsc, []int{3, 1, 5, 2, 4}},
		{browse.SortReleaseDateDesc, []int{5, 1, 3, 2, 4}},
		{browse.SortRatingAsc, []int{2, 4, 5, 1, 3}},
		{browse.SortRatingDesc, []int{3, 1, 5, 4, 2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := browse.SortMovies(sampleMovies(), tt.key)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestSortMovies_DoesNotMutateInput(t *testing.T) {
	movies := sampleMovies()
	browse.SortMovies(movies, browse.SortRatingAsc)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(movies))
}

func TestSortMovies_IsPermutation(t *testing.T) {
	for _, key := range browse.SortKeys() {
		got := ids(browse.SortMovies(sampleMovies(), key))
		slices.Sort(got)
		assert.Equal(t, []int{1, 2, 3, 4, 5}, got, "key %s", key)
	}
}

func TestSortMovies_RatingDirectionsAreReverses(t *testing.T) {
	desc := browse.SortMovies(sampleMovies(), browse.SortRatingDesc)
	asc := browse.SortMovies(desc, browse.SortRatingAsc)

	reversed := slices.Clone(desc)
	slices.Reverse(reversed)
	assert.Equal(t, ids(reversed), ids(asc))
}

func TestSortMovies_UndatedKeepOrder(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, ReleaseDate: ""},
		{ID: 2, ReleaseDate: "2001-01-01"},
		{ID: 3, ReleaseDate: "13/13/2013"},
		{ID: 4, ReleaseDate: ""},
	}

	assert.Equal(t, []int{2, 1, 3, 4}, ids(browse.SortMovies(movies, browse.SortReleaseDateAsc)))
	assert.Equal(t, []int{2, 1, 3, 4}, ids(browse.SortMovies(movies, browse.SortReleaseDateDesc)))
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, browse.SortRatingDesc, browse.ParseSortKey("vote_average.desc"))
	assert.Equal(t, browse.SortReleaseDateAsc, browse.ParseSortKey("release_date.asc"))
	assert.Equal(t, browse.DefaultSort, browse.ParseSortKey(""))
	assert.Equal(t, browse.DefaultSort, browse.ParseSortKey("title.asc"))
}
