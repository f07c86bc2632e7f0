// Package filter narrows an already-loaded movie list by title.
package filter

import (
	"strings"

	lfuzzy "github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/reel/internal/domain"
)

// Match is a movie that passed the filter
type Match struct {
	Index          int   // Position in the filtered slice
	MatchedIndexes []int // Byte offsets in the lowercased title, for highlighting
	Score          int   // Higher is better; 0 for accent-folded matches
}

// titleIndex implements sahilm/fuzzy.Source over lowercased titles
type titleIndex []string

// String returns the lowercase title at index i (implements fuzzy.Source)
func (t titleIndex) String(i int) string { return t[i] }

// Len returns the number of titles (implements fuzzy.Source)
func (t titleIndex) Len() int { return len(t) }

// Movies returns the movies whose titles fuzzy-match query, best first.
// An empty query returns nil, meaning "no filter".
//
// Titles that only match once accents are folded away ("amelie" against
// "Amélie") are appended after the ranked matches, in list order.
func Movies(query string, movies []domain.Movie) []Match {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	index := make(titleIndex, len(movies))
	for i, m := range movies {
		index[i] = strings.ToLower(m.Title)
	}

	ranked := fuzzy.FindFrom(query, index)

	results := make([]Match, 0, len(ranked))
	seen := make(map[int]bool, len(ranked))
	for _, r := range ranked {
		seen[r.Index] = true
		results = append(results, Match{
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		})
	}

	for i, m := range movies {
		if seen[i] {
			continue
		}
		if lfuzzy.MatchNormalizedFold(query, m.Title) {
			results = append(results, Match{Index: i})
		}
	}

	return results
}

// Indexes flattens matches to their positions in the source slice
func Indexes(matches []Match) []int {
	out := make([]int, len(matches))
	for i, m := range matches {
		out[i] = m.Index
	}
	return out
}
