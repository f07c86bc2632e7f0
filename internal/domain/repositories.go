package domain

import (
	"context"
)

// MovieSource provides paginated access to a remote movie catalog
type MovieSource interface {
	// Discover returns one page of the popularity-sorted catalog
	Discover(ctx context.Context, page int) (*ResultPage, error)

	// Search returns one page of movies matching a free-text query
	Search(ctx context.Context, query string, page int) (*ResultPage, error)
}
