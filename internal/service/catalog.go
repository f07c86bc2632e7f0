package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmcdole/reel/internal/domain"
)

// CatalogService fetches result pages from a movie source
type CatalogService struct {
	source domain.MovieSource
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(source domain.MovieSource, logger *slog.Logger) *CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogService{
		source: source,
		logger: logger,
	}
}

// FetchPage fetches one page in the mode the request names
func (s *CatalogService) FetchPage(ctx context.Context, req domain.PageRequest) (*domain.ResultPage, error) {
	start := time.Now()

	var (
		page *domain.ResultPage
		err  error
	)
	switch req.Mode {
	case domain.ModeDiscover:
		page, err = s.source.Discover(ctx, req.Page)
	case domain.ModeSearch:
		page, err = s.source.Search(ctx, req.Query, req.Page)
	default:
		return nil, fmt.Errorf("unknown fetch mode: %d", req.Mode)
	}

	if err != nil {
		s.logger.Warn("fetch failed",
			"mode", req.Mode.String(),
			"query", req.Query,
			"page", req.Page,
			"error", err,
		)
		return nil, err
	}

	s.logger.Debug("fetch complete",
		"mode", req.Mode.String(),
		"query", req.Query,
		"page", req.Page,
		"results", len(page.Movies),
		"totalPages", page.TotalPages,
		"elapsed", time.Since(start),
	)

	return page, nil
}
