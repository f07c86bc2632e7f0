package service

import (
	"log/slog"

	"github.com/mmcdole/reel/internal/domain"
)

// opener abstracts handing a URL to the OS (consumer-defined interface)
type opener interface {
	Open(url string) error
}

// PosterService opens a movie's poster outside the terminal
type PosterService struct {
	opener    opener
	imageBase string
	logger    *slog.Logger
}

// NewPosterService creates a new poster service
func NewPosterService(opener opener, imageBase string, logger *slog.Logger) *PosterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PosterService{
		opener:    opener,
		imageBase: imageBase,
		logger:    logger,
	}
}

// URL returns what Open would open for the movie: the poster image, or the
// movie's TMDB page when it has no poster
func (s *PosterService) URL(movie domain.Movie) string {
	if url := movie.PosterURL(s.imageBase); url != "" {
		return url
	}
	return movie.PageURL()
}

// Open opens the movie's poster (or page) with the system viewer
func (s *PosterService) Open(movie domain.Movie) error {
	url := s.URL(movie)
	s.logger.Info("opening poster", "title", movie.Title, "movieID", movie.ID, "url", url)

	if err := s.opener.Open(url); err != nil {
		s.logger.Error("failed to open poster", "error", err, "movieID", movie.ID)
		return err
	}
	return nil
}
