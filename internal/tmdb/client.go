package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/reel/internal/domain"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the TMDB v3 API root
	DefaultBaseURL = "https://api.themoviedb.org/3"

	// DefaultImageBaseURL serves posters at 500px width
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"

	defaultTimeout = 15 * time.Second
	userAgent      = "Reel/1.0"

	// discoverSort is the server-side order for discover mode
	discoverSort = "popularity.desc"
)

// Client implements domain.MovieSource for the TMDB v3 API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter // nil disables pacing
	logger     *slog.Logger
}

var _ domain.MovieSource = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithRateLimit paces outgoing requests to rps with the given burst.
// A non-positive rps disables pacing.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a new TMDB API client. The API key is passed through as-is.
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Discover returns one page of the catalog ordered by popularity
func (c *Client) Discover(ctx context.Context, page int) (*domain.ResultPage, error) {
	query := url.Values{}
	query.Set("sort_by", discoverSort)
	query.Set("api_key", c.apiKey)
	query.Set("page", strconv.Itoa(page))

	return c.fetchPage(ctx, "/discover/movie", query)
}

// Search returns one page of movies matching the free-text query
func (c *Client) Search(ctx context.Context, text string, page int) (*domain.ResultPage, error) {
	query := url.Values{}
	query.Set("query", text)
	query.Set("api_key", c.apiKey)
	query.Set("page", strconv.Itoa(page))

	return c.fetchPage(ctx, "/search/movie", query)
}

func (c *Client) fetchPage(ctx context.Context, path string, query url.Values) (*domain.ResultPage, error) {
	body, err := c.doRequest(ctx, path, query)
	if err != nil {
		return nil, err
	}

	var resp PageResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapPage(resp), nil
}

// doRequest performs a single GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &domain.TransportError{Err: err}
		}
	}

	reqURL := c.baseURL + path
	if query != nil {
		reqURL = reqURL + "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("tmdb request", "path", path, "page", query.Get("page"))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Keep the API key out of logs and the status line
		var uerr *url.Error
		if errors.As(err, &uerr) {
			uerr.URL = c.baseURL + path
		}
		c.logger.Error("tmdb request failed", "path", path, "error", err)
		return nil, &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("tmdb request error", "path", path, "status", resp.StatusCode)
		return nil, &domain.StatusError{
			StatusCode: resp.StatusCode,
			Message:    statusMessage(body),
		}
	}

	return body, nil
}

// statusMessage extracts TMDB's status_message from an error body, if any
func statusMessage(body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}
	return errResp.StatusMessage
}
