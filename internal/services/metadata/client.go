// Package metadata looks up candidate catalog records for a free-text
// title, used only to pre-fill the add/edit form. Lookups are best-effort:
// catalog failures degrade to an empty result set.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/collectarr/collectarr/internal/config"
	"github.com/collectarr/collectarr/internal/models"
	"github.com/sirupsen/logrus"
)

const (
	minQueryLength = 2
	maxResults     = 8
	userAgent      = "collectarr/1.0"
)

// Result is one candidate catalog record
type Result struct {
	Title       string   `json:"title"`
	Creator     string   `json:"creator"`
	Genre       string   `json:"genre"`
	ReleaseDate string   `json:"releaseDate"`
	Rating      *float64 `json:"rating"`
	PosterURL   string   `json:"posterUrl,omitempty"`
	Source      string   `json:"source"`
}

// Client queries the external catalogs (TMDB for movies, MusicBrainz for
// music, RAWG for games) behind a bounded FIFO cache
type Client struct {
	httpClient *http.Client
	cache      *fifoCache
	logger     *logrus.Logger

	tmdbKey string
	rawgKey string

	// Overridable in tests
	tmdbBaseURL        string
	musicbrainzBaseURL string
	rawgBaseURL        string
}

// NewClient creates a catalog client
func NewClient(cfg *config.Config, logger *logrus.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		cache:      newFIFOCache(cfg.MetadataCacheSize),
		logger:     logger,

		tmdbKey: cfg.TMDBAPIKey,
		rawgKey: cfg.RAWGAPIKey,

		tmdbBaseURL:        tmdbBaseURL,
		musicbrainzBaseURL: musicbrainzBaseURL,
		rawgBaseURL:        rawgBaseURL,
	}
}

// Search returns candidate records for the query. Queries shorter than two
// characters and catalog failures both yield an empty set; the returned
// error is non-nil only when the context is cancelled.
func (c *Client) Search(ctx context.Context, query string, mediaType models.MediaType) ([]Result, error) {
	query = strings.TrimSpace(query)
	if len(query) < minQueryLength {
		return []Result{}, nil
	}

	cacheKey := fmt.Sprintf("%s-%s", mediaType, strings.ToLower(query))
	if results, ok := c.cache.Get(cacheKey); ok {
		return results, nil
	}

	var (
		results []Result
		err     error
	)
	switch mediaType {
	case models.MediaTypeMovie:
		results, err = c.searchMovies(ctx, query)
	case models.MediaTypeMusic:
		results, err = c.searchMusic(ctx, query)
	case models.MediaTypeGame:
		results, err = c.searchGames(ctx, query)
	default:
		return []Result{}, nil
	}

	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.WithError(err).WithFields(logrus.Fields{
			"query": query,
			"type":  mediaType,
		}).Warn("Catalog search failed, returning empty result set")
		return []Result{}, nil
	}

	c.cache.Put(cacheKey, results)
	return results, nil
}

// getJSON fetches a URL and decodes the JSON body into result, retrying
// transport errors and retryable statuses with a short exponential backoff
func (c *Client) getJSON(ctx context.Context, url string, result interface{}) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			return fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("catalog returned status %d", resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			return backoff.Permanent(fmt.Errorf("catalog returned status %d: %s", resp.StatusCode, string(body)))
		}

		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return backoff.Permanent(fmt.Errorf("failed to decode catalog response: %w", err))
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 2), ctx)
	return backoff.Retry(operation, policy)
}
