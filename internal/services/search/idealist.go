package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// StatusError is a caller-facing failure from the search upstream: the
// request itself was rejected (bad country, nothing indexed, validation).
// The pipeline re-raises these unchanged instead of degrading to an empty
// result.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search upstream returned %d: %s", e.Status, e.Message)
}

// IdealistClient queries an Idealist-style volunteer-opportunity search API
// and returns opportunity page URLs, preserving the upstream result order.
type IdealistClient struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
}

func NewIdealistClient(baseURL string, pageSize int) *IdealistClient {
	if pageSize < 1 {
		pageSize = 25
	}
	return &IdealistClient{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type searchPage struct {
	Links []string `json:"links"`
	Total int      `json:"total"`
}

// Search fetches up to limit links for a country. Pages are requested
// concurrently and reassembled in page order so the returned slice keeps the
// upstream ordering. A limit <= 0 uses the default.
func (c *IdealistClient) Search(ctx context.Context, country string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	pageCount := (limit + c.pageSize - 1) / c.pageSize
	pages := make([][]string, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < pageCount; i++ {
		page := i
		g.Go(func() error {
			result, err := c.fetchPage(gctx, country, page+1)
			if err != nil {
				return err
			}
			pages[page] = result.Links
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var links []string
	for _, page := range pages {
		links = append(links, page...)
	}
	if len(links) > limit {
		links = links[:limit]
	}

	log.Debug().Str("country", country).Int("links", len(links)).Msg("Volunteer link search completed")
	return links, nil
}

func (c *IdealistClient) fetchPage(ctx context.Context, country string, page int) (*searchPage, error) {
	query := url.Values{}
	query.Set("country", country)
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(c.pageSize))

	endpoint := fmt.Sprintf("%s/api/v1/volunteer/search?%s", c.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading search response: %w", err)
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusNotFound,
		resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, &StatusError{Status: resp.StatusCode, Message: upstreamMessage(body)}
	default:
		return nil, fmt.Errorf("search upstream returned status %d", resp.StatusCode)
	}

	var result searchPage
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	return &result, nil
}

func upstreamMessage(body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return "request rejected"
}
