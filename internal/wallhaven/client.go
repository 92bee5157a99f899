// Package wallhaven is a client for the wallhaven.cc v1 API
package wallhaven

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/walls/internal/domain"
)

const (
	// DefaultBaseURL is the public wallhaven API root
	DefaultBaseURL = "https://wallhaven.cc/api/v1"

	// DefaultTimeout bounds a single API request
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the largest API response body accepted (10MB)
	MaxResponseSize = 10 * 1024 * 1024

	userAgent = "walls/1.0"
)

// Client implements domain.CatalogRepository for wallhaven.
// Every call is exactly one request; there is no retry and no caching.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new wallhaven API client.
// An empty baseURL selects DefaultBaseURL, a zero timeout selects DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs a GET against the API and returns the raw body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	c.logger.Debug("wallhaven request", "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("wallhaven request failed", "error", err, "url", reqURL)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %w", domain.ErrTransport, err)
	}
	if int64(len(body)) > MaxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", domain.ErrDecode, MaxResponseSize)
	}

	if resp.StatusCode != http.StatusOK {
		message := resp.Status
		var apiErr errorResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		c.logger.Error("wallhaven request error", "status", resp.StatusCode, "url", reqURL, "message", message)
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, NewHTTPError(resp.StatusCode, reqURL, message))
	}

	return body, nil
}

// Search returns the first page of a randomly sorted search.
// An empty query applies no text filter.
func (c *Client) Search(ctx context.Context, res domain.Resolution, mode domain.ResolutionMode, query string) ([]domain.Candidate, error) {
	params := url.Values{}
	params.Set("sorting", "random")
	switch mode {
	case domain.ResolutionAtLeast:
		params.Set("atleast", res.String())
	default:
		params.Set("resolutions", res.String())
	}
	if query != "" {
		params.Set("q", query)
	}

	body, err := c.doRequest(ctx, "/search", params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse search response: %w", domain.ErrDecode, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: search response has no data", domain.ErrDecode)
	}
	for i, w := range *resp.Data {
		if w.ID == "" {
			return nil, fmt.Errorf("%w: search result %d has no id", domain.ErrDecode, i)
		}
	}

	seed := ""
	if resp.Meta.Seed != nil {
		seed = *resp.Meta.Seed
	}
	c.logger.Debug("wallhaven search",
		"results", len(*resp.Data),
		"total", int(resp.Meta.Total),
		"lastPage", int(resp.Meta.LastPage),
		"seed", seed,
	)

	return MapCandidates(*resp.Data), nil
}

// FetchTags returns the lowercase tag names of a wallpaper
func (c *Client) FetchTags(ctx context.Context, id string) (domain.TagSet, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: wallpaper id is required", domain.ErrDecode)
	}

	body, err := c.doRequest(ctx, "/w/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var resp DetailResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse wallpaper %s: %w", domain.ErrDecode, id, err)
	}
	if resp.Data == nil || resp.Data.Tags == nil {
		return nil, fmt.Errorf("%w: wallpaper %s has no tag list", domain.ErrDecode, id)
	}

	return MapTags(*resp.Data.Tags), nil
}
