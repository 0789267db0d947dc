package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"simsanalytics/internal/config"
	"simsanalytics/internal/domain"
	"simsanalytics/internal/ports"
)

// ExaClient implements ports.SearchProvider against an Exa-style
// search-and-contents API.
type ExaClient struct {
	endpoint   string
	apiKey     string
	query      string
	numResults int
	domains    []string
	client     *http.Client
	logger     *slog.Logger
}

var _ ports.SearchProvider = (*ExaClient)(nil)

// NewExaClient builds a client from configuration. The domain allowlist
// normally comes from the classifier tables.
func NewExaClient(cfg config.SearchConfig, domains []string, logger *slog.Logger) *ExaClient {
	return &ExaClient{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		query:      cfg.Query,
		numResults: cfg.NumResults,
		domains:    domains,
		client:     &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
}

type searchRequest struct {
	Query          string   `json:"query"`
	Category       string   `json:"category"`
	Text           bool     `json:"text"`
	NumResults     int      `json:"numResults"`
	Livecrawl      string   `json:"livecrawl"`
	IncludeDomains []string `json:"includeDomains,omitempty"`
	IncludeText    []string `json:"includeText,omitempty"`
}

type searchResponse struct {
	Results []struct {
		URL           string  `json:"url"`
		Title         string  `json:"title"`
		Text          string  `json:"text"`
		Author        string  `json:"author"`
		Image         string  `json:"image"`
		Favicon       string  `json:"favicon"`
		Score         float64 `json:"score"`
		PublishedDate string  `json:"publishedDate"`
	} `json:"results"`
}

// Search requests live-crawled news results restricted to the curated
// domain allowlist.
func (c *ExaClient) Search(ctx context.Context) ([]domain.SearchResult, error) {
	if c.apiKey == "" || c.endpoint == "" {
		return nil, fmt.Errorf("search client misconfigured")
	}

	body, err := json.Marshal(searchRequest{
		Query:          c.query,
		Category:       "news",
		Text:           true,
		NumResults:     c.numResults,
		Livecrawl:      "always",
		IncludeDomains: c.domains,
		IncludeText:    []string{"Bangladesh"},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("search error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]domain.SearchResult, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		results = append(results, domain.SearchResult{
			URL:         r.URL,
			Title:       r.Title,
			Text:        r.Text,
			Author:      r.Author,
			Image:       r.Image,
			Favicon:     r.Favicon,
			Score:       r.Score,
			PublishedAt: parsePublished(r.PublishedDate),
		})
	}

	c.debug("search returned results", "count", len(results))
	return results, nil
}

func parsePublished(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	raw = strings.Replace(raw, "Z", "+00:00", 1)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05-07:00", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (c *ExaClient) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
