package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"simsanalytics/internal/ports"
)

// Client talks to an external NLP service for named-entity tagging.
// The service is optional; when it is down the pipeline falls back to
// regex entity extraction.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.EntityTagger = (*Client)(nil)

// NewClient creates a reusable HTTP client.
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

// TagEntities sends the text for entity recognition.
func (c *Client) TagEntities(ctx context.Context, text string) ([]ports.Entity, error) {
	payload := map[string]any{
		"text": text,
	}

	var resp struct {
		Entities []struct {
			Text  string `json:"text"`
			Label string `json:"label"`
		} `json:"entities"`
	}

	if err := c.post(ctx, "/entities", payload, &resp); err != nil {
		return nil, err
	}

	entities := make([]ports.Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		entities = append(entities, ports.Entity{Text: e.Text, Label: e.Label})
	}
	return entities, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
