package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"simsanalytics/internal/config"
	"simsanalytics/internal/ports"
)

const maxPromptTextLen = 4000

// GeminiClient implements ports.Analyst against the Gemini REST API
// with Google Search grounding enabled, so the model can look up
// corroborating coverage while it analyzes.
type GeminiClient struct {
	endpoint   string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.Analyst = (*GeminiClient)(nil)

// NewGeminiClient builds a client from configuration.
func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		endpoint: cfg.Endpoint,
		model:    cfg.Model,
		apiKey:   cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
	Tools    []geminiTool    `json:"tools,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze submits the article and returns the model's raw free-text
// response. The caller owns all parsing.
func (c *GeminiClient) Analyze(ctx context.Context, title, fullText string) (string, error) {
	if c == nil {
		return "", fmt.Errorf("gemini client is nil")
	}
	if c.apiKey == "" || c.endpoint == "" || c.model == "" {
		return "", fmt.Errorf("gemini client misconfigured")
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: buildPrompt(title, fullText)}}},
		},
		Tools: []geminiTool{{}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal gemini payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", strings.TrimSuffix(c.endpoint, "/"), c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("gemini error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	var text strings.Builder
	for _, cand := range parsed.Candidates {
		for _, part := range cand.Content.Parts {
			text.WriteString(part.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}
	return text.String(), nil
}

// buildPrompt asks for the labelled sections and the structured source
// format the response parser expects.
func buildPrompt(title, fullText string) string {
	if len(fullText) > maxPromptTextLen {
		fullText = fullText[:maxPromptTextLen]
	}

	return fmt.Sprintf(`Analyze this Bangladesh-India related news article.

**Title:** %s
**Content:** %s

Provide the analysis in the following format:

**SUMMARY:**
A complete 2-3 sentence summary of the main story and its significance.

**SENTIMENT:** [positive/negative/neutral/cautious]

**CATEGORY:** [politics/sports/technology/crime/health/education/business/entertainment/environment/others]

**GEOPOLITICAL IMPLICATIONS:**
Impact on Bangladesh-India relations and regional dynamics.

**MEDIA BIAS ASSESSMENT:**
Reporting perspective, potential bias, and framing of the story.

**VERIFIED SOURCES:**
Use web search to find real news articles covering this same story and
visit each URL to confirm it loads. Format each verified source exactly as:
SOURCE: [Source Name] | COUNTRY: [Bangladesh/India/International] | URL: https://working-url.com/article-path | VERIFIED: ✓

Do NOT invent URLs. If no working sources are found, state "NO VERIFIED SOURCES FOUND".

**KEY ENTITIES:**
Important people, places, and organizations mentioned.`, title, fullText)
}
