package verify

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	validatorUserAgent = "Mozilla/5.0 (compatible; SIMS-Analytics-Bot/1.0)"
	sniffChunkSize     = 1024
)

// suspiciousPatterns reject a URL before any network round trip.
var suspiciousPatterns = []string{
	"example.com", "placeholder", "test.com", "demo.",
	"localhost", "127.0.0.1", "0.0.0.0", "fake-news",
}

// redirectProxyPrefixes are search-grounding redirect hosts whose URLs
// must be resolved before the destination can be classified.
var redirectProxyPrefixes = []string{
	"vertexaisearch.cloud.google.com/grounding-api-redirect/",
	"grounding-api.googleapis.com/redirect/",
	"search.googleapis.com/grounding/",
}

// articleIndicators are keywords expected in the first chunk of a real
// article page.
var articleIndicators = []string{
	"article", "news", "story", "headline", "byline",
	"published", "author", "reporter", "correspondent",
}

// Validator decides whether a candidate URL denotes a reachable,
// article-shaped resource. Network-bound; every check is a single
// attempt with a bounded timeout and a transport failure is a reject,
// never a retry.
type Validator struct {
	client         *http.Client
	resolveTimeout time.Duration
	logger         *slog.Logger
}

// NewValidator wires an HTTP client; a nil client gets a 5s timeout
// default matching the per-candidate budget.
func NewValidator(client *http.Client, logger *slog.Logger) *Validator {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Validator{
		client:         client,
		resolveTimeout: 10 * time.Second,
		logger:         logger,
	}
}

// Validate reports whether the URL is worth keeping as a source.
func (v *Validator) Validate(ctx context.Context, rawURL string) bool {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		v.debug("rejected: missing scheme", "url", rawURL)
		return false
	}

	lower := strings.ToLower(rawURL)
	for _, p := range suspiciousPatterns {
		if strings.Contains(lower, p) {
			v.debug("rejected: suspicious pattern", "url", rawURL, "pattern", p)
			return false
		}
	}

	if isRedirectProxy(rawURL) {
		return v.validateRedirectProxy(ctx, rawURL)
	}
	return v.validateDirect(ctx, rawURL)
}

// ResolveRedirect follows a redirect-proxy URL to its destination and
// returns the final URL. Non-proxy URLs come back unchanged. An empty
// result means resolution failed.
func (v *Validator) ResolveRedirect(ctx context.Context, rawURL string) string {
	if !isRedirectProxy(rawURL) {
		return rawURL
	}

	ctx, cancel := context.WithTimeout(ctx, v.resolveTimeout)
	defer cancel()

	resp, err := v.head(ctx, rawURL)
	if err != nil {
		v.debug("redirect resolution failed", "url", clip(rawURL, 100), "error", err)
		return ""
	}
	defer resp.Body.Close()

	final := resp.Request.URL.String()
	if resp.StatusCode != http.StatusOK || final == rawURL {
		return ""
	}
	return final
}

// validateRedirectProxy accepts any proxy URL that resolves to a
// different, syntactically valid destination. The destination domain is
// not required to be known; unknown outlets classify as International
// later.
func (v *Validator) validateRedirectProxy(ctx context.Context, rawURL string) bool {
	final := v.ResolveRedirect(ctx, rawURL)
	if final == "" {
		v.debug("rejected: unresolvable redirect proxy", "url", clip(rawURL, 100))
		return false
	}
	parsed, err := url.Parse(final)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		v.debug("rejected: redirect proxy resolved to invalid url", "resolved", final)
		return false
	}
	v.debug("redirect proxy resolved", "resolved", final)
	return true
}

// validateDirect issues a HEAD with redirect following; when HEAD
// fails at the transport level it falls back to a GET reading only the
// first chunk and sniffing for article indicators.
func (v *Validator) validateDirect(ctx context.Context, rawURL string) bool {
	resp, err := v.head(ctx, rawURL)
	if err != nil {
		return v.sniffViaGet(ctx, rawURL)
	}
	resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return true
	case resp.StatusCode >= 300 && resp.StatusCode < 309:
		return true
	default:
		v.debug("rejected: bad status", "url", rawURL, "status", resp.StatusCode)
		return false
	}
}

func (v *Validator) sniffViaGet(ctx context.Context, rawURL string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", validatorUserAgent)

	resp, err := v.client.Do(req)
	if err != nil {
		v.debug("rejected: GET failed", "url", rawURL, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.debug("rejected: GET status", "url", rawURL, "status", resp.StatusCode)
		return false
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") {
		// Reachable non-HTML content gets the benefit of the doubt.
		return true
	}

	chunk, err := io.ReadAll(io.LimitReader(resp.Body, sniffChunkSize))
	if err != nil {
		return true
	}
	return chunkLooksLikeArticle(chunk)
}

// chunkLooksLikeArticle extracts visible text from the first HTML chunk
// and checks it for article-indicator keywords. Raw markup is consulted
// too since the chunk usually truncates mid-document.
func chunkLooksLikeArticle(chunk []byte) bool {
	haystack := strings.ToLower(string(chunk))
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(chunk))); err == nil {
		haystack += " " + strings.ToLower(doc.Text())
	}
	for _, indicator := range articleIndicators {
		if strings.Contains(haystack, indicator) {
			return true
		}
	}
	return false
}

func (v *Validator) head(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", validatorUserAgent)
	return v.client.Do(req)
}

func isRedirectProxy(rawURL string) bool {
	for _, prefix := range redirectProxyPrefixes {
		if strings.Contains(rawURL, prefix) {
			return true
		}
	}
	return false
}

func (v *Validator) debug(msg string, args ...any) {
	if v.logger != nil {
		v.logger.Debug(msg, args...)
	}
}
