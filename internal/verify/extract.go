package verify

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"

	"simsanalytics/internal/domain"
	"simsanalytics/internal/sources"
)

const maxMinedCandidates = 10

var (
	// Structured tag line emitted by the model:
	//   SOURCE: Name | COUNTRY: Country | URL: https://... | VERIFIED: ✓
	verifiedTagExpr = regexp.MustCompile(`(?i)SOURCE:\s*([^|]+)\s*\|\s*COUNTRY:\s*([^|]+)\s*\|\s*URL:\s*(https?://[^|\s]+)\s*\|\s*VERIFIED:\s*[✓✔]`)
	basicTagExpr    = regexp.MustCompile(`(?i)SOURCE:\s*([^|]+)\s*\|\s*COUNTRY:\s*([^|]+)\s*\|\s*URL:\s*(https?://[^\s]+)`)

	bareURLExpr     = regexp.MustCompile(`(?i)https?://[^\s\)\]\,\;\"'` + "`" + `]+`)
	wwwURLExpr      = regexp.MustCompile(`(?i)\bwww\.[^\s\)\]\,\;\"']+`)
	labelledURLExpr = regexp.MustCompile(`(?i)(?:Source|URL):\s*(https?://[^\s\)\]\,\;\"']+)`)
	markdownExpr    = regexp.MustCompile(`\[[^\]]*\]\((https?://[^\s\)]+)\)`)

	trailingPunct = regexp.MustCompile(`[.,;!?\)]+$`)
	yearPathExpr  = regexp.MustCompile(`/20\d{2}/`)

	textURLExpr = regexp.MustCompile(`https?://[^\s<>"']+`)
)

// skipPatterns mark URLs that cannot be article pages: placeholders,
// section indexes, feeds, subscription funnels.
var skipPatterns = []string{
	"example.com", "placeholder", "localhost", "google.com/search",
	"/category/", "/tag/", "/author/", "subscribe", "newsletter",
	"homepage", "index.html", "home.html", "/feed", "/rss",
}

var articlePathHints = []string{
	"/news/", "/article/", "/story/", "/post/",
	"bangladesh", "india", "/politics/", "/world/", "/reports/",
}

// Extractor turns raw model output (or raw article text) into source
// candidates. Strategies run in a fixed order and the first one that
// yields anything wins.
type Extractor struct {
	classifier *sources.Classifier
	logger     *slog.Logger
}

// NewExtractor wires the domain classifier used to name candidates.
func NewExtractor(classifier *sources.Classifier, logger *slog.Logger) *Extractor {
	return &Extractor{classifier: classifier, logger: logger}
}

// Extract produces the candidate list for one article. Structured tags
// are preferred; free-text URL mining runs only when no tags matched;
// the article text itself is scanned last and only yields candidates
// whose domain a curated table knows. No URL is ever synthesized.
func (e *Extractor) Extract(modelText, articleText, articleTitle string) []domain.Source {
	if cands := e.fromStructuredTags(modelText); len(cands) > 0 {
		e.debug("extracted structured sources", "count", len(cands), "title", clip(articleTitle, 40))
		return cands
	}

	if cands := e.fromFreeText(modelText); len(cands) > 0 {
		e.debug("mined sources from model text", "count", len(cands), "title", clip(articleTitle, 40))
		return cands
	}

	cands := e.fromArticleText(articleText)
	if len(cands) > 0 {
		e.debug("recovered sources from article text", "count", len(cands), "title", clip(articleTitle, 40))
	}
	return cands
}

// fromStructuredTags scans for the delimited source format. The
// verified variant wins when both match; model-asserted verification
// short-circuits later network validation.
func (e *Extractor) fromStructuredTags(text string) []domain.Source {
	matches := verifiedTagExpr.FindAllStringSubmatch(text, -1)
	state := domain.StateModelVerified
	if len(matches) == 0 {
		matches = basicTagExpr.FindAllStringSubmatch(text, -1)
		state = domain.StateUnverified
	}

	cands := make([]domain.Source, 0, len(matches))
	for _, m := range matches {
		cands = append(cands, domain.Source{
			Name:    strings.TrimSpace(m[1]),
			Country: strings.TrimSpace(m[2]),
			URL:     strings.TrimSpace(m[3]),
			State:   state,
		})
	}
	return cands
}

// fromFreeText mines URL-shaped substrings out of the model response.
// Unknown domains are kept and resolved to International.
func (e *Extractor) fromFreeText(text string) []domain.Source {
	if text == "" {
		return nil
	}

	var found []string
	found = append(found, bareURLExpr.FindAllString(text, -1)...)
	found = append(found, wwwURLExpr.FindAllString(text, -1)...)
	for _, m := range labelledURLExpr.FindAllStringSubmatch(text, -1) {
		found = append(found, m[1])
	}
	for _, m := range markdownExpr.FindAllStringSubmatch(text, -1) {
		found = append(found, m[1])
	}

	seen := map[string]struct{}{}
	var cands []domain.Source
	for _, raw := range found {
		u := normalizeMinedURL(raw)
		if u == "" || !looksLikeArticle(u) {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}

		info := e.classifier.Resolve(sources.Domain(u))
		cands = append(cands, domain.Source{
			URL:     u,
			Name:    info.Name,
			Country: info.Country,
			State:   domain.StateUnverified,
		})
		if len(cands) == maxMinedCandidates {
			break
		}
	}
	return cands
}

// fromArticleText is the last-resort strategy: embedded absolute URLs
// in the article body, kept only when their domain is in a curated
// table. Mentions of an outlet without a real URL are dropped, never
// turned into a guessed URL.
func (e *Extractor) fromArticleText(text string) []domain.Source {
	if text == "" {
		return nil
	}

	seen := map[string]struct{}{}
	var cands []domain.Source
	for _, raw := range textURLExpr.FindAllString(text, -1) {
		u := strings.TrimSpace(trailingPunct.ReplaceAllString(raw, ""))
		host := sources.Domain(u)
		if host == "" {
			continue
		}
		info, known := e.classifier.Classify(host)
		if !known {
			continue
		}
		if _, dup := seen[u]; dup {
			continue
		}
		seen[u] = struct{}{}
		cands = append(cands, domain.Source{
			URL:     u,
			Name:    info.Name,
			Country: info.Country,
			State:   domain.StateUnverified,
		})
	}
	return cands
}

// normalizeMinedURL strips labels, markdown leftovers, and trailing
// punctuation, and adds a scheme to bare www hosts. Empty result means
// the candidate is unusable.
func normalizeMinedURL(raw string) string {
	u := strings.TrimSpace(raw)
	if i := strings.LastIndex(strings.ToLower(u), "source:"); i >= 0 {
		u = strings.TrimSpace(u[i+len("source:"):])
	}
	if i := strings.LastIndex(strings.ToLower(u), "url:"); i >= 0 {
		u = strings.TrimSpace(u[i+len("url:"):])
	}
	u = trailingPunct.ReplaceAllString(u, "")

	if strings.HasPrefix(strings.ToLower(u), "www.") {
		u = "https://" + u
	}
	if len(u) <= 10 {
		return ""
	}

	for _, skip := range skipPatterns {
		if strings.Contains(strings.ToLower(u), skip) {
			return ""
		}
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return u
}

// looksLikeArticle keeps only URLs with an article-like path segment
// or enough path depth to plausibly be a story page.
func looksLikeArticle(u string) bool {
	lower := strings.ToLower(u)
	if yearPathExpr.MatchString(lower) {
		return true
	}
	for _, hint := range articlePathHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return strings.Count(u, "/") >= 4
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func (e *Extractor) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
