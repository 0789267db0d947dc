package analysis

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"simsanalytics/internal/domain"
	"simsanalytics/internal/verify"
)

const (
	defaultSentiment = "neutral"
	defaultCategory  = "others"

	minSummaryLen       = 50
	minFallbackParaLen  = 100
	maxFallbackParaLen  = 500
	maxEntities         = 15
	snippetLen          = 200
	geoSectionMinLen    = 20
	summaryDefaultLabel = "Analysis of news article about"
)

var validSentiments = map[string]bool{
	"positive": true, "negative": true, "neutral": true, "cautious": true,
}

var validCategories = map[string]bool{
	"politics": true, "sports": true, "technology": true, "crime": true,
	"health": true, "education": true, "business": true,
	"entertainment": true, "environment": true, "others": true,
}

// labelMatcher is one entry of a priority-ordered matcher list; the
// first pattern that produces an acceptable value wins.
type labelMatcher struct {
	pattern *regexp.Regexp
}

var sentimentMatchers = []labelMatcher{
	{regexp.MustCompile(`(?i)\*\*?\s*SENTIMENT\s*:?\s*\*\*?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)SENTIMENT\s*:?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)tone\s*:?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)overall sentiment\s*:?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)emotional tone\s*:?\s*([a-zA-Z]+)`)},
}

var categoryMatchers = []labelMatcher{
	{regexp.MustCompile(`(?i)\*\*?\s*CATEGORY\s*:?\s*\*\*?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)CATEGORY\s*:?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)classification\s*:?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)topic\s*:?\s*([a-zA-Z]+)`)},
	{regexp.MustCompile(`(?i)subject\s*:?\s*([a-zA-Z]+)`)},
}

// sectionMatchers capture a labelled block up to the next heading or
// blank line. Evaluated in order, first qualifying section wins.
var summaryMatchers = []labelMatcher{
	{regexp.MustCompile(`(?is)summary[:\s]*\*?\*?["']?(.*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)analysis[:\s]*\*?\*?["']?(.*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)overview[:\s]*\*?\*?["']?(.*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)key points[:\s]*\*?\*?["']?(.*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
}

var implicationsMatchers = []labelMatcher{
	{regexp.MustCompile(`(?is)geopolitical[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)implications?[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)regional impact[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)bangladesh-india[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
}

var biasMatchers = []labelMatcher{
	{regexp.MustCompile(`(?is)media bias[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)bias[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)perspective[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
	{regexp.MustCompile(`(?is)framing[^:]*[:\s]*([^#\n]*?)(?:\n\n|\n\*\*|\n[A-Z][a-z]+:|$)`)},
}

var (
	boldExpr    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicExpr  = regexp.MustCompile(`\*([^*]+)\*`)
	headingExpr = regexp.MustCompile(`#{1,6}\s*`)
	newlineExpr = regexp.MustCompile(`\n+`)

	namePairExpr   = regexp.MustCompile(`\b[A-Z][a-zA-Z]{2,}\s+[A-Z][a-zA-Z]{2,}\b`)
	properNounExpr = regexp.MustCompile(`\b[A-Z][a-zA-Z]{3,}\b`)
	gazetteerExpr  = regexp.MustCompile(`\b(?:Bangladesh|India|Dhaka|Delhi|New Delhi|Kolkata|Mumbai)\b`)
)

var entityStopWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true,
	"with": true, "this": true, "that": true, "from": true,
}

// Parsed is the parser's raw output before validation and verdicting.
type Parsed struct {
	Sentiment      string
	Category       string
	Summary        string
	Entities       []string
	Sources        []domain.Source
	Implications   string
	BiasAssessment string
}

// Parser extracts structured analysis fields from free-form model text.
// Every field has a fallback; malformed input never produces an error,
// only defaults. A nil result signals total parse failure and occurs
// only when a matcher panics on unexpected input.
type Parser struct {
	extractor *verify.Extractor
	logger    *slog.Logger
}

// NewParser wires the source extractor the sources field delegates to.
func NewParser(extractor *verify.Extractor, logger *slog.Logger) *Parser {
	return &Parser{extractor: extractor, logger: logger}
}

// Parse runs the independent field extractions over the model response.
func (p *Parser) Parse(modelText, title, articleText string) (parsed *Parsed) {
	defer func() {
		if r := recover(); r != nil {
			if p.logger != nil {
				p.logger.Error("response parsing failed", "title", clipTitle(title), "panic", fmt.Sprint(r))
			}
			parsed = nil
		}
	}()

	parsed = &Parsed{
		Sentiment:      p.extractLabel(modelText, sentimentMatchers, validSentiments, defaultSentiment),
		Category:       p.extractLabel(modelText, categoryMatchers, validCategories, defaultCategory),
		Summary:        p.extractSummary(modelText, title),
		Entities:       extractEntities(modelText),
		Implications:   extractSection(modelText, implicationsMatchers),
		BiasAssessment: extractSection(modelText, biasMatchers),
	}
	if p.extractor != nil {
		parsed.Sources = p.extractor.Extract(modelText, articleText, title)
	}
	return parsed
}

func (p *Parser) extractLabel(text string, matchers []labelMatcher, valid map[string]bool, fallback string) string {
	for _, m := range matchers {
		match := m.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		value := strings.ToLower(strings.TrimSpace(match[1]))
		if valid[value] {
			return value
		}
	}
	return fallback
}

func (p *Parser) extractSummary(text, title string) string {
	for _, m := range summaryMatchers {
		match := m.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		summary := cleanMarkdown(match[1])
		if len(summary) > minSummaryLen {
			return summary
		}
	}

	// No labelled section qualified; take the first substantial
	// paragraph that is not a list item or heading.
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if len(para) <= minFallbackParaLen || strings.HasPrefix(para, "*") ||
			strings.HasPrefix(para, "#") || strings.HasPrefix(para, "-") {
			continue
		}
		para = cleanMarkdown(para)
		if len(para) > maxFallbackParaLen {
			return para[:maxFallbackParaLen] + "..."
		}
		return para
	}

	return fmt.Sprintf("%s %s. %s...", summaryDefaultLabel, title, clipTo(text, snippetLen))
}

func extractSection(text string, matchers []labelMatcher) string {
	for _, m := range matchers {
		match := m.pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		section := cleanMarkdown(match[1])
		if len(section) > geoSectionMinLen {
			return section
		}
	}
	return ""
}

// extractEntities combines proper-noun and capitalized-pair matches
// with a fixed gazetteer of key place names, deduplicated in first-seen
// order and capped.
func extractEntities(text string) []string {
	var raw []string
	raw = append(raw, namePairExpr.FindAllString(text, -1)...)
	raw = append(raw, properNounExpr.FindAllString(text, -1)...)
	raw = append(raw, gazetteerExpr.FindAllString(text, -1)...)

	seen := map[string]bool{}
	var out []string
	for _, entity := range raw {
		entity = strings.TrimSpace(entity)
		if len(entity) <= 2 || seen[entity] || entityStopWords[strings.ToLower(entity)] {
			continue
		}
		seen[entity] = true
		out = append(out, entity)
		if len(out) == maxEntities {
			break
		}
	}
	return out
}

func cleanMarkdown(s string) string {
	s = boldExpr.ReplaceAllString(s, "$1")
	s = italicExpr.ReplaceAllString(s, "$1")
	s = headingExpr.ReplaceAllString(s, "")
	s = newlineExpr.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func clipTo(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func clipTitle(s string) string {
	return clipTo(s, 50)
}
