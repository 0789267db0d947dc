package usecase

import (
	"crypto/md5"
	"encoding/hex"
	"regexp"
	"strings"

	"simsanalytics/internal/domain"
)

const minArticleTextLen = 300

var urlYearExpr = regexp.MustCompile(`/20[0-9]{2}/`)

var articleURLHints = []string{
	"/article/", "/news/", "/story/", "/politics/", "/diplomacy/",
	"/world/", "/india/", "/bangladesh/",
}

var badTitlePhrases = []string{
	"latest news", "breaking news", "top headlines", "home",
	"update", "today", "live", "videos", "photos",
}

var frontPageSuffixes = []string{"/", "/news", "/home", "/index.html"}

// IsArticleURL rejects homepages and section indexes; deep paths and
// dated or sectioned paths pass.
func IsArticleURL(url string) bool {
	if url == "" {
		return false
	}
	lower := strings.ToLower(url)
	for _, suffix := range frontPageSuffixes {
		if suffix != "/" && strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	if strings.HasSuffix(lower, "/") && strings.Count(strings.TrimSuffix(lower, "/"), "/") <= 2 {
		return false
	}
	if urlYearExpr.MatchString(lower) {
		return true
	}
	for _, hint := range articleURLHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return strings.Count(lower, "/") > 3
}

// IsArticleTitle rejects aggregator and landing-page titles.
func IsArticleTitle(title string) bool {
	if title == "" {
		return false
	}
	lower := strings.ToLower(title)
	for _, phrase := range badTitlePhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	return true
}

// IsArticleText requires substantial prose that mentions Bangladesh and
// is not dominated by list items (link farms and index pages come back
// as bullet walls).
func IsArticleText(text string) bool {
	if len(text) < minArticleTextLen {
		return false
	}
	if !strings.Contains(strings.ToLower(text), "bangladesh") {
		return false
	}
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return true
	}
	listLines := 0
	for _, l := range lines {
		trimmed := strings.TrimSpace(l)
		if strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*") {
			listLines++
		}
	}
	return float64(listLines)/float64(len(lines)) <= 0.5
}

// FilterResults applies the article gates and drops duplicate titles
// (case-insensitive hash) so one wire story syndicated across outlets
// is enriched once.
func FilterResults(results []domain.SearchResult) []domain.SearchResult {
	seenTitles := map[string]struct{}{}
	out := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if !IsArticleURL(r.URL) || !IsArticleTitle(r.Title) || !IsArticleText(r.Text) {
			continue
		}
		hash := titleHash(r.Title)
		if _, dup := seenTitles[hash]; dup {
			continue
		}
		seenTitles[hash] = struct{}{}
		out = append(out, r)
	}
	return out
}

func titleHash(title string) string {
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(title))))
	return hex.EncodeToString(sum[:])
}
