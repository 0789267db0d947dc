package verify

import (
	"log/slog"
	"net/url"
	"strings"

	"simsanalytics/internal/domain"
	"simsanalytics/internal/sources"
)

// FilterSources drops self-referencing candidates (same outlet as the
// article under verification, www.- and subdomain-agnostic) and then
// deduplicates by normalized URL so one source cannot inflate both
// buckets in the verdict.
func FilterSources(cands []domain.Source, articleDomain string, logger *slog.Logger) []domain.Source {
	articleDomain = strings.TrimPrefix(strings.ToLower(articleDomain), "www.")

	seen := map[string]struct{}{}
	out := make([]domain.Source, 0, len(cands))
	for _, c := range cands {
		host := sources.Domain(c.URL)
		if host == "" {
			continue
		}
		if articleDomain != "" && sources.SameDomain(host, articleDomain) {
			if logger != nil {
				logger.Info("dropping self-referencing source", "domain", host)
			}
			continue
		}

		key := normalizeURL(c.URL)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

// normalizeURL produces the dedup key: scheme-insensitive, lower-cased
// host without www., trailing slash trimmed.
func normalizeURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	path := strings.TrimSuffix(parsed.EscapedPath(), "/")
	key := host + path
	if parsed.RawQuery != "" {
		key += "?" + parsed.RawQuery
	}
	return key
}
