package sources

import (
	"net/url"
	"strings"

	"simsanalytics/internal/domain"
)

// Info describes a classified news domain.
type Info struct {
	Name    string
	Country string
	Bucket  domain.CountryBucket
}

// Classifier maps a hostname to a publisher using the curated tables.
// Pure string matching, no network access. Safe for concurrent use.
type Classifier struct {
	tables Tables
}

// NewClassifier builds a classifier over an immutable table set.
func NewClassifier(tables Tables) *Classifier {
	return &Classifier{tables: tables}
}

// Tables exposes the injected lookup data (for allowlist construction).
func (c *Classifier) Tables() Tables {
	return c.tables
}

// Classify looks the domain up in the Bangladesh, India, and
// International tables in that order. A key matches when the domain
// equals it or ends with "." plus it, so subdomains like
// en.prothomalo.com resolve the same as prothomalo.com. The second
// return value is false when no table knows the domain.
func (c *Classifier) Classify(host string) (Info, bool) {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return Info{}, false
	}

	if e, ok := match(c.tables.Bangladesh, host); ok {
		return Info{Name: e.Name, Country: "Bangladesh", Bucket: domain.BucketBangladesh}, true
	}
	if e, ok := match(c.tables.India, host); ok {
		return Info{Name: e.Name, Country: "India", Bucket: domain.BucketInternational}, true
	}
	if e, ok := match(c.tables.International, host); ok {
		return Info{Name: e.Name, Country: "International", Bucket: domain.BucketInternational}, true
	}

	return Info{}, false
}

// Resolve is Classify with the unknown-domain policy applied: a domain
// no table knows becomes International with a title-cased display name.
// The verdict rule only needs the BD/non-BD split, so unknowns are
// never rejected here.
func (c *Classifier) Resolve(host string) Info {
	if info, ok := c.Classify(host); ok {
		return info
	}
	return Info{
		Name:    TitleHost(host),
		Country: "International",
		Bucket:  domain.BucketInternational,
	}
}

func match(table []Entry, host string) (Entry, bool) {
	for _, e := range table {
		if host == e.Domain || strings.HasSuffix(host, "."+e.Domain) {
			return e, true
		}
	}
	return Entry{}, false
}

// Domain extracts the lower-cased hostname from a URL, dropping any
// leading www. Empty string when the URL does not parse.
func Domain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	return strings.TrimPrefix(host, "www.")
}

// SameDomain compares two hostnames case-insensitively, ignoring any
// www. prefix, and treats a subdomain of the other as the same outlet.
func SameDomain(a, b string) bool {
	a = strings.TrimPrefix(strings.ToLower(a), "www.")
	b = strings.TrimPrefix(strings.ToLower(b), "www.")
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.HasSuffix(a, "."+b) || strings.HasSuffix(b, "."+a)
}

// TitleHost renders a hostname as a display name, capitalizing each
// dot-separated label: "unknownsite.com" -> "Unknownsite.Com".
func TitleHost(host string) string {
	host = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(host)), "www.")
	if host == "" {
		return ""
	}
	labels := strings.Split(host, ".")
	for i, l := range labels {
		if l == "" {
			continue
		}
		labels[i] = strings.ToUpper(l[:1]) + l[1:]
	}
	return strings.Join(labels, ".")
}
