package sources

import (
	"testing"

	"simsanalytics/internal/domain"
)

func TestClassifyKnownDomains(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	info, ok := c.Classify("prothomalo.com")
	if !ok {
		t.Fatalf("expected prothomalo.com to be known")
	}
	if info.Bucket != domain.BucketBangladesh {
		t.Fatalf("expected BD bucket, got %s", info.Bucket)
	}
	if info.Name != "Prothom Alo" {
		t.Fatalf("unexpected name: %s", info.Name)
	}

	info, ok = c.Classify("reuters.com")
	if !ok {
		t.Fatalf("expected reuters.com to be known")
	}
	if info.Bucket != domain.BucketInternational {
		t.Fatalf("expected International bucket, got %s", info.Bucket)
	}
}

func TestClassifySubdomainSuffix(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	info, ok := c.Classify("en.prothomalo.com")
	if !ok {
		t.Fatalf("expected subdomain to resolve through the parent domain")
	}
	if info.Name != "Prothom Alo" || info.Bucket != domain.BucketBangladesh {
		t.Fatalf("unexpected classification: %+v", info)
	}

	// Suffix matching must not treat a lookalike as a match.
	if _, ok := c.Classify("notprothomalo.com"); ok {
		t.Fatalf("lookalike domain must not match")
	}
}

func TestClassifyIndianOutletBucketsInternational(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	info, ok := c.Classify("thehindu.com")
	if !ok {
		t.Fatalf("expected thehindu.com to be known")
	}
	if info.Country != "India" {
		t.Fatalf("expected country India, got %s", info.Country)
	}
	if info.Bucket != domain.BucketInternational {
		t.Fatalf("Indian outlets must count as International, got %s", info.Bucket)
	}
}

func TestClassifyTableOrder(t *testing.T) {
	t.Parallel()

	tables := Tables{
		Bangladesh:    []Entry{{Domain: "shared.example.org", Name: "BD Shared"}},
		International: []Entry{{Domain: "shared.example.org", Name: "Intl Shared"}},
	}
	c := NewClassifier(tables)

	info, ok := c.Classify("shared.example.org")
	if !ok {
		t.Fatalf("expected match")
	}
	if info.Bucket != domain.BucketBangladesh || info.Name != "BD Shared" {
		t.Fatalf("Bangladesh table must win on duplicate keys, got %+v", info)
	}
}

func TestResolveUnknownDefaultsInternational(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultTables())

	info := c.Resolve("unknownsite.com")
	if info.Bucket != domain.BucketInternational {
		t.Fatalf("unknown domain must bucket International, got %s", info.Bucket)
	}
	if info.Name != "Unknownsite.Com" {
		t.Fatalf("unexpected display name: %s", info.Name)
	}

	// The policy must be stable across calls.
	again := c.Resolve("unknownsite.com")
	if again != info {
		t.Fatalf("resolve is not idempotent: %+v vs %+v", info, again)
	}
}

func TestDomain(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"https://www.thedailystar.net/news/story", "thedailystar.net"},
		{"http://En.Prothomalo.Com/article", "en.prothomalo.com"},
		{"", ""},
		{"%%%", ""},
	}
	for _, tc := range cases {
		if got := Domain(tc.in); got != tc.want {
			t.Fatalf("Domain(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSameDomain(t *testing.T) {
	t.Parallel()

	if !SameDomain("en.prothomalo.com", "prothomalo.com") {
		t.Fatalf("subdomain must match its parent outlet")
	}
	if !SameDomain("www.reuters.com", "reuters.com") {
		t.Fatalf("www prefix must be ignored")
	}
	if SameDomain("thedailystar.net", "reuters.com") {
		t.Fatalf("unrelated domains must not match")
	}
	if SameDomain("", "reuters.com") {
		t.Fatalf("empty hostname must not match anything")
	}
}
