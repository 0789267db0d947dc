package verify

import (
	"testing"

	"simsanalytics/internal/domain"
	"simsanalytics/internal/sources"
)

func newTestExtractor() *Extractor {
	return NewExtractor(sources.NewClassifier(sources.DefaultTables()), nil)
}

func TestExtractStructuredVerifiedTags(t *testing.T) {
	t.Parallel()

	text := `**VERIFIED SOURCES:**
SOURCE: The Daily Star | COUNTRY: Bangladesh | URL: https://thedailystar.net/news/2024/border-talks | VERIFIED: ✓
SOURCE: Reuters | COUNTRY: International | URL: https://reuters.com/world/asia/border-talks | VERIFIED: ✓`

	cands := newTestExtractor().Extract(text, "", "Border talks")
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Name != "The Daily Star" || cands[0].Country != "Bangladesh" {
		t.Fatalf("unexpected first candidate: %+v", cands[0])
	}
	if cands[0].State != domain.StateModelVerified || cands[1].State != domain.StateModelVerified {
		t.Fatalf("check-marked tags must be model-verified")
	}
	if cands[1].URL != "https://reuters.com/world/asia/border-talks" {
		t.Fatalf("unexpected URL: %s", cands[1].URL)
	}
}

func TestExtractStructuredTagsWithoutCheckmark(t *testing.T) {
	t.Parallel()

	text := `SOURCE: BBC News | COUNTRY: International | URL: https://bbc.com/news/world-asia-123`

	cands := newTestExtractor().Extract(text, "", "")
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
	if cands[0].State != domain.StateUnverified {
		t.Fatalf("unchecked tags must stay unverified, got %s", cands[0].State)
	}
}

func TestExtractPrefersStructuredOverMined(t *testing.T) {
	t.Parallel()

	text := `SOURCE: Reuters | COUNTRY: International | URL: https://reuters.com/world/asia/talks | VERIFIED: ✓
Also see https://bbc.com/news/2024/05/unrelated-story for background.`

	cands := newTestExtractor().Extract(text, "", "")
	if len(cands) != 1 {
		t.Fatalf("structured tags must suppress free-text mining, got %d candidates", len(cands))
	}
	if cands[0].Name != "Reuters" {
		t.Fatalf("unexpected candidate: %+v", cands[0])
	}
}

func TestExtractMinesFreeText(t *testing.T) {
	t.Parallel()

	text := `The report was confirmed by Reuters at https://reuters.com/world/2024/05/border-talks
and analyzed in depth at https://southasiadesk.org/news/analysis-of-talks today.`

	cands := newTestExtractor().Extract(text, "", "")
	if len(cands) != 2 {
		t.Fatalf("expected 2 mined candidates, got %d: %+v", len(cands), cands)
	}
	if cands[0].Name != "Reuters" || cands[0].Country != "International" {
		t.Fatalf("known domain must resolve via the tables: %+v", cands[0])
	}
	if cands[1].Name != "Southasiadesk.Org" || cands[1].Country != "International" {
		t.Fatalf("unknown domain must resolve to International: %+v", cands[1])
	}
	for _, c := range cands {
		if c.State != domain.StateUnverified {
			t.Fatalf("mined candidates must start unverified: %+v", c)
		}
	}
}

func TestExtractMiningSkipsPlaceholders(t *testing.T) {
	t.Parallel()

	text := `Sources: https://example.com/news/2024/story and https://nonexistent.org/tag/bangladesh`

	cands := newTestExtractor().Extract(text, "", "")
	if len(cands) != 0 {
		t.Fatalf("placeholder and index URLs must be dropped, got %+v", cands)
	}
}

func TestExtractMiningRequiresArticleShape(t *testing.T) {
	t.Parallel()

	// Bare outlet roots have no article-shaped path.
	text := `See https://reuters.com and https://www.bbc.com for coverage.`

	cands := newTestExtractor().Extract(text, "", "")
	if len(cands) != 0 {
		t.Fatalf("front-page URLs must not be mined, got %+v", cands)
	}
}

func TestExtractFallsBackToArticleText(t *testing.T) {
	t.Parallel()

	article := `The agreement was first covered at https://thedailystar.net/news/border-deal-2024.
A blog at https://randomblog.net/post/1 also commented, and https://obscure-site.io/x/y was cited.`

	cands := newTestExtractor().Extract("", article, "")
	if len(cands) != 1 {
		t.Fatalf("only curated-table domains may come from article text, got %+v", cands)
	}
	if cands[0].Name != "The Daily Star" {
		t.Fatalf("unexpected candidate: %+v", cands[0])
	}
	if cands[0].URL != "https://thedailystar.net/news/border-deal-2024" {
		t.Fatalf("trailing punctuation must be stripped: %s", cands[0].URL)
	}
}

func TestExtractNeverSynthesizesURLs(t *testing.T) {
	t.Parallel()

	// Outlet names without URLs must not produce candidates.
	article := `The Daily Star and Reuters both reported on the summit.`

	cands := newTestExtractor().Extract("", article, "")
	if len(cands) != 0 {
		t.Fatalf("mentions without URLs must yield nothing, got %+v", cands)
	}
}

func TestNormalizeMinedURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"URL: https://reuters.com/world/asia/talks.", "https://reuters.com/world/asia/talks"},
		{"www.bbc.com/news/world-asia-123", "https://www.bbc.com/news/world-asia-123"},
		{"https://x.io", ""},
		{"https://example.com/news/story", ""},
	}
	for _, tc := range cases {
		if got := normalizeMinedURL(tc.in); got != tc.want {
			t.Fatalf("normalizeMinedURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
