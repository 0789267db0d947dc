package analysis

import (
	"strings"
	"testing"

	"simsanalytics/internal/sources"
	"simsanalytics/internal/verify"
)

func newTestParser() *Parser {
	extractor := verify.NewExtractor(sources.NewClassifier(sources.DefaultTables()), nil)
	return NewParser(extractor, nil)
}

func TestParseEmptyInputYieldsDefaults(t *testing.T) {
	t.Parallel()

	parsed := newTestParser().Parse("", "Border talks resume", "")
	if parsed == nil {
		t.Fatalf("empty input must not fail the parse")
	}
	if parsed.Sentiment != "neutral" {
		t.Fatalf("expected neutral fallback, got %q", parsed.Sentiment)
	}
	if parsed.Category != "others" {
		t.Fatalf("expected others fallback, got %q", parsed.Category)
	}
	if parsed.Summary == "" {
		t.Fatalf("summary must never be empty")
	}
	if !strings.Contains(parsed.Summary, "Border talks resume") {
		t.Fatalf("fallback summary must mention the title, got %q", parsed.Summary)
	}
	if len(parsed.Sources) != 0 {
		t.Fatalf("no sources expected, got %+v", parsed.Sources)
	}
}

func TestParseExtractsLabelledFields(t *testing.T) {
	t.Parallel()

	text := `**SUMMARY:** Dhaka and New Delhi agreed to joint river patrols after two days of ministerial talks on water sharing.

**SENTIMENT:** Positive

**CATEGORY:** Politics

GEOPOLITICAL IMPLICATIONS: Rising cooperation over shared river water management eases a long-standing irritant.

MEDIA BIAS ASSESSMENT: The coverage leans toward official government framing with little opposition comment.`

	parsed := newTestParser().Parse(text, "River talks", "")
	if parsed == nil {
		t.Fatalf("parse failed")
	}
	if parsed.Sentiment != "positive" {
		t.Fatalf("expected positive, got %q", parsed.Sentiment)
	}
	if parsed.Category != "politics" {
		t.Fatalf("expected politics, got %q", parsed.Category)
	}
	if !strings.HasPrefix(parsed.Summary, "Dhaka and New Delhi agreed") {
		t.Fatalf("unexpected summary: %q", parsed.Summary)
	}
	if !strings.Contains(parsed.Implications, "Rising cooperation") {
		t.Fatalf("implications missing: %q", parsed.Implications)
	}
	if !strings.Contains(parsed.BiasAssessment, "official government framing") {
		t.Fatalf("bias assessment missing: %q", parsed.BiasAssessment)
	}
}

func TestParseRejectsInvalidLabelValues(t *testing.T) {
	t.Parallel()

	text := `SENTIMENT: exuberant
CATEGORY: gossip`

	parsed := newTestParser().Parse(text, "", "")
	if parsed.Sentiment != "neutral" {
		t.Fatalf("out-of-vocabulary sentiment must fall back, got %q", parsed.Sentiment)
	}
	if parsed.Category != "others" {
		t.Fatalf("out-of-vocabulary category must fall back, got %q", parsed.Category)
	}
}

func TestParseSummaryFallsBackToFirstParagraph(t *testing.T) {
	t.Parallel()

	para := "The two governments announced a series of confidence-building measures covering border haats, " +
		"river data exchange, and consular access, following months of quiet diplomacy between the capitals."
	text := "# Heading\n\n" + para + "\n\nSecond paragraph."

	parsed := newTestParser().Parse(text, "", "")
	if !strings.HasPrefix(parsed.Summary, "The two governments announced") {
		t.Fatalf("expected first-paragraph fallback, got %q", parsed.Summary)
	}
}

func TestParseEntities(t *testing.T) {
	t.Parallel()

	text := `Sheikh Hasina met officials in New Delhi while ministers from Bangladesh and India discussed trade.`

	parsed := newTestParser().Parse(text, "", "")
	got := map[string]bool{}
	for _, e := range parsed.Entities {
		got[e] = true
	}
	for _, want := range []string{"Sheikh Hasina", "Bangladesh", "India"} {
		if !got[want] {
			t.Fatalf("expected entity %q in %v", want, parsed.Entities)
		}
	}
}

func TestParseEntitiesCapped(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 30; i++ {
		b.WriteString("Alpha")
		b.WriteByte('A' + byte(i%26))
		b.WriteString("name ")
	}
	parsed := newTestParser().Parse(b.String(), "", "")
	if len(parsed.Entities) > maxEntities {
		t.Fatalf("entity list must be capped at %d, got %d", maxEntities, len(parsed.Entities))
	}
}

func TestParseDelegatesSourceExtraction(t *testing.T) {
	t.Parallel()

	text := `SOURCE: Reuters | COUNTRY: International | URL: https://reuters.com/world/asia/talks | VERIFIED: ✓`

	parsed := newTestParser().Parse(text, "", "")
	if len(parsed.Sources) != 1 || parsed.Sources[0].Name != "Reuters" {
		t.Fatalf("unexpected sources: %+v", parsed.Sources)
	}
}

func TestCleanMarkdown(t *testing.T) {
	t.Parallel()

	in := "## Heading\n**bold** and *italic*\nrest"
	got := cleanMarkdown(in)
	if strings.ContainsAny(got, "*#") {
		t.Fatalf("markdown markers must be stripped, got %q", got)
	}
	if !strings.Contains(got, "bold and italic") {
		t.Fatalf("inner text must survive, got %q", got)
	}
}
