package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestReportCounts(t *testing.T) {
	t.Parallel()

	r := Report{
		Found:    5,
		Filtered: 4,
		Outcomes: []ArticleOutcome{
			{URL: "a", Result: &AnalysisResult{}},
			{URL: "b", Skipped: true},
			{URL: "c", Err: errors.New("boom")},
			{URL: "d", Result: &AnalysisResult{}},
		},
	}

	if r.Processed() != 2 {
		t.Fatalf("processed = %d, want 2", r.Processed())
	}
	if r.SkippedCount() != 1 {
		t.Fatalf("skipped = %d, want 1", r.SkippedCount())
	}
	if r.Failed() != 1 {
		t.Fatalf("failed = %d, want 1", r.Failed())
	}

	summary := r.Summary()
	for _, part := range []string{"found=5", "filtered=4", "processed=2", "skipped=1", "failed=1"} {
		if !strings.Contains(summary, part) {
			t.Fatalf("summary %q missing %q", summary, part)
		}
	}
}

func TestAnalysisResultVerified(t *testing.T) {
	t.Parallel()

	var nilResult *AnalysisResult
	if nilResult.Verified() {
		t.Fatalf("nil result must not be verified")
	}
	if (&AnalysisResult{FactCheck: FactCheck{Status: VerdictUnverified}}).Verified() {
		t.Fatalf("unverified status must not report verified")
	}
	if !(&AnalysisResult{FactCheck: FactCheck{Status: VerdictVerified}}).Verified() {
		t.Fatalf("verified status must report verified")
	}
}
