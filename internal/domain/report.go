package domain

import "fmt"

// ArticleOutcome is the per-article result of a batch run. Exactly one
// of Result or Err is set unless the article was skipped.
type ArticleOutcome struct {
	URL     string
	Title   string
	Skipped bool
	Result  *AnalysisResult
	Err     error
}

// Report aggregates one ingestion or reanalysis run. A single failing
// article never aborts the batch; it only shows up in these counts.
type Report struct {
	Found    int
	Filtered int
	Outcomes []ArticleOutcome
}

// Processed counts articles that produced a fresh analysis.
func (r Report) Processed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && !o.Skipped {
			n++
		}
	}
	return n
}

// SkippedCount counts articles left untouched (already analyzed or no text).
func (r Report) SkippedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}

// Failed counts articles whose processing ended in an error.
func (r Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Summary renders the run totals for logs and notifications.
func (r Report) Summary() string {
	return fmt.Sprintf("found=%d filtered=%d processed=%d skipped=%d failed=%d",
		r.Found, r.Filtered, r.Processed(), r.SkippedCount(), r.Failed())
}
