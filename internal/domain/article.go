package domain

import "time"

// Article is a core entity describing one ingested news item.
type Article struct {
	ID          int64
	URL         string
	Title       string
	Author      string
	Source      string
	Image       string
	Favicon     string
	Score       float64
	FullText    string
	PublishedAt time.Time
	Analysis    *AnalysisResult
}

// CountryBucket is the two-way verification taxonomy. Anything that is
// not Bangladesh collapses to International, including Indian outlets.
type CountryBucket string

const (
	BucketBangladesh    CountryBucket = "BD"
	BucketInternational CountryBucket = "International"
)

// VerificationState records how a source URL's existence was established.
type VerificationState string

const (
	StateUnverified      VerificationState = "unverified"
	StateModelVerified   VerificationState = "model-verified"
	StateNetworkVerified VerificationState = "network-verified"
)

// Source is a single corroborating reference discovered for an article.
type Source struct {
	URL     string
	Name    string
	Bucket  CountryBucket
	State   VerificationState
	Country string // raw country label as reported by the model or table
}

// Verdict is the final cross-source corroboration classification.
type Verdict string

const (
	VerdictVerified   Verdict = "verified"
	VerdictUnverified Verdict = "unverified"
)

// FactCheck is the single tagged representation of verification output.
// Legacy records that stored a bare status string are lifted into this
// form on read.
type FactCheck struct {
	Status  Verdict
	Sources []Source
}

// SentimentBreakdown is the local lexicon-based percentage split of the
// article text. Values sum to roughly 1.0.
type SentimentBreakdown struct {
	Positive float64
	Negative float64
	Neutral  float64
	Cautious float64
}

// AnalysisResult is the structured output of one enrichment pass. It is
// produced whole and replaces any prior result for the same article.
type AnalysisResult struct {
	Sentiment      string
	Category       string
	Summary        string
	Entities       []string
	FactCheck      FactCheck
	Implications   string
	BiasAssessment string
	Breakdown      SentimentBreakdown
	BDRelevance    int
	AnalyzedAt     time.Time
}

// Verified reports whether the result carries a verified verdict.
func (r *AnalysisResult) Verified() bool {
	return r != nil && r.FactCheck.Status == VerdictVerified
}
