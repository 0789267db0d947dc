package storage

import (
	"testing"
	"time"

	"simsanalytics/internal/domain"
)

func TestReadFactCheckStructured(t *testing.T) {
	t.Parallel()

	raw := `{"status":"verified","sources":[
		{"source_url":"https://thedailystar.net/a","source_name":"The Daily Star","source_country":"Bangladesh","verification_state":"model-verified"},
		{"source_url":"https://reuters.com/b","source_name":"Reuters","source_country":"International"}
	]}`

	fc := readFactCheck(raw)
	if fc.Status != domain.VerdictVerified {
		t.Fatalf("unexpected status: %s", fc.Status)
	}
	if len(fc.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(fc.Sources))
	}
	if fc.Sources[0].Bucket != domain.BucketBangladesh {
		t.Fatalf("bucket not derived from country: %+v", fc.Sources[0])
	}
	if fc.Sources[0].State != domain.StateModelVerified {
		t.Fatalf("state not preserved: %+v", fc.Sources[0])
	}
	if fc.Sources[1].State != domain.StateUnverified {
		t.Fatalf("missing state must default to unverified: %+v", fc.Sources[1])
	}
}

func TestReadFactCheckLegacyString(t *testing.T) {
	t.Parallel()

	fc := readFactCheck(`"Verified"`)
	if fc.Status != domain.VerdictVerified {
		t.Fatalf("legacy string not migrated: %+v", fc)
	}
	if len(fc.Sources) != 0 {
		t.Fatalf("legacy form carries no sources: %+v", fc)
	}

	fc = readFactCheck(`"something else"`)
	if fc.Status != domain.VerdictUnverified {
		t.Fatalf("unknown legacy value must normalize to unverified: %+v", fc)
	}

	fc = readFactCheck("")
	if fc.Status != domain.VerdictUnverified {
		t.Fatalf("empty column must read as unverified: %+v", fc)
	}
}

func TestMarshalUnmarshalAnalysisRoundTrip(t *testing.T) {
	t.Parallel()

	in := &domain.AnalysisResult{
		Sentiment: "positive",
		Category:  "politics",
		Summary:   "Dhaka and Delhi reached an accord.",
		Entities:  []string{"Dhaka", "Delhi"},
		FactCheck: domain.FactCheck{
			Status: domain.VerdictVerified,
			Sources: []domain.Source{
				{URL: "https://reuters.com/a", Name: "Reuters", Country: "International", State: domain.StateNetworkVerified},
			},
		},
		Implications: "Warming ties.",
		Breakdown:    domain.SentimentBreakdown{Positive: 0.4, Neutral: 0.6},
		BDRelevance:  12,
		AnalyzedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	analysisJSON, factCheckJSON, err := marshalAnalysis(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	out := unmarshalAnalysis(analysisJSON.(string), factCheckJSON.(string))
	if out == nil {
		t.Fatalf("round trip lost the result")
	}
	if out.Sentiment != in.Sentiment || out.Category != in.Category || out.Summary != in.Summary {
		t.Fatalf("fields lost: %+v", out)
	}
	if out.FactCheck.Status != domain.VerdictVerified || len(out.FactCheck.Sources) != 1 {
		t.Fatalf("fact check lost: %+v", out.FactCheck)
	}
	if out.FactCheck.Sources[0].State != domain.StateNetworkVerified {
		t.Fatalf("verification state lost: %+v", out.FactCheck.Sources[0])
	}
	if out.BDRelevance != 12 || !out.AnalyzedAt.Equal(in.AnalyzedAt) {
		t.Fatalf("metadata lost: %+v", out)
	}
}

func TestMarshalAnalysisNil(t *testing.T) {
	t.Parallel()

	a, f, err := marshalAnalysis(nil)
	if err != nil || a != nil || f != nil {
		t.Fatalf("nil result must marshal to NULL columns")
	}
	if unmarshalAnalysis("", "") != nil {
		t.Fatalf("empty columns must read back as no analysis")
	}
}
