package analysis

import (
	"math"
	"strings"

	"github.com/jonreiter/govader"

	"simsanalytics/internal/domain"
)

// SentimentAnalyzer produces the local VADER-based percentage breakdown
// of an article's text. It backs the dashboard split and is independent
// of whatever sentiment label the model reports.
type SentimentAnalyzer struct {
	vader *govader.SentimentIntensityAnalyzer
}

// NewSentimentAnalyzer loads the lexicon once; reuse the instance.
func NewSentimentAnalyzer() *SentimentAnalyzer {
	return &SentimentAnalyzer{vader: govader.NewSentimentIntensityAnalyzer()}
}

// Breakdown scores the text. The cautious share is derived from a
// near-zero compound score, which indicates mixed or hedged reporting.
// Components are renormalized to sum to 1.0; empty text is all neutral.
func (a *SentimentAnalyzer) Breakdown(text string) domain.SentimentBreakdown {
	if strings.TrimSpace(text) == "" {
		return domain.SentimentBreakdown{Neutral: 1}
	}

	scores := a.vader.PolarityScores(text)

	positive := round3(scores.Positive)
	negative := round3(scores.Negative)
	neutral := round3(scores.Neutral)

	cautious := 0.0
	if math.Abs(scores.Compound) < 0.3 {
		cautious = round3(math.Max(0, 0.3-math.Abs(scores.Compound)))
	}

	total := positive + negative + neutral + cautious
	if total > 0 && total != 1.0 {
		factor := 1.0 / total
		positive = round3(positive * factor)
		negative = round3(negative * factor)
		neutral = round3(neutral * factor)
		cautious = round3(cautious * factor)
	}

	return domain.SentimentBreakdown{
		Positive: positive,
		Negative: negative,
		Neutral:  neutral,
		Cautious: cautious,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
