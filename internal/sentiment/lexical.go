package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/driver-insights/internal/types"
)

// Polarity-to-label thresholds. A score above positiveThreshold is Positive,
// below negativeThreshold Negative, anything in between (inclusive) Neutral.
const (
	positiveThreshold = 0.05
	negativeThreshold = -0.05
)

// aspectKeywords gates each aspect on case-insensitive substring presence in
// the feedback text. Vocabulary is deliberately broad to catch everyday
// phrasing.
var aspectKeywords = map[types.Aspect][]string{
	types.AspectCustomerSupport: {
		"support", "issue", "help", "resolve", "resolution", "complaint",
		"service", "assistance", "contact", "agent", "problem", "refund",
	},
	types.AspectCancellation: {
		"cancel", "cancellation", "driver availability", "availability",
		"schedule", "time slot", "driver shortage", "unable to find driver",
	},
	types.AspectRideComfort: {
		"comfort", "vehicle", "car", "seat", "clean", "ride comfort",
		"odor", "air conditioning", "music volume", "noise", "space",
	},
	types.AspectTripEfficiency: {
		"efficiency", "route", "gps", "wrong route", "timely", "late",
		"delay", "traffic", "shortcuts", "navigation", "fast", "speed",
	},
	types.AspectBilling: {
		"bill", "billing", "fare", "payment", "charge", "transparent",
		"hidden fees", "receipt", "tax", "cost breakdown", "price",
	},
}

// LexicalAnalyzer labels aspects by keyword gating plus one document-level
// polarity score per record. No external calls; it cannot fail with
// ExternalServiceError.
type LexicalAnalyzer struct {
	polarity PolarityScorer
}

// NewLexicalAnalyzer wires the lexical strategy around a polarity scorer.
func NewLexicalAnalyzer(polarity PolarityScorer) *LexicalAnalyzer {
	return &LexicalAnalyzer{polarity: polarity}
}

// Name returns the strategy identifier.
func (*LexicalAnalyzer) Name() string { return StrategyLexical }

// Close is a no-op: the lexical strategy holds no resources.
func (*LexicalAnalyzer) Close() error { return nil }

// ScoreAspects gates each aspect on keyword presence and maps the record's
// single polarity score to a label for every matched aspect. The one score
// is shared by all matched aspects: aspects are independently gated but not
// independently scored.
func (a *LexicalAnalyzer) ScoreAspects(_ context.Context, rec types.FeedbackRecord) (types.AspectScores, error) {
	lowered := strings.ToLower(rec.FeedbackText)

	scored := false
	var label types.Sentiment
	documentLabel := func() types.Sentiment {
		if !scored {
			label = polarityLabel(a.polarity.Polarity(rec.FeedbackText))
			scored = true
		}
		return label
	}

	return types.NewAspectScores(func(aspect types.Aspect) types.Sentiment {
		if !anyKeywordMatches(lowered, aspectKeywords[aspect]) {
			return types.SentimentNotApplicable
		}
		return documentLabel()
	}), nil
}

// Summarize counts this driver's Negative labels per aspect when the average
// rating is below 3, or Positive labels otherwise, and cites the
// most-frequent one. Ties break to the earliest aspect in the fixed order.
func (a *LexicalAnalyzer) Summarize(_ context.Context, req SummaryRequest) (string, error) {
	agg := req.Aggregate

	if agg.AverageRating < 3 {
		worst := topAspectBySentiment(req.Records, types.SentimentNegative, "No negative aspect found")
		return fmt.Sprintf(
			"Driver %s is performing poorly (Average Rating: %.2f).\n"+
				"One of the most frequent negative aspects is: %s.\n"+
				"Suggestion: Improve on %s to enhance rider satisfaction.",
			agg.DriverName, agg.AverageRating, worst, worst), nil
	}

	best := topAspectBySentiment(req.Records, types.SentimentPositive, "No positive aspect found")
	return fmt.Sprintf(
		"Driver %s is performing well (Average Rating: %.2f).\n"+
			"One of the most frequent positive aspects is: %s.\n"+
			"Suggestion: Continue to maintain strengths in %s!",
		agg.DriverName, agg.AverageRating, best, best), nil
}

// topAspectBySentiment returns the aspect whose target-sentiment count is
// highest across records, tie-broken by fixed aspect order, or fallback when
// every count is zero.
func topAspectBySentiment(records []types.ScoredRecord, target types.Sentiment, fallback string) string {
	bestCount := 0
	best := fallback
	for _, aspect := range types.Aspects() {
		count := 0
		for _, rec := range records {
			if rec.Scores.Get(aspect) == target {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = string(aspect)
		}
	}
	return best
}

func anyKeywordMatches(loweredText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(loweredText, kw) {
			return true
		}
	}
	return false
}

// polarityLabel maps a continuous polarity score to a sentiment label using
// the fixed thresholds. Scores of exactly ±0.05 are Neutral.
func polarityLabel(polarity float64) types.Sentiment {
	switch {
	case polarity > positiveThreshold:
		return types.SentimentPositive
	case polarity < negativeThreshold:
		return types.SentimentNegative
	default:
		return types.SentimentNeutral
	}
}

var _ Analyzer = (*LexicalAnalyzer)(nil)
