// Package sentiment derives per-aspect sentiment labels for feedback records
// and writes per-driver performance narratives. Two interchangeable
// strategies satisfy the same contract: a generative LLM call and a local
// lexical polarity scorer.
package sentiment

import (
	"context"
	"fmt"

	"github.com/jonathan/driver-insights/internal/llm"
	"github.com/jonathan/driver-insights/internal/types"
)

// Strategy names accepted by NewAnalyzer.
const (
	StrategyGenerative = "generative"
	StrategyLexical    = "lexical"
)

// SummaryRequest is the input to a driver summary operation.
type SummaryRequest struct {
	Aggregate types.DriverAggregate
	Records   []types.ScoredRecord // this driver's scored records, input order
	Locations string               // resolved location list, comma-joined
}

// Analyzer is the scoring contract shared by both strategies. The pipeline
// only ever talks to this interface.
type Analyzer interface {
	// ScoreAspects labels each of the five aspects for one record.
	// The result always has one entry per aspect, in the fixed order.
	ScoreAspects(ctx context.Context, rec types.FeedbackRecord) (types.AspectScores, error)
	// Summarize produces the performance narrative for one driver.
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
	// Name returns the strategy identifier (e.g., "lexical").
	Name() string
	// Close releases any resources held by the strategy.
	Close() error
}

// NewAnalyzer constructs the strategy named in config. Called once per run.
func NewAnalyzer(ctx context.Context, strategy, apiKey string) (Analyzer, error) {
	switch strategy {
	case StrategyLexical:
		return NewLexicalAnalyzer(NewVaderScorer()), nil
	case StrategyGenerative:
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
		if err != nil {
			return nil, fmt.Errorf("creating LLM client: %w", err)
		}
		return NewGenerativeAnalyzer(client), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q: must be one of generative, lexical", strategy)
	}
}
