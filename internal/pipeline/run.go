// Package pipeline provides the high-level orchestration for the feedback
// analysis process: load, score, aggregate, summarize. Execution is strictly
// sequential (one record scored at a time, one driver summarized at a time)
// and a failure aborts the whole run, discarding partial results.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/driver-insights/internal/aggregate"
	"github.com/jonathan/driver-insights/internal/dataset"
	"github.com/jonathan/driver-insights/internal/observability"
	"github.com/jonathan/driver-insights/internal/sentiment"
	"github.com/jonathan/driver-insights/internal/types"
)

// RunOptions holds configuration for running the pipeline.
type RunOptions struct {
	InputPath  string
	Strategy   string // sentiment.StrategyGenerative or sentiment.StrategyLexical
	APIKey     string
	OutputPath string // optional; consumed by the caller after Run
	Verbose    bool

	// Analyzer overrides the strategy lookup when set. Tests inject fakes
	// here.
	Analyzer sentiment.Analyzer
	// Out receives progress and verbose trace output; defaults to stdout.
	Out io.Writer
	// Logger receives structured operational logs.
	Logger zerolog.Logger
}

// Result holds the run's three tables: scored records, per-driver
// aggregates, and per-driver summaries. All are in-memory only.
type Result struct {
	RunID      uuid.UUID
	Scored     []types.ScoredRecord
	Aggregates []types.DriverAggregate
	Summaries  []types.DriverSummary
}

// Run executes the four pipeline stages in order.
func Run(ctx context.Context, opts RunOptions) (*Result, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	printer := observability.NewPrinter(out)

	runID := uuid.New()
	logger := opts.Logger.With().Stringer("run_id", runID).Logger()

	analyzer := opts.Analyzer
	if analyzer == nil {
		var err error
		analyzer, err = sentiment.NewAnalyzer(ctx, opts.Strategy, opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("initializing analyzer: %w", err)
		}
		defer func() { _ = analyzer.Close() }()
	}
	logger.Info().Str("strategy", analyzer.Name()).Str("input", opts.InputPath).Msg("starting run")

	fmt.Fprintf(out, "Step 1/4: Loading feedback dataset from %s...\n", opts.InputPath)
	records, err := dataset.Load(opts.InputPath)
	if err != nil {
		return nil, err
	}
	logger.Info().Int("records", len(records)).Msg("dataset loaded")

	fmt.Fprintf(out, "Step 2/4: Scoring %d records (%s strategy)...\n", len(records), analyzer.Name())
	scored := make([]types.ScoredRecord, 0, len(records))
	for _, rec := range records {
		scores, err := analyzer.ScoreAspects(ctx, rec)
		if err != nil {
			return nil, fmt.Errorf("scoring feedback from %s: %w", rec.ReviewerName, err)
		}
		sr := types.ScoredRecord{
			FeedbackRecord: rec,
			Scores:         scores,
			Analysis:       types.RenderAnalysis(rec.FeedbackText, scores),
		}
		scored = append(scored, sr)

		if opts.Verbose {
			printer.PrintScoredRecord(sr)
		} else {
			logger.Debug().Str("reviewer", sr.ReviewerName).Str("driver", sr.DriverName).Msg("record scored")
		}
	}

	fmt.Fprintf(out, "Step 3/4: Aggregating by driver...\n")
	aggregates := aggregate.ByDriver(scored)
	logger.Info().Int("drivers", len(aggregates)).Msg("aggregated")
	if opts.Verbose {
		printer.PrintAggregates(aggregates)
	}

	fmt.Fprintf(out, "Step 4/4: Summarizing %d drivers...\n", len(aggregates))
	summaries := make([]types.DriverSummary, 0, len(aggregates))
	for _, agg := range aggregates {
		driverRecords := aggregate.RecordsFor(scored, agg.DriverName)
		locations := aggregate.Locations(driverRecords)

		narrative, err := analyzer.Summarize(ctx, sentiment.SummaryRequest{
			Aggregate: agg,
			Records:   driverRecords,
			Locations: locations,
		})
		if err != nil {
			return nil, fmt.Errorf("summarizing driver %s: %w", agg.DriverName, err)
		}

		summary := types.DriverSummary{
			DriverName:    agg.DriverName,
			Locations:     locations,
			AverageRating: agg.AverageRating,
			Summary:       narrative,
		}
		summaries = append(summaries, summary)

		if opts.Verbose {
			printer.PrintSummary(summary)
		} else {
			logger.Debug().Str("driver", summary.DriverName).Float64("avg_rating", summary.AverageRating).Msg("driver summarized")
		}
	}

	logger.Info().Int("summaries", len(summaries)).Msg("run complete")
	return &Result{
		RunID:      runID,
		Scored:     scored,
		Aggregates: aggregates,
		Summaries:  summaries,
	}, nil
}
