// Package observability provides formatted console output for the pipeline's
// diagnostic sink. None of this is part of the functional contract; a
// headless run can point the printer at io.Discard.
package observability

import (
	"fmt"
	"io"

	"github.com/jonathan/driver-insights/internal/types"
)

// Printer writes human-readable traces of scored records, aggregates and
// summaries.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// PrintScoredRecord echoes one record's analysis, mirroring the per-row
// trace of the scoring stage.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintScoredRecord(rec types.ScoredRecord) {
	fmt.Fprintf(p.out, "--- Analysis for %s ---\n", rec.ReviewerName)
	fmt.Fprintf(p.out, "Driver Name: %s, Location: %s\n", rec.DriverName, rec.Location)
	fmt.Fprintf(p.out, "%s\n\n", rec.Analysis)
}

// PrintAggregates lists the per-driver groupings.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAggregates(aggregates []types.DriverAggregate) {
	fmt.Fprintf(p.out, "=== DRIVER SUMMARY (Aggregated) ===\n")
	for _, agg := range aggregates {
		fmt.Fprintf(p.out, "%s (avg rating %.2f)\n", agg.DriverName, agg.AverageRating)
	}
	fmt.Fprintln(p.out)
}

// PrintSummary echoes one driver's final narrative.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintSummary(summary types.DriverSummary) {
	fmt.Fprintf(p.out, "=== Final Summary for Driver: %s ===\n", summary.DriverName)
	fmt.Fprintf(p.out, "(Average Rating: %.2f)\n\n", summary.AverageRating)
	fmt.Fprintf(p.out, "%s\n\n", summary.Summary)
}
