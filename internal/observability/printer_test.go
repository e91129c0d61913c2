package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/driver-insights/internal/types"
)

func TestPrintScoredRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintScoredRecord(types.ScoredRecord{
		FeedbackRecord: types.FeedbackRecord{
			ReviewerName: "User 3",
			DriverName:   "Ravi",
			Location:     "Austin",
		},
		Analysis: "User Feedback: late pickup\n\nTrip Efficiency- Negative",
	})

	out := buf.String()
	assert.Contains(t, out, "--- Analysis for User 3 ---")
	assert.Contains(t, out, "Driver Name: Ravi, Location: Austin")
	assert.Contains(t, out, "Trip Efficiency- Negative")
}

func TestPrintAggregates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintAggregates([]types.DriverAggregate{
		{DriverName: "Ravi", AverageRating: 1.5},
		{DriverName: "Maria", AverageRating: 4},
	})

	out := buf.String()
	assert.Contains(t, out, "=== DRIVER SUMMARY (Aggregated) ===")
	assert.Contains(t, out, "Ravi (avg rating 1.50)")
	assert.Contains(t, out, "Maria (avg rating 4.00)")
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSummary(types.DriverSummary{
		DriverName:    "Ravi",
		AverageRating: 1.5,
		Summary:       "Driver Ravi is performing poorly (Average Rating: 1.50).",
	})

	out := buf.String()
	assert.Contains(t, out, "=== Final Summary for Driver: Ravi ===")
	assert.Contains(t, out, "(Average Rating: 1.50)")
	assert.Contains(t, out, "performing poorly")
}
