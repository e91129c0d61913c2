package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/driver-insights/internal/types"
)

func scored(driver, location, feedback, analysis string, rating float64) types.ScoredRecord {
	return types.ScoredRecord{
		FeedbackRecord: types.FeedbackRecord{
			DriverName:   driver,
			Location:     location,
			FeedbackText: feedback,
			Rating:       rating,
		},
		Analysis: analysis,
	}
}

func TestByDriver_GroupsAndAverages(t *testing.T) {
	records := []types.ScoredRecord{
		scored("Ravi", "Austin", "late pickup", "analysis-a", 2),
		scored("Maria", "Dallas", "clean car", "analysis-b", 5),
		scored("Ravi", "Austin", "rude support", "analysis-c", 1),
	}

	aggregates := ByDriver(records)
	require.Len(t, aggregates, 2)

	// First-seen driver order.
	assert.Equal(t, "Ravi", aggregates[0].DriverName)
	assert.Equal(t, "Maria", aggregates[1].DriverName)

	assert.Equal(t, "late pickup ||| rude support", aggregates[0].Feedback)
	assert.Equal(t, "analysis-a ||| analysis-c", aggregates[0].Analysis)
	assert.InDelta(t, 1.5, aggregates[0].AverageRating, 0.0001)

	assert.Equal(t, "clean car", aggregates[1].Feedback)
	assert.InDelta(t, 5.0, aggregates[1].AverageRating, 0.0001)
}

// Every record's driver lands in exactly one aggregate: no overlap, no
// omission.
func TestByDriver_PartitionsRecords(t *testing.T) {
	records := []types.ScoredRecord{
		scored("A", "", "f1", "a1", 1),
		scored("B", "", "f2", "a2", 2),
		scored("A", "", "f3", "a3", 3),
		scored("C", "", "f4", "a4", 4),
		scored("B", "", "f5", "a5", 5),
	}

	aggregates := ByDriver(records)
	require.Len(t, aggregates, 3)

	seen := make(map[string]int)
	total := 0
	for _, agg := range aggregates {
		seen[agg.DriverName]++
		total += len(RecordsFor(records, agg.DriverName))
	}
	for driver, n := range seen {
		assert.Equal(t, 1, n, driver)
	}
	assert.Equal(t, len(records), total)
}

func TestByDriver_ZeroDefaultedRatingsCountTowardMean(t *testing.T) {
	records := []types.ScoredRecord{
		scored("Ravi", "", "good", "a", 4),
		scored("Ravi", "", "no rating given", "a", 0),
	}

	aggregates := ByDriver(records)
	require.Len(t, aggregates, 1)
	assert.InDelta(t, 2.0, aggregates[0].AverageRating, 0.0001)
}

func TestByDriver_AllRatingsMissingAveragesZero(t *testing.T) {
	records := []types.ScoredRecord{
		scored("Ravi", "", "f", "a", 0),
		scored("Ravi", "", "f", "a", 0),
	}

	aggregates := ByDriver(records)
	require.Len(t, aggregates, 1)
	assert.Zero(t, aggregates[0].AverageRating)
}

func TestByDriver_CaseSensitiveGrouping(t *testing.T) {
	records := []types.ScoredRecord{
		scored("ravi", "", "f", "a", 1),
		scored("Ravi", "", "f", "a", 5),
	}

	assert.Len(t, ByDriver(records), 2)
}

func TestByDriver_EmptyInput(t *testing.T) {
	assert.Empty(t, ByDriver(nil))
	assert.Empty(t, ByDriver([]types.ScoredRecord{}))
}

func TestRecordsFor_PreservesOrder(t *testing.T) {
	records := []types.ScoredRecord{
		scored("A", "", "first", "", 0),
		scored("B", "", "other", "", 0),
		scored("A", "", "second", "", 0),
	}

	got := RecordsFor(records, "A")
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].FeedbackText)
	assert.Equal(t, "second", got[1].FeedbackText)
}

func TestLocations(t *testing.T) {
	tests := []struct {
		name      string
		locations []string
		want      string
	}{
		{"distinct locations joined in first-seen order", []string{"Austin", "Dallas", "Austin"}, "Austin, Dallas"},
		{"unknown defaults excluded", []string{types.Unknown, "Austin", types.Unknown}, "Austin"},
		{"all unknown falls back to Unknown", []string{types.Unknown, types.Unknown}, types.Unknown},
		{"no records falls back to Unknown", nil, types.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var records []types.ScoredRecord
			for _, loc := range tt.locations {
				records = append(records, scored("Ravi", loc, "f", "a", 0))
			}
			assert.Equal(t, tt.want, Locations(records))
		})
	}
}
