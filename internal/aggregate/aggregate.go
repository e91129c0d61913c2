// Package aggregate groups scored feedback records by driver.
package aggregate

import (
	"strings"

	"github.com/jonathan/driver-insights/internal/types"
)

// separator joins feedback and analysis texts within a driver group.
const separator = " ||| "

// ByDriver groups scored records by exact driver-name equality
// (case-sensitive, no normalization) and returns one aggregate per distinct
// driver, in first-seen order. The average rating is the unweighted mean of
// the group's ratings, zero-defaulted ratings included, so a driver whose
// records all lack ratings averages 0. Empty input yields empty output.
func ByDriver(records []types.ScoredRecord) []types.DriverAggregate {
	type group struct {
		feedback []string
		analysis []string
		total    float64
		count    int
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, rec := range records {
		g, ok := groups[rec.DriverName]
		if !ok {
			g = &group{}
			groups[rec.DriverName] = g
			order = append(order, rec.DriverName)
		}
		g.feedback = append(g.feedback, rec.FeedbackText)
		g.analysis = append(g.analysis, rec.Analysis)
		g.total += rec.Rating
		g.count++
	}

	aggregates := make([]types.DriverAggregate, 0, len(order))
	for _, name := range order {
		g := groups[name]
		aggregates = append(aggregates, types.DriverAggregate{
			DriverName:    name,
			Feedback:      strings.Join(g.feedback, separator),
			Analysis:      strings.Join(g.analysis, separator),
			AverageRating: g.total / float64(g.count),
		})
	}
	return aggregates
}

// RecordsFor returns the scored records belonging to one driver, preserving
// input order. Summarization counts aspect labels over this subset.
func RecordsFor(records []types.ScoredRecord, driverName string) []types.ScoredRecord {
	var out []types.ScoredRecord
	for _, rec := range records {
		if rec.DriverName == driverName {
			out = append(out, rec)
		}
	}
	return out
}

// Locations returns the distinct resolvable locations across records,
// comma-joined in first-seen order. Records whose location resolved to the
// "Unknown" default are excluded; if nothing remains, the whole list is
// "Unknown".
func Locations(records []types.ScoredRecord) string {
	seen := make(map[string]bool)
	var locations []string
	for _, rec := range records {
		if rec.Location == types.Unknown || rec.Location == "" || seen[rec.Location] {
			continue
		}
		seen[rec.Location] = true
		locations = append(locations, rec.Location)
	}
	if len(locations) == 0 {
		return types.Unknown
	}
	return strings.Join(locations, ", ")
}
