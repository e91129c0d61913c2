// Package types defines the shared data model for the feedback analysis pipeline.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Unknown is the default substituted for absent driver names, locations and
// feedback text.
const Unknown = "Unknown"

// Aspect is one of the five fixed service aspects sentiment is reported on.
type Aspect string

// The fixed aspect taxonomy. Order is significant: output formatting and
// summary tie-breaking both follow it.
const (
	AspectCustomerSupport Aspect = "Customer Support"
	AspectCancellation    Aspect = "Cancellation"
	AspectRideComfort     Aspect = "Ride Comfort"
	AspectTripEfficiency  Aspect = "Trip Efficiency"
	AspectBilling         Aspect = "Billing"
)

// Aspects returns the five aspects in their fixed output order.
func Aspects() []Aspect {
	return []Aspect{
		AspectCustomerSupport,
		AspectCancellation,
		AspectRideComfort,
		AspectTripEfficiency,
		AspectBilling,
	}
}

// Sentiment is the label assigned to one aspect of one feedback record.
type Sentiment string

// The four possible sentiment labels.
const (
	SentimentPositive      Sentiment = "Positive"
	SentimentNegative      Sentiment = "Negative"
	SentimentNeutral       Sentiment = "Neutral"
	SentimentNotApplicable Sentiment = "N/A"
)

// ParseSentiment maps a free-form sentiment word to its canonical label.
// Matching is case-insensitive; "NA" and "Not Applicable" are accepted
// spellings of N/A.
func ParseSentiment(s string) (Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive, nil
	case "negative":
		return SentimentNegative, nil
	case "neutral":
		return SentimentNeutral, nil
	case "n/a", "na", "not applicable":
		return SentimentNotApplicable, nil
	default:
		return "", fmt.Errorf("unrecognized sentiment %q", s)
	}
}

// FeedbackRecord is one input row. Field defaults are resolved exactly once
// by NewFeedbackRecord; records are not mutated after construction.
type FeedbackRecord struct {
	ReviewerName string
	DriverName   string
	Location     string
	FeedbackText string
	Rating       float64
}

// NewFeedbackRecord builds a record from a header-keyed row, applying the
// documented defaults: reviewer name falls back to "User <n>" (n is the
// 1-based row index), driver name, location and feedback text fall back to
// "Unknown", and a missing or non-numeric rating falls back to 0.
func NewFeedbackRecord(row map[string]string, index int) FeedbackRecord {
	rec := FeedbackRecord{
		ReviewerName: stringField(row, "userName", fmt.Sprintf("User %d", index+1)),
		DriverName:   stringField(row, "Driver Name", Unknown),
		Location:     stringField(row, "Location", Unknown),
		FeedbackText: stringField(row, "User Feedback", Unknown),
	}
	if raw, ok := row["Rating"]; ok {
		if rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			rec.Rating = rating
		}
	}
	return rec
}

func stringField(row map[string]string, key, fallback string) string {
	if v, ok := row[key]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// AspectScore pairs one aspect with its sentiment label.
type AspectScore struct {
	Aspect    Aspect
	Sentiment Sentiment
}

// AspectScores holds one label per aspect, always length 5 and in the fixed
// aspect order.
type AspectScores []AspectScore

// NewAspectScores assembles an ordered score set from a lookup function.
func NewAspectScores(label func(Aspect) Sentiment) AspectScores {
	scores := make(AspectScores, 0, len(Aspects()))
	for _, aspect := range Aspects() {
		scores = append(scores, AspectScore{Aspect: aspect, Sentiment: label(aspect)})
	}
	return scores
}

// Get returns the sentiment for an aspect, or N/A if the aspect is absent.
func (s AspectScores) Get(aspect Aspect) Sentiment {
	for _, score := range s {
		if score.Aspect == aspect {
			return score.Sentiment
		}
	}
	return SentimentNotApplicable
}

// ScoredRecord is a feedback record plus its per-aspect sentiment labels and
// the rendered analysis text used for aggregation and display.
type ScoredRecord struct {
	FeedbackRecord
	Scores   AspectScores
	Analysis string
}

// RenderAnalysis renders the per-aspect labels into the fixed analysis text
// form shared by both scoring strategies:
//
//	User Feedback: <text>
//
//	Customer Support- <sentiment>
//	...
func RenderAnalysis(feedbackText string, scores AspectScores) string {
	var sb strings.Builder
	sb.WriteString("User Feedback: ")
	sb.WriteString(feedbackText)
	sb.WriteString("\n")
	for _, aspect := range Aspects() {
		sb.WriteString("\n")
		sb.WriteString(string(aspect))
		sb.WriteString("- ")
		sb.WriteString(string(scores.Get(aspect)))
	}
	return sb.String()
}

// DriverAggregate is the per-driver grouping of scored records.
type DriverAggregate struct {
	DriverName    string
	Feedback      string // all feedback texts joined with " ||| "
	Analysis      string // all analysis texts joined with " ||| "
	AverageRating float64
}

// DriverSummary is the final per-driver output row.
type DriverSummary struct {
	DriverName    string
	Locations     string
	AverageRating float64
	Summary       string
}
