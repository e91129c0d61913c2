package sentiment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/driver-insights/internal/llm"
	"github.com/jonathan/driver-insights/internal/prompts"
	"github.com/jonathan/driver-insights/internal/types"
)

// GenerativeAnalyzer delegates scoring and summarization to an LLM. The
// completion contract is line-oriented: one "<Aspect>- <Sentiment>" line per
// aspect. Completions are parsed into typed scores immediately; the raw text
// is never stored.
type GenerativeAnalyzer struct {
	client llm.Client
}

// NewGenerativeAnalyzer wires the generative strategy around an LLM client.
func NewGenerativeAnalyzer(client llm.Client) *GenerativeAnalyzer {
	return &GenerativeAnalyzer{client: client}
}

// Name returns the strategy identifier.
func (*GenerativeAnalyzer) Name() string { return StrategyGenerative }

// Close releases the underlying LLM client.
func (a *GenerativeAnalyzer) Close() error { return a.client.Close() }

// ScoreAspects asks the model for one sentiment line per aspect and parses
// the completion into typed scores. A transport error, an empty completion,
// or a completion that deviates from the line template all fail with
// *ExternalServiceError; nothing is retried.
func (a *GenerativeAnalyzer) ScoreAspects(ctx context.Context, rec types.FeedbackRecord) (types.AspectScores, error) {
	prompt := buildAspectPrompt(rec)

	completion, err := a.client.GenerateContent(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &ExternalServiceError{Op: "score aspects", Message: "generation failed", Cause: err}
	}
	if strings.TrimSpace(completion) == "" {
		return nil, &ExternalServiceError{Op: "score aspects", Message: "empty completion"}
	}

	scores, err := parseAspectResponse(completion)
	if err != nil {
		return nil, &ExternalServiceError{Op: "score aspects", Message: "malformed completion", Cause: err}
	}
	return scores, nil
}

// Summarize asks the model for the driver narrative and returns it verbatim
// (trimmed). The prompt embeds the framing rule, so the model cites negative
// reasons below an average rating of 3 and positive ones otherwise.
func (a *GenerativeAnalyzer) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	prompt := buildSummaryPrompt(req)

	completion, err := a.client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return "", &ExternalServiceError{Op: "summarize driver", Message: "generation failed", Cause: err}
	}

	summary := strings.TrimSpace(completion)
	if summary == "" {
		return "", &ExternalServiceError{Op: "summarize driver", Message: "empty completion"}
	}
	return summary, nil
}

func buildAspectPrompt(rec types.FeedbackRecord) string {
	template := prompts.MustGet("sentiment.json", "score-aspects")
	return prompts.Format(template, map[string]string{
		"Feedback": rec.FeedbackText,
		"Driver":   rec.DriverName,
		"Location": rec.Location,
		"Rating":   strconv.FormatFloat(rec.Rating, 'g', -1, 64),
	})
}

func buildSummaryPrompt(req SummaryRequest) string {
	template := prompts.MustGet("sentiment.json", "summarize-driver")
	return prompts.Format(template, map[string]string{
		"Driver":        req.Aggregate.DriverName,
		"Locations":     req.Locations,
		"AverageRating": fmt.Sprintf("%.2f", req.Aggregate.AverageRating),
		"Feedback":      req.Aggregate.Feedback,
		"Analysis":      req.Aggregate.Analysis,
	})
}

// parseAspectResponse parses the "<Aspect>- <Sentiment>" lines of a
// completion. Every aspect must appear exactly as named in the taxonomy;
// sentiment words are matched case-insensitively.
func parseAspectResponse(completion string) (types.AspectScores, error) {
	labels := make(map[types.Aspect]types.Sentiment, len(types.Aspects()))

	for _, line := range strings.Split(completion, "\n") {
		line = strings.TrimSpace(line)
		for _, aspect := range types.Aspects() {
			prefix := string(aspect) + "-"
			if !strings.HasPrefix(line, prefix) {
				continue
			}
			label, err := types.ParseSentiment(strings.TrimPrefix(line, prefix))
			if err != nil {
				return nil, fmt.Errorf("aspect %q: %w", aspect, err)
			}
			labels[aspect] = label
		}
	}

	for _, aspect := range types.Aspects() {
		if _, ok := labels[aspect]; !ok {
			return nil, fmt.Errorf("completion is missing a line for aspect %q", aspect)
		}
	}

	return types.NewAspectScores(func(a types.Aspect) types.Sentiment {
		return labels[a]
	}), nil
}

var _ Analyzer = (*GenerativeAnalyzer)(nil)
