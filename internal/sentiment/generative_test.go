package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/driver-insights/internal/llm"
	"github.com/jonathan/driver-insights/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateContentFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc        func(tier llm.ModelTier) string
	CloseFunc           func() error
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateContentFunc != nil {
		return m.GenerateContentFunc(ctx, prompt, tier)
	}
	return "", nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

const wellFormedCompletion = `Customer Support- Negative
Cancellation- N/A
Ride Comfort- Positive
Trip Efficiency- Neutral
Billing- N/A`

func testRecord() types.FeedbackRecord {
	return types.FeedbackRecord{
		ReviewerName: "Alice",
		DriverName:   "Ravi",
		Location:     "Austin",
		FeedbackText: "support was rude but the car was spotless",
		Rating:       2.5,
	}
}

func TestGenerativeScoreAspects_Success(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierLite, tier)
			return wellFormedCompletion, nil
		},
	}
	analyzer := NewGenerativeAnalyzer(mockClient)

	scores, err := analyzer.ScoreAspects(context.Background(), testRecord())
	require.NoError(t, err)
	require.Len(t, scores, 5)

	assert.Equal(t, types.SentimentNegative, scores.Get(types.AspectCustomerSupport))
	assert.Equal(t, types.SentimentNotApplicable, scores.Get(types.AspectCancellation))
	assert.Equal(t, types.SentimentPositive, scores.Get(types.AspectRideComfort))
	assert.Equal(t, types.SentimentNeutral, scores.Get(types.AspectTripEfficiency))
	assert.Equal(t, types.SentimentNotApplicable, scores.Get(types.AspectBilling))
}

func TestGenerativeScoreAspects_PromptContent(t *testing.T) {
	var captured string
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
			captured = prompt
			return wellFormedCompletion, nil
		},
	}
	analyzer := NewGenerativeAnalyzer(mockClient)

	_, err := analyzer.ScoreAspects(context.Background(), testRecord())
	require.NoError(t, err)

	assert.Contains(t, captured, "support was rude but the car was spotless")
	assert.Contains(t, captured, "Driver Name: Ravi")
	assert.Contains(t, captured, "Location: Austin")
	assert.Contains(t, captured, "Rating: 2.5")
	// Aspect taxonomy with synonyms is embedded.
	assert.Contains(t, captured, "Issue Resolution")
	assert.Contains(t, captured, "Billing Transparency")
	assert.Contains(t, captured, "Customer Support- <sentiment>")
	assert.NotContains(t, captured, "{{.")
}

func TestGenerativeScoreAspects_CallFailure(t *testing.T) {
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "", errors.New("rate limit exceeded")
		},
	}
	analyzer := NewGenerativeAnalyzer(mockClient)

	_, err := analyzer.ScoreAspects(context.Background(), testRecord())

	var svcErr *ExternalServiceError
	require.ErrorAs(t, err, &svcErr)
	assert.Equal(t, "score aspects", svcErr.Op)
	assert.Contains(t, err.Error(), "rate limit exceeded")
}

func TestGenerativeScoreAspects_MalformedCompletions(t *testing.T) {
	tests := []struct {
		name       string
		completion string
	}{
		{"empty", "   \n "},
		{"prose instead of template", "The driver seems fine overall."},
		{"missing aspect line", "Customer Support- Negative\nCancellation- N/A"},
		{"unknown sentiment word", "Customer Support- awful\nCancellation- N/A\nRide Comfort- N/A\nTrip Efficiency- N/A\nBilling- N/A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analyzer := NewGenerativeAnalyzer(&MockLLMClient{
				GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
					return tt.completion, nil
				},
			})

			_, err := analyzer.ScoreAspects(context.Background(), testRecord())

			var svcErr *ExternalServiceError
			require.ErrorAs(t, err, &svcErr)
		})
	}
}

func TestGenerativeScoreAspects_SentimentWordsCaseInsensitive(t *testing.T) {
	analyzer := NewGenerativeAnalyzer(&MockLLMClient{
		GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
			return "Customer Support- POSITIVE\nCancellation- not applicable\nRide Comfort- neutral\nTrip Efficiency- na\nBilling- negative", nil
		},
	})

	scores, err := analyzer.ScoreAspects(context.Background(), testRecord())
	require.NoError(t, err)

	assert.Equal(t, types.SentimentPositive, scores.Get(types.AspectCustomerSupport))
	assert.Equal(t, types.SentimentNotApplicable, scores.Get(types.AspectCancellation))
	assert.Equal(t, types.SentimentNotApplicable, scores.Get(types.AspectTripEfficiency))
	assert.Equal(t, types.SentimentNegative, scores.Get(types.AspectBilling))
}

func TestGenerativeSummarize_Success(t *testing.T) {
	var captured string
	mockClient := &MockLLMClient{
		GenerateContentFunc: func(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
			assert.Equal(t, llm.TierStandard, tier)
			captured = prompt
			return "  Driver Ravi, constantly performing poor, one of the repetitive callouts is rude support.\nSuggestion: coach on communication.  ", nil
		},
	}
	analyzer := NewGenerativeAnalyzer(mockClient)

	req := SummaryRequest{
		Aggregate: types.DriverAggregate{
			DriverName:    "Ravi",
			Feedback:      "rude support ||| dirty car",
			Analysis:      "Customer Support- Negative ||| Ride Comfort- Negative",
			AverageRating: 1.75,
		},
		Locations: "Austin, Dallas",
	}

	summary, err := analyzer.Summarize(context.Background(), req)
	require.NoError(t, err)

	// Narrative is kept verbatim apart from trimming.
	assert.Equal(t, "Driver Ravi, constantly performing poor, one of the repetitive callouts is rude support.\nSuggestion: coach on communication.", summary)

	assert.Contains(t, captured, "Driver Name: Ravi")
	assert.Contains(t, captured, "Location(s): Austin, Dallas")
	assert.Contains(t, captured, "Average Rating: 1.75")
	assert.Contains(t, captured, "rude support ||| dirty car")
	assert.Contains(t, captured, "Customer Support- Negative ||| Ride Comfort- Negative")
	assert.Contains(t, captured, "average rating < 3")
}

func TestGenerativeSummarize_Failures(t *testing.T) {
	req := SummaryRequest{Aggregate: types.DriverAggregate{DriverName: "Ravi"}}

	t.Run("call error", func(t *testing.T) {
		analyzer := NewGenerativeAnalyzer(&MockLLMClient{
			GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
				return "", errors.New("connection reset")
			},
		})
		_, err := analyzer.Summarize(context.Background(), req)

		var svcErr *ExternalServiceError
		require.ErrorAs(t, err, &svcErr)
		assert.Equal(t, "summarize driver", svcErr.Op)
	})

	t.Run("empty completion", func(t *testing.T) {
		analyzer := NewGenerativeAnalyzer(&MockLLMClient{
			GenerateContentFunc: func(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
				return "\n\t ", nil
			},
		})
		_, err := analyzer.Summarize(context.Background(), req)

		var svcErr *ExternalServiceError
		require.ErrorAs(t, err, &svcErr)
	})
}

func TestNewAnalyzer_Strategies(t *testing.T) {
	lexical, err := NewAnalyzer(context.Background(), StrategyLexical, "")
	require.NoError(t, err)
	assert.Equal(t, "lexical", lexical.Name())
	assert.NoError(t, lexical.Close())

	_, err = NewAnalyzer(context.Background(), StrategyGenerative, "")
	require.Error(t, err) // no API key

	_, err = NewAnalyzer(context.Background(), "markov", "key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown strategy")
}
