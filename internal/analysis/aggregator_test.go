package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

type scriptedClassifier struct {
	results []map[string]models.SentimentLabel
	errs    []error
	calls   int
}

func (s *scriptedClassifier) Classify(ctx context.Context, reviewText string, aspects []string) (map[string]models.SentimentLabel, string, error) {
	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, "", s.errs[i]
	}
	return s.results[i], models.SourceExternal, nil
}

func TestAggregatorTalliesSequentialReviews(t *testing.T) {
	classifier := &scriptedClassifier{
		results: []map[string]models.SentimentLabel{
			{"performance": models.SentimentPositive},
			{"performance": models.SentimentPositive},
			{"performance": models.SentimentNegative},
		},
	}
	aggregator := NewAggregator(classifier, NopPacer{})

	result, err := aggregator.Analyze(context.Background(), "p-1",
		[]string{"review one", "review two", "review three"}, []string{"performance"})

	require.NoError(t, err)
	assert.Equal(t, 3, classifier.calls)

	counts := result.Details["performance"]
	assert.Equal(t, 2, counts.Positive)
	assert.Equal(t, 1, counts.Negative)
	assert.Equal(t, 0, counts.Neutral)
	assert.Equal(t, 3, counts.Total)
	require.Len(t, counts.ReviewDetails, 3)
	assert.Equal(t, 0, counts.ReviewDetails[0].ReviewIndex)
	assert.Equal(t, 2, counts.ReviewDetails[2].ReviewIndex)

	assert.Equal(t, models.SentimentPositive, result.Sentiments["performance"])
	assert.InDelta(t, 1.0/3.0, result.Scores["performance"], 1e-9)
	assert.Equal(t, 3, result.TotalReviews)
	assert.Equal(t, 3, result.TotalReviewsAnalyzed)
}

func TestAggregatorCountInvariant(t *testing.T) {
	classifier := &scriptedClassifier{
		results: []map[string]models.SentimentLabel{
			{"display": models.SentimentPositive, "battery life": models.SentimentNeutral},
			{"display": models.SentimentNegative},
		},
	}
	aggregator := NewAggregator(classifier, NopPacer{})

	result, err := aggregator.Analyze(context.Background(), "p-1",
		[]string{"a", "b"}, []string{"display", "battery life"})

	require.NoError(t, err)
	for _, counts := range result.Details {
		assert.Equal(t, counts.Total, counts.Positive+counts.Negative+counts.Neutral)
		assert.Equal(t, counts.Total, len(counts.ReviewDetails))
	}
}

func TestAggregatorZeroReviewsShortCircuits(t *testing.T) {
	classifier := &scriptedClassifier{}
	aggregator := NewAggregator(classifier, NopPacer{})

	result, err := aggregator.Analyze(context.Background(), "p-empty", nil, []string{"display"})

	require.NoError(t, err)
	assert.Equal(t, 0, classifier.calls)
	assert.True(t, result.NoReviews)
	assert.Empty(t, result.Sentiments)
	assert.Equal(t, 0, result.TotalReviews)
	assert.Equal(t, 0, result.TotalReviewsAnalyzed)
}

func TestAggregatorRecordsFailedReviewAndContinues(t *testing.T) {
	classifier := &scriptedClassifier{
		results: []map[string]models.SentimentLabel{
			nil,
			{"display": models.SentimentPositive},
		},
		errs: []error{errors.New("unusable review"), nil},
	}
	aggregator := NewAggregator(classifier, NopPacer{})

	result, err := aggregator.Analyze(context.Background(), "p-1",
		[]string{"@@@@", "Display is great"}, []string{"display"})

	require.NoError(t, err)
	require.Len(t, result.ReviewResults, 2)

	failed := result.ReviewResults[0]
	assert.Equal(t, "unusable review", failed.Error)
	assert.Nil(t, failed.Sentiments)

	assert.Equal(t, 2, result.TotalReviews)
	assert.Equal(t, 1, result.TotalReviewsAnalyzed)
	assert.Equal(t, 1, result.Details["display"].Total)
}

func TestAggregatorIgnoresUnrequestedAspects(t *testing.T) {
	classifier := &scriptedClassifier{
		results: []map[string]models.SentimentLabel{
			{"display": models.SentimentPositive, "camera": models.SentimentNegative},
		},
	}
	aggregator := NewAggregator(classifier, NopPacer{})

	result, err := aggregator.Analyze(context.Background(), "p-1",
		[]string{"one review"}, []string{"display"})

	require.NoError(t, err)
	assert.NotContains(t, result.Details, "camera")
	assert.Equal(t, 1, result.Details["display"].Total)
}

func TestAggregatorCancellationDiscardsPartialRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	classifier := &scriptedClassifier{
		results: []map[string]models.SentimentLabel{
			{"display": models.SentimentPositive},
			{"display": models.SentimentPositive},
		},
	}
	cancelAfterFirst := pacerFunc(func(ctx context.Context) error {
		cancel()
		return ctx.Err()
	})
	aggregator := NewAggregator(classifier, cancelAfterFirst)

	result, err := aggregator.Analyze(ctx, "p-1", []string{"a", "b"}, []string{"display"})

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Equal(t, 1, classifier.calls)
}

type pacerFunc func(ctx context.Context) error

func (f pacerFunc) Wait(ctx context.Context) error { return f(ctx) }
