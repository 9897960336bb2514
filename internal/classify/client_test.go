package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

type stubBackend struct {
	payload any
	err     error
	calls   int
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Classify(ctx context.Context, sentence string, aspects []string) (any, error) {
	s.calls++
	return s.payload, s.err
}

func TestClientClassifyExternalSuccess(t *testing.T) {
	backend := &stubBackend{payload: "display: positive"}
	client := NewClient(backend)

	got, source, err := client.Classify(context.Background(), "The display is nice", []string{"display"})

	require.NoError(t, err)
	assert.Equal(t, models.SourceExternal, source)
	assert.Equal(t, models.SentimentPositive, got["display"])
	assert.Equal(t, 1, backend.calls)
}

func TestClientClassifyBackendErrorFallsBack(t *testing.T) {
	backend := &stubBackend{err: errors.New("service unreachable")}
	client := NewClient(backend)

	got, source, err := client.Classify(context.Background(), "Battery is terrible but display is great",
		[]string{"battery life", "display"})

	require.NoError(t, err)
	assert.Equal(t, models.SourceFallback, source)
	assert.Equal(t, models.SentimentNegative, got["battery life"])
	assert.Equal(t, models.SentimentPositive, got["display"])
}

func TestClientClassifyEmptyParseFallsBack(t *testing.T) {
	backend := &stubBackend{payload: "no usable pairs here"}
	client := NewClient(backend)

	got, source, err := client.Classify(context.Background(), "The battery is great", []string{"battery life"})

	require.NoError(t, err)
	assert.Equal(t, models.SourceFallback, source)
	assert.Equal(t, models.SentimentPositive, got["battery life"])
}

func TestClientClassifyUnusableReviewText(t *testing.T) {
	backend := &stubBackend{payload: "display: positive"}
	client := NewClient(backend)

	_, _, err := client.Classify(context.Background(), "   ", []string{"display"})

	require.Error(t, err)
	assert.Equal(t, 0, backend.calls)
}
