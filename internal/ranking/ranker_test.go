package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanithisathvik/aspectrank/internal/cache"
	"github.com/kanithisathvik/aspectrank/internal/models"
)

// stubAnalyzer maps product IDs to canned analyses.
type stubAnalyzer struct {
	analyses map[string]*models.ProductAnalysis
	calls    map[string]int
}

func newStubAnalyzer() *stubAnalyzer {
	return &stubAnalyzer{
		analyses: make(map[string]*models.ProductAnalysis),
		calls:    make(map[string]int),
	}
}

func (s *stubAnalyzer) Analyze(ctx context.Context, productID string, reviews []string, aspects []string) (*models.ProductAnalysis, error) {
	s.calls[productID]++
	if len(reviews) == 0 {
		return &models.ProductAnalysis{
			Sentiments: map[string]models.SentimentLabel{},
			Details:    map[string]models.AspectCounts{},
			Scores:     map[string]float64{},
			NoReviews:  true,
		}, nil
	}
	return s.analyses[productID], nil
}

func analysisWithScore(score float64) *models.ProductAnalysis {
	return &models.ProductAnalysis{
		Sentiments:           map[string]models.SentimentLabel{"display": models.SentimentPositive},
		Details:              map[string]models.AspectCounts{"display": {Positive: 1, Total: 1}},
		Scores:               map[string]float64{"display": score},
		TotalReviews:         1,
		TotalReviewsAnalyzed: 1,
	}
}

func TestMergeAspectsDedupesCaseInsensitively(t *testing.T) {
	merged := MergeAspects([]string{"Display", "battery life"}, []string{"display", "Performance", " battery life "})

	assert.Equal(t, []string{"display", "battery life", "performance"}, merged)
}

func TestMergeAspectsDropsEmptyEntries(t *testing.T) {
	merged := MergeAspects([]string{"", "  "}, []string{"display"})

	assert.Equal(t, []string{"display"}, merged)
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	analyzer := newStubAnalyzer()
	analyzer.analyses["low"] = analysisWithScore(-1)
	analyzer.analyses["high"] = analysisWithScore(1)
	analyzer.analyses["mid"] = analysisWithScore(0)

	ranker := NewRanker(cache.NewResultCache(cache.NewMemoryStore()), analyzer)

	products := []models.Product{
		{ID: "low", Reviews: []string{"r"}},
		{ID: "high", Reviews: []string{"r"}},
		{ID: "mid", Reviews: []string{"r"}},
	}

	ranked, err := ranker.Rank(context.Background(), products, []string{"display"}, nil)

	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, "high", ranked[0].Product.ID)
	assert.Equal(t, "mid", ranked[1].Product.ID)
	assert.Equal(t, "low", ranked[2].Product.ID)
}

func TestRankStableSortPreservesInputOrderOnTies(t *testing.T) {
	analyzer := newStubAnalyzer()
	analyzer.analyses["first"] = analysisWithScore(0.6)
	analyzer.analyses["second"] = analysisWithScore(0.6)

	ranker := NewRanker(cache.NewResultCache(cache.NewMemoryStore()), analyzer)

	products := []models.Product{
		{ID: "first", Reviews: []string{"r"}},
		{ID: "second", Reviews: []string{"r"}},
	}

	ranked, err := ranker.Rank(context.Background(), products, []string{"display"}, nil)

	require.NoError(t, err)
	assert.Equal(t, "first", ranked[0].Product.ID)
	assert.Equal(t, "second", ranked[1].Product.ID)
	assert.Equal(t, ranked[0].OverallScore, ranked[1].OverallScore)
}

func TestRankZeroReviewProductStaysRankedLast(t *testing.T) {
	analyzer := newStubAnalyzer()
	analyzer.analyses["reviewed"] = analysisWithScore(1)

	ranker := NewRanker(cache.NewResultCache(cache.NewMemoryStore()), analyzer)

	products := []models.Product{
		{ID: "bare"},
		{ID: "reviewed", Reviews: []string{"r"}},
	}

	ranked, err := ranker.Rank(context.Background(), products, []string{"display"}, nil)

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "reviewed", ranked[0].Product.ID)

	bare := ranked[1]
	assert.Equal(t, "bare", bare.Product.ID)
	assert.Zero(t, bare.OverallScore)
	require.NotNil(t, bare.Analysis)
	assert.True(t, bare.Analysis.NoReviews)
}

func TestRankUsesCacheOnSecondRun(t *testing.T) {
	analyzer := newStubAnalyzer()
	analyzer.analyses["p-1"] = analysisWithScore(1)

	ranker := NewRanker(cache.NewResultCache(cache.NewMemoryStore()), analyzer)
	products := []models.Product{{ID: "p-1", Reviews: []string{"r"}}}

	_, err := ranker.Rank(context.Background(), products, []string{"display"}, nil)
	require.NoError(t, err)
	_, err = ranker.Rank(context.Background(), products, []string{"Display"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, analyzer.calls["p-1"], "second run should be served from cache")
}

func TestRankFailedAnalysisKeepsProductWithReason(t *testing.T) {
	analyzer := newStubAnalyzer()
	analyzer.analyses["fine"] = analysisWithScore(1)

	ranker := NewRanker(cache.NewResultCache(cache.NewMemoryStore()), failFirstAnalyzer{inner: analyzer})

	products := []models.Product{
		{ID: "broken", Reviews: []string{"r"}},
		{ID: "fine", Reviews: []string{"r"}},
	}

	ranked, err := ranker.Rank(context.Background(), products, []string{"display"}, nil)

	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "fine", ranked[0].Product.ID)

	broken := ranked[1]
	assert.Equal(t, "broken", broken.Product.ID)
	assert.Zero(t, broken.OverallScore)
	assert.Nil(t, broken.Analysis)
	assert.Equal(t, "classifier unavailable", broken.Error)
}

func TestRankCancelledContextAborts(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := &cancellingAnalyzer{}
	ranker := NewRanker(cache.NewResultCache(cache.NewMemoryStore()), analyzer)

	_, err := ranker.Rank(ctx, []models.Product{{ID: "p-1", Reviews: []string{"r"}}}, []string{"display"}, nil)

	require.ErrorIs(t, err, context.Canceled)
}

// failFirstAnalyzer fails the "broken" product and delegates the rest.
type failFirstAnalyzer struct {
	inner *stubAnalyzer
}

func (f failFirstAnalyzer) Analyze(ctx context.Context, productID string, reviews []string, aspects []string) (*models.ProductAnalysis, error) {
	if productID == "broken" {
		return nil, errors.New("classifier unavailable")
	}
	return f.inner.Analyze(ctx, productID, reviews, aspects)
}

type cancellingAnalyzer struct{}

func (cancellingAnalyzer) Analyze(ctx context.Context, productID string, reviews []string, aspects []string) (*models.ProductAnalysis, error) {
	return nil, ctx.Err()
}
