package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

func TestDominantLabelStrictMajority(t *testing.T) {
	counts := models.AspectCounts{Positive: 2, Negative: 1, Total: 3}
	assert.Equal(t, models.SentimentPositive, DominantLabel(counts))

	counts = models.AspectCounts{Positive: 1, Negative: 3, Neutral: 1, Total: 5}
	assert.Equal(t, models.SentimentNegative, DominantLabel(counts))

	counts = models.AspectCounts{Positive: 1, Negative: 1, Neutral: 4, Total: 6}
	assert.Equal(t, models.SentimentNeutral, DominantLabel(counts))
}

func TestDominantLabelTieBreakPrecedence(t *testing.T) {
	// positive wins any tie it is part of
	counts := models.AspectCounts{Positive: 2, Negative: 2, Total: 4}
	assert.Equal(t, models.SentimentPositive, DominantLabel(counts))

	counts = models.AspectCounts{Positive: 2, Negative: 2, Neutral: 2, Total: 6}
	assert.Equal(t, models.SentimentPositive, DominantLabel(counts))

	// negative beats neutral when positive is out
	counts = models.AspectCounts{Negative: 3, Neutral: 3, Total: 6}
	assert.Equal(t, models.SentimentNegative, DominantLabel(counts))
}

func TestDominantLabelEmptyCountsIsNeutral(t *testing.T) {
	assert.Equal(t, models.SentimentNeutral, DominantLabel(models.AspectCounts{}))
}

func TestAspectPolarityBoundsAndFormula(t *testing.T) {
	counts := models.AspectCounts{Positive: 2, Negative: 1, Total: 3}
	assert.InDelta(t, float64(2-1)/3.0, AspectPolarity(counts), 1e-9)

	all := []models.AspectCounts{
		{Positive: 5, Total: 5},
		{Negative: 5, Total: 5},
		{Neutral: 5, Total: 5},
		{Positive: 1, Negative: 4, Total: 5},
	}
	for _, counts := range all {
		score := AspectPolarity(counts)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
	}

	assert.Zero(t, AspectPolarity(models.AspectCounts{}))
}

func TestOverallFromScoresMapsToHundredScale(t *testing.T) {
	scores := map[string]float64{"battery life": 1, "display": -1}
	assert.Equal(t, 50.0, OverallFromScores(scores))

	scores = map[string]float64{"display": 1.0 / 3.0}
	assert.Equal(t, 66.67, OverallFromScores(scores))
}

func TestOverallFromLabels(t *testing.T) {
	sentiments := map[string]models.SentimentLabel{
		"battery life": models.SentimentPositive,
		"display":      models.SentimentNegative,
		"performance":  models.SentimentNeutral,
	}
	assert.Equal(t, 50.0, OverallFromLabels(sentiments))
}

func TestOverallModesAgreeAtLabelBoundaries(t *testing.T) {
	// When every polarity sits exactly on a label boundary (-1, 0, +1)
	// detailed and label-only scoring must produce the same overall.
	scores := map[string]float64{"a": 1, "b": 0, "c": -1}
	sentiments := map[string]models.SentimentLabel{
		"a": models.SentimentPositive,
		"b": models.SentimentNeutral,
		"c": models.SentimentNegative,
	}

	assert.Equal(t, OverallFromLabels(sentiments), OverallFromScores(scores))
}

func TestOverallZeroAspects(t *testing.T) {
	assert.Zero(t, OverallFromScores(nil))
	assert.Zero(t, OverallFromLabels(nil))
}

func TestOverallScorePrefersDetailedMode(t *testing.T) {
	result := &models.ProductAnalysis{
		Sentiments: map[string]models.SentimentLabel{"display": models.SentimentNegative},
		Scores:     map[string]float64{"display": 0.5},
	}
	// Detailed mode: (0.5+1)*50 = 75; label mode would say 0.
	assert.Equal(t, 75.0, OverallScore(result))

	labelOnly := &models.ProductAnalysis{
		Sentiments: map[string]models.SentimentLabel{"display": models.SentimentPositive},
	}
	assert.Equal(t, 100.0, OverallScore(labelOnly))

	assert.Zero(t, OverallScore(nil))
}

func TestOverallScoreAlwaysInRange(t *testing.T) {
	cases := []map[string]float64{
		{"a": 1, "b": 1},
		{"a": -1, "b": -1},
		{"a": 0.123, "b": -0.987, "c": 0.5},
	}
	for _, scores := range cases {
		overall := OverallFromScores(scores)
		assert.GreaterOrEqual(t, overall, 0.0)
		assert.LessOrEqual(t, overall, 100.0)
	}
}
