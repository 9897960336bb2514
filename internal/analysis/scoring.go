package analysis

import (
	"math"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

// DominantLabel picks the majority sentiment for one aspect. Ties
// resolve positive over negative over neutral; an aspect nobody
// mentioned is neutral.
func DominantLabel(counts models.AspectCounts) models.SentimentLabel {
	if counts.Total == 0 {
		return models.SentimentNeutral
	}

	max := counts.Positive
	if counts.Negative > max {
		max = counts.Negative
	}
	if counts.Neutral > max {
		max = counts.Neutral
	}

	switch {
	case counts.Positive == max:
		return models.SentimentPositive
	case counts.Negative == max:
		return models.SentimentNegative
	default:
		return models.SentimentNeutral
	}
}

// AspectPolarity is the signed net sentiment for one aspect:
// (positive - negative) / total, in [-1, 1], zero when unmentioned.
func AspectPolarity(counts models.AspectCounts) float64 {
	if counts.Total == 0 {
		return 0
	}
	return float64(counts.Positive-counts.Negative) / float64(counts.Total)
}

// OverallFromScores maps each per-aspect polarity onto [0, 100] and
// averages. Preferred over OverallFromLabels whenever detailed scores
// exist.
func OverallFromScores(scores map[string]float64) float64 {
	if len(scores) == 0 {
		return 0
	}

	var sum float64
	for _, score := range scores {
		sum += (score + 1) * 50
	}
	return round2(sum / float64(len(scores)))
}

// OverallFromLabels is the label-only scoring mode: positive is worth
// 100, neutral 50, negative 0.
func OverallFromLabels(sentiments map[string]models.SentimentLabel) float64 {
	if len(sentiments) == 0 {
		return 0
	}

	var sum float64
	for _, label := range sentiments {
		switch label {
		case models.SentimentPositive:
			sum += 100
		case models.SentimentNeutral:
			sum += 50
		}
	}
	return round2(sum / float64(len(sentiments)))
}

// OverallScore picks the scoring mode by what the analysis carries.
func OverallScore(result *models.ProductAnalysis) float64 {
	if result == nil {
		return 0
	}
	if len(result.Scores) > 0 {
		return OverallFromScores(result.Scores)
	}
	return OverallFromLabels(result.Sentiments)
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
