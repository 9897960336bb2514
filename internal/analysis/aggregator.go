package analysis

import (
	"context"
	"log/slog"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

// SentimentClassifier is what the aggregator needs from the
// classification layer: one call per review, provenance tag included.
type SentimentClassifier interface {
	Classify(ctx context.Context, reviewText string, aspects []string) (map[string]models.SentimentLabel, string, error)
}

// Aggregator runs the per-product analysis: every review is classified
// strictly one after another, votes are tallied per aspect, and a
// ReviewRecord keeps the audit trail for each review. The pacer sits
// between consecutive classification calls.
type Aggregator struct {
	classifier SentimentClassifier
	pacer      Pacer
}

func NewAggregator(classifier SentimentClassifier, pacer Pacer) *Aggregator {
	return &Aggregator{
		classifier: classifier,
		pacer:      pacer,
	}
}

// Analyze processes all reviews of one product against the requested
// aspects. A single bad review never aborts the run; it is recorded
// with its error and skipped in the tallies. Cancellation is honored
// between reviews, and a cancelled run returns the context error so
// partial tallies are never cached.
func (a *Aggregator) Analyze(ctx context.Context, productID string, reviews []string, aspects []string) (*models.ProductAnalysis, error) {
	if len(reviews) == 0 {
		slog.Info("[Aggregator] Product has no reviews, skipping classification",
			slog.String("product_id", productID))
		return &models.ProductAnalysis{
			Sentiments: map[string]models.SentimentLabel{},
			Details:    map[string]models.AspectCounts{},
			Scores:     map[string]float64{},
			NoReviews:  true,
		}, nil
	}

	details := make(map[string]models.AspectCounts, len(aspects))
	for _, aspect := range aspects {
		details[aspect] = models.AspectCounts{}
	}

	result := &models.ProductAnalysis{
		TotalReviews:  len(reviews),
		ReviewResults: make([]models.ReviewRecord, 0, len(reviews)),
	}

	for i, review := range reviews {
		if err := ctx.Err(); err != nil {
			slog.Warn("[Aggregator] Analysis cancelled, discarding partial tallies",
				slog.String("product_id", productID),
				slog.Int("reviews_done", i))
			return nil, err
		}

		if i > 0 {
			if err := a.pacer.Wait(ctx); err != nil {
				return nil, err
			}
		}

		sentiments, source, err := a.classifier.Classify(ctx, review, aspects)
		if err != nil {
			slog.Warn("[Aggregator] Review analysis failed",
				slog.String("product_id", productID),
				slog.Int("review_index", i),
				slog.String("error", err.Error()))
			result.ReviewResults = append(result.ReviewResults, models.ReviewRecord{
				ReviewIndex: i,
				ReviewText:  review,
				Error:       err.Error(),
			})
			continue
		}

		result.ReviewResults = append(result.ReviewResults, models.ReviewRecord{
			ReviewIndex: i,
			ReviewText:  review,
			Sentiments:  sentiments,
			Source:      source,
		})
		result.TotalReviewsAnalyzed++

		for _, aspect := range aspects {
			label, ok := sentiments[aspect]
			if !ok {
				continue
			}

			counts := details[aspect]
			switch label {
			case models.SentimentPositive:
				counts.Positive++
			case models.SentimentNegative:
				counts.Negative++
			default:
				counts.Neutral++
			}
			counts.Total++
			counts.ReviewDetails = append(counts.ReviewDetails, models.ReviewSentiment{
				ReviewIndex: i,
				Sentiment:   label,
			})
			details[aspect] = counts
		}
	}

	result.Details = details
	result.Sentiments = make(map[string]models.SentimentLabel, len(aspects))
	result.Scores = make(map[string]float64, len(aspects))
	for aspect, counts := range details {
		result.Sentiments[aspect] = DominantLabel(counts)
		result.Scores[aspect] = AspectPolarity(counts)
	}

	slog.Info("[Aggregator] Product analysis complete",
		slog.String("product_id", productID),
		slog.Int("total_reviews", result.TotalReviews),
		slog.Int("reviews_analyzed", result.TotalReviewsAnalyzed))

	return result, nil
}
