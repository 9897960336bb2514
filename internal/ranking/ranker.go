package ranking

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/kanithisathvik/aspectrank/internal/analysis"
	"github.com/kanithisathvik/aspectrank/internal/cache"
	"github.com/kanithisathvik/aspectrank/internal/models"
)

// Analyzer is the aggregation entry point the ranker drives on cache
// misses.
type Analyzer interface {
	Analyze(ctx context.Context, productID string, reviews []string, aspects []string) (*models.ProductAnalysis, error)
}

// Ranker runs the full pipeline for a product set: aspect merge, cache
// lookup, aggregation on miss, overall scoring, and a stable sort by
// score. Products are processed one at a time.
type Ranker struct {
	cache      *cache.ResultCache
	aggregator Analyzer
}

func NewRanker(resultCache *cache.ResultCache, aggregator Analyzer) *Ranker {
	return &Ranker{
		cache:      resultCache,
		aggregator: aggregator,
	}
}

// MergeAspects unions the query-derived and user-specified aspect
// lists, case-insensitively, keeping first-seen order.
func MergeAspects(queryAspects, userAspects []string) []string {
	seen := make(map[string]bool)
	var merged []string

	for _, aspect := range append(append([]string{}, queryAspects...), userAspects...) {
		key := strings.ToLower(strings.TrimSpace(aspect))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, key)
	}
	return merged
}

// Rank analyzes and orders the given products by overall score,
// descending; ties keep their input order. A product whose analysis
// fails stays in the output at score zero; only cancellation aborts
// the whole run.
func (r *Ranker) Rank(ctx context.Context, products []models.Product, queryAspects, userAspects []string) ([]models.RankedProduct, error) {
	aspects := MergeAspects(queryAspects, userAspects)

	ranked := make([]models.RankedProduct, 0, len(products))
	for _, product := range products {
		result, err := r.analyzeProduct(ctx, product, aspects)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			slog.Warn("[Ranker] Product analysis failed, ranking with zero score",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()))
			ranked = append(ranked, models.RankedProduct{
				Product: product,
				Error:   err.Error(),
			})
			continue
		}

		ranked = append(ranked, models.RankedProduct{
			Product:      product,
			Analysis:     result,
			OverallScore: analysis.OverallScore(result),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OverallScore > ranked[j].OverallScore
	})

	return ranked, nil
}

func (r *Ranker) analyzeProduct(ctx context.Context, product models.Product, aspects []string) (*models.ProductAnalysis, error) {
	key := cache.AnalysisKey{ProductID: product.ID, Aspects: aspects}

	if cached := r.cache.Get(ctx, key); cached != nil {
		return cached, nil
	}

	result, err := r.aggregator.Analyze(ctx, product.ID, product.Reviews, aspects)
	if err != nil {
		return nil, err
	}

	if err := r.cache.Put(ctx, key, result); err != nil {
		slog.Warn("[Ranker] Failed to cache analysis",
			slog.String("product_id", product.ID),
			slog.String("error", err.Error()))
	}

	return result, nil
}
