package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/kanithisathvik/aspectrank/config"
	"github.com/kanithisathvik/aspectrank/internal/analysis"
	"github.com/kanithisathvik/aspectrank/internal/cache"
	"github.com/kanithisathvik/aspectrank/internal/classify"
	"github.com/kanithisathvik/aspectrank/internal/db"
	"github.com/kanithisathvik/aspectrank/internal/logging"
	"github.com/kanithisathvik/aspectrank/internal/ranking"
)

// One-shot run: pull products and reviews from Postgres, analyze them
// against the aspect list from the ASPECTS env var, and log the
// ranking. Uses an in-memory cache since the process exits afterwards.
func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := db.InitDB(); err != nil {
		slog.Error("[Main] Failed to connect to database",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.CloseDB()

	products, err := db.LoadProducts(ctx)
	if err != nil {
		slog.Error("[Main] Failed to load products",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	aspects := strings.Split(os.Getenv("ASPECTS"), ",")
	if len(aspects) == 1 && aspects[0] == "" {
		aspects = []string{"battery life", "display", "performance"}
	}

	classifier := classify.NewClient(classify.NewBackendFromEnv())
	aggregator := analysis.NewAggregator(classifier, analysis.NewPacerFromEnv())
	ranker := ranking.NewRanker(cache.NewResultCache(cache.NewMemoryStore()), aggregator)

	ranked, err := ranker.Rank(ctx, products, nil, aspects)
	if err != nil {
		slog.Error("[Main] Ranking run failed",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	for i, item := range ranked {
		attrs := []any{
			slog.Int("rank", i+1),
			slog.String("product_id", item.Product.ID),
			slog.String("name", item.Product.Name),
			slog.Float64("overall_score", item.OverallScore),
		}
		if item.Analysis != nil && item.Analysis.NoReviews {
			attrs = append(attrs, slog.Bool("no_reviews", true))
		}
		slog.Info("[Main] Ranked product", attrs...)
	}
}
