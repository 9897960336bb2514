package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kanithisathvik/aspectrank/config"
	"github.com/kanithisathvik/aspectrank/internal/analysis"
	"github.com/kanithisathvik/aspectrank/internal/cache"
	"github.com/kanithisathvik/aspectrank/internal/classify"
	"github.com/kanithisathvik/aspectrank/internal/clients"
	"github.com/kanithisathvik/aspectrank/internal/clients/kafka_client"
	"github.com/kanithisathvik/aspectrank/internal/consumers"
	"github.com/kanithisathvik/aspectrank/internal/db"
	"github.com/kanithisathvik/aspectrank/internal/logging"
	"github.com/kanithisathvik/aspectrank/internal/ranking"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg := kafka_client.GetKafkaConfig()

	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	store := newCacheStore()
	defer clients.CloseValkey()

	backend := classify.NewBackendFromEnv()
	classifier := classify.NewClient(backend)
	aggregator := analysis.NewAggregator(classifier, analysis.NewPacerFromEnv())
	ranker := ranking.NewRanker(cache.NewResultCache(store), aggregator)

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_RANKING_REQUESTS,
		consumers.StartRankingRequestConsumer(ranker))

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}

// newCacheStore picks the cache backing from CACHE_BACKEND: "valkey"
// (default), "dynamodb", or "memory".
func newCacheStore() cache.Store {
	switch os.Getenv("CACHE_BACKEND") {
	case "dynamodb":
		return db.NewDynamoStore()
	case "memory":
		slog.Warn("[Main] Using in-memory cache store; entries will not survive restarts")
		return cache.NewMemoryStore()
	default:
		clients.InitValkey()
		return cache.NewValkeyStore(clients.GetValkeyClient())
	}
}
