package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/kanithisathvik/aspectrank/internal/clients/kafka_client"
	"github.com/kanithisathvik/aspectrank/internal/models"
	"github.com/kanithisathvik/aspectrank/internal/ranking"
	"github.com/kanithisathvik/aspectrank/internal/utils"
)

var resultBuffer = utils.NewBatchBuffer[models.RankingResult]()

// StartRankingRequestConsumer drains the ranking-requests topic one
// message at a time: each request's product set is analyzed and ranked
// sequentially, the ordered result is published, and only then is the
// offset committed. A request that fails to rank is logged and
// skipped; it never takes the consumer down.
func StartRankingRequestConsumer(ranker *ranking.Ranker) func(ctx context.Context, consumer *kafka.Consumer) {
	return func(ctx context.Context, consumer *kafka.Consumer) {
		iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
		committer := kafka_client.NewCommitHandler(ctx, consumer)

		for {
			select {
			case <-ctx.Done():
				slog.Warn("[RankingRequestConsumer] Consumer shutting down...")
				return
			default:
				msg, err := iterator.Next()
				if err != nil {
					utils.HandleConsumerError(err)
					continue
				}

				var request models.RankingRequest
				if err := utils.DeserializeFromJSON(msg.Value, &request); err != nil {
					utils.HandleConsumerError(err)
					continue
				}

				slog.Info("[RankingRequestConsumer] Processing ranking request",
					slog.String("request_id", request.RequestID),
					slog.Int("products", len(request.Products)))

				ranked, err := ranker.Rank(ctx, request.Products, request.QueryAspects, request.UserAspects)
				if err != nil {
					slog.Error("[RankingRequestConsumer] Ranking run aborted",
						slog.String("request_id", request.RequestID),
						slog.String("error", err.Error()))
					continue
				}

				resultBuffer.Add(models.RankingResult{
					RequestID: request.RequestID,
					Ranked:    ranked,
				})
				publishPendingResults(committer, msg)
			}
		}
	}
}

func publishPendingResults(committer *kafka_client.KafkaCommitHandler, msg *kafka.Message) {
	batch := resultBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for _, result := range batch {
		var err error
		for i := 0; i < 3; i++ {
			err = kafka_client.PublishRankingResult(result)
			if err == nil {
				break
			}
			slog.Warn("[RankingRequestConsumer] Result publishing failed",
				slog.String("request_id", result.RequestID),
				slog.Int("attempt", i+1),
				slog.String("error", err.Error()))
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			slog.Error("[RankingRequestConsumer] Dropping result after retries",
				slog.String("request_id", result.RequestID))
			continue
		}

		if err := committer.Commit(msg); err != nil {
			slog.Warn("[RankingRequestConsumer] Failed to commit offset",
				slog.String("error", err.Error()))
		}
	}
}
