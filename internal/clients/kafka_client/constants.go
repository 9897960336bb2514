package kafka_client

import "time"

const (
	KAFKA_TOPIC_RANKING_REQUESTS = "ranking-requests" // product sets waiting to be analyzed and ranked
	KAFKA_TOPIC_RANKING_RESULTS  = "ranking-results"  // ordered results for presentation-layer consumers
)

const (
	MAX_RETRIES = 5
	RETRY_DELAY = 2 * time.Second
)
