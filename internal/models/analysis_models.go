package models

// SentimentLabel is the closed set of labels the engine works with.
// Anything the classifier returns is normalized into one of these
// before it reaches the aggregation layer.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNegative SentimentLabel = "negative"
	SentimentNeutral  SentimentLabel = "neutral"
)

// Sentiment provenance recorded per review.
const (
	SourceExternal = "external"
	SourceFallback = "fallback"
)

// ReviewRecord is the per-review audit entry. Exactly one of
// Sentiments or Error is set.
type ReviewRecord struct {
	ReviewIndex int                       `json:"review_index"`
	ReviewText  string                    `json:"review_text"`
	Sentiments  map[string]SentimentLabel `json:"sentiments,omitempty"`
	Error       string                    `json:"error,omitempty"`
	Source      string                    `json:"source,omitempty"`
}

// ReviewSentiment links one review's index to the label it contributed
// for a single aspect.
type ReviewSentiment struct {
	ReviewIndex int            `json:"review_index"`
	Sentiment   SentimentLabel `json:"sentiment"`
}

// AspectCounts accumulates sentiment votes for one aspect across all
// reviews of a product. Total == Positive + Negative + Neutral ==
// len(ReviewDetails) at all times.
type AspectCounts struct {
	Positive      int               `json:"positive"`
	Negative      int               `json:"negative"`
	Neutral       int               `json:"neutral"`
	Total         int               `json:"total"`
	ReviewDetails []ReviewSentiment `json:"review_details"`
}

// ProductAnalysis is the immutable result of one (product, aspect-set)
// run, either freshly computed or served from cache.
type ProductAnalysis struct {
	Sentiments           map[string]SentimentLabel `json:"sentiments"`
	Details              map[string]AspectCounts   `json:"details"`
	Scores               map[string]float64        `json:"scores"`
	ReviewResults        []ReviewRecord            `json:"review_results"`
	TotalReviewsAnalyzed int                       `json:"total_reviews_analyzed"`
	TotalReviews         int                       `json:"total_reviews"`
	NoReviews            bool                      `json:"no_reviews,omitempty"`
}

// CacheEntry wraps a ProductAnalysis with the insertion timestamp used
// for TTL checks.
type CacheEntry struct {
	Timestamp int64           `json:"timestamp"`
	Result    ProductAnalysis `json:"result"`
}
