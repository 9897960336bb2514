package classify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

const classifyCallTimeout = 30 * time.Second

// Client classifies one review against a full aspect list. One
// external attempt is made per call; on failure or an empty parse the
// local fallback answers instead, and the caller only sees which path
// ran through the returned source tag. No caching or retrying happens
// at this layer.
type Client struct {
	backend Backend
	timeout time.Duration
}

func NewClient(backend Backend) *Client {
	return &Client{
		backend: backend,
		timeout: classifyCallTimeout,
	}
}

// Classify returns an aspect -> sentiment map plus the provenance tag
// (models.SourceExternal or models.SourceFallback). An error is only
// returned when the review text itself is unusable; classifier
// failures are absorbed by the fallback.
func (c *Client) Classify(ctx context.Context, reviewText string, aspects []string) (map[string]models.SentimentLabel, string, error) {
	cleaned := CleanReviewText(reviewText)
	if strings.TrimSpace(cleaned) == "" {
		return nil, "", fmt.Errorf("review text is empty after cleanup")
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	raw, err := c.backend.Classify(callCtx, cleaned, aspects)
	if err != nil {
		slog.Warn("[Classifier] External classification failed, using fallback",
			slog.String("backend", c.backend.Name()),
			slog.String("error", err.Error()))
		return FallbackClassify(cleaned, aspects), models.SourceFallback, nil
	}

	sentiments := ParseClassifierResponse(raw)
	if len(sentiments) == 0 {
		slog.Warn("[Classifier] Empty parse result, using fallback",
			slog.String("backend", c.backend.Name()))
		return FallbackClassify(cleaned, aspects), models.SourceFallback, nil
	}

	return sentiments, models.SourceExternal, nil
}
