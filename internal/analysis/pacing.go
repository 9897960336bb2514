package analysis

import (
	"context"
	"os"
	"strconv"
	"time"
)

const DEFAULT_CLASSIFY_DELAY = 500 * time.Millisecond

// Pacer gates the aggregation loop between classification calls. The
// external service has no published rate limits, so the default policy
// is a fixed courtesy delay between reviews.
type Pacer interface {
	Wait(ctx context.Context) error
}

// FixedIntervalPacer sleeps a fixed duration, bailing early on
// cancellation.
type FixedIntervalPacer struct {
	Interval time.Duration
}

func (p FixedIntervalPacer) Wait(ctx context.Context) error {
	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NopPacer never waits; used by tests and the vader backend, which has
// no service to be polite to.
type NopPacer struct{}

func (NopPacer) Wait(ctx context.Context) error { return ctx.Err() }

// NewPacerFromEnv reads CLASSIFY_DELAY_MS, falling back to the default
// interval on absent or unparsable values.
func NewPacerFromEnv() Pacer {
	raw := os.Getenv("CLASSIFY_DELAY_MS")
	if raw == "" {
		return FixedIntervalPacer{Interval: DEFAULT_CLASSIFY_DELAY}
	}

	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return FixedIntervalPacer{Interval: DEFAULT_CLASSIFY_DELAY}
	}
	return FixedIntervalPacer{Interval: time.Duration(ms) * time.Millisecond}
}
