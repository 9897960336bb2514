package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/kanithisathvik/aspectrank/internal/models"
)

const (
	// All engine-owned keys live under this prefix.
	KEY_PREFIX = "aspectrank:analysis:"

	// ANALYSIS_TTL bounds how long a cached ProductAnalysis is trusted.
	ANALYSIS_TTL = 24 * time.Hour
)

// AnalysisKey identifies one (product, aspect-set) analysis. Aspect
// order never matters: the set is canonicalized before the key string
// is built, so {display, battery} and {battery, display} share an
// entry, while any membership change produces a new key.
type AnalysisKey struct {
	ProductID string
	Aspects   []string
}

func (k AnalysisKey) String() string {
	aspects := make([]string, 0, len(k.Aspects))
	for _, aspect := range k.Aspects {
		aspects = append(aspects, strings.ToLower(strings.TrimSpace(aspect)))
	}
	sort.Strings(aspects)

	digest := sha256.Sum256([]byte(strings.Join(aspects, "|")))
	return KEY_PREFIX + k.ProductID + ":" + hex.EncodeToString(digest[:8])
}

// ResultCache is the time-bound analysis cache. Entries carry their
// insertion timestamp; reads past the TTL delete the entry and report
// a miss, as do entries that no longer deserialize.
type ResultCache struct {
	store Store
	now   func() time.Time
}

func NewResultCache(store Store) *ResultCache {
	return &ResultCache{
		store: store,
		now:   time.Now,
	}
}

// Get returns the cached analysis for the key, or nil on miss. Store
// errors and corrupt entries are both treated as misses; the caller
// recomputes either way.
func (c *ResultCache) Get(ctx context.Context, key AnalysisKey) *models.ProductAnalysis {
	storeKey := key.String()

	raw, found, err := c.store.Get(ctx, storeKey)
	if err != nil {
		slog.Warn("[ResultCache] Cache read failed, treating as miss",
			slog.String("key", storeKey),
			slog.String("error", err.Error()))
		return nil
	}
	if !found {
		return nil
	}

	var entry models.CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		slog.Warn("[ResultCache] Corrupt cache entry, deleting",
			slog.String("key", storeKey),
			slog.String("error", err.Error()))
		c.delete(ctx, storeKey)
		return nil
	}

	age := c.now().UnixMilli() - entry.Timestamp
	if age >= ANALYSIS_TTL.Milliseconds() {
		slog.Info("[ResultCache] Entry expired, deleting",
			slog.String("key", storeKey),
			slog.Duration("age", time.Duration(age)*time.Millisecond))
		c.delete(ctx, storeKey)
		return nil
	}

	slog.Info("[ResultCache] Cache hit",
		slog.String("product_id", key.ProductID))
	return &entry.Result
}

// Put stores a fresh analysis, overwriting whatever the key held.
func (c *ResultCache) Put(ctx context.Context, key AnalysisKey, result *models.ProductAnalysis) error {
	entry := models.CacheEntry{
		Timestamp: c.now().UnixMilli(),
		Result:    *result,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	storeKey := key.String()
	if err := c.store.Set(ctx, storeKey, string(data), ANALYSIS_TTL); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}

	slog.Info("[ResultCache] Stored analysis",
		slog.String("product_id", key.ProductID),
		slog.Int("aspects", len(key.Aspects)))
	return nil
}

func (c *ResultCache) delete(ctx context.Context, storeKey string) {
	if err := c.store.Delete(ctx, storeKey); err != nil {
		slog.Warn("[ResultCache] Failed to delete cache entry",
			slog.String("key", storeKey),
			slog.String("error", err.Error()))
	}
}
