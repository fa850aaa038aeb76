package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/registryhq/birth-registry/internal/core/domain"
)

const (
	detailListKey = "details:all"
	detailListTTL = 5 * time.Minute
)

// DetailListCache caches the serialized birth detail listing. Every mutation
// invalidates the whole key; with one flat listing endpoint that is cheaper
// than tracking entries individually.
type DetailListCache struct {
	client *redis.Client
}

// NewDetailListCache creates a DetailListCache wrapping the given Redis client.
func NewDetailListCache(client *redis.Client) *DetailListCache {
	return &DetailListCache{client: client}
}

// Get returns the cached listing and whether the cache held one.
func (c *DetailListCache) Get(ctx context.Context) ([]*domain.BirthDetail, bool, error) {
	payload, err := c.client.Get(ctx, detailListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("detail cache get: %w", err)
	}

	var details []*domain.BirthDetail
	if err := json.Unmarshal(payload, &details); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		return nil, false, fmt.Errorf("detail cache decode: %w", err)
	}
	return details, true, nil
}

// Set stores the listing, replacing any previous value (expires after detailListTTL).
func (c *DetailListCache) Set(ctx context.Context, details []*domain.BirthDetail) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("detail cache encode: %w", err)
	}
	if err := c.client.Set(ctx, detailListKey, payload, detailListTTL).Err(); err != nil {
		return fmt.Errorf("detail cache set: %w", err)
	}
	return nil
}

// Invalidate drops the cached listing.
func (c *DetailListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, detailListKey).Err(); err != nil {
		return fmt.Errorf("detail cache invalidate: %w", err)
	}
	return nil
}
