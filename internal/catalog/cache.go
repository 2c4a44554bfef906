package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"itinera/internal/itinerary"
)

const availabilityKeyPrefix = "catalog:availability:"

// CachedClient puts a shared Redis cache in front of availability fetches.
// Redis errors are logged and fall through to the wrapped client.
type CachedClient struct {
	Client
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// WithRedisCache returns next unchanged when rdb is nil.
func WithRedisCache(next Client, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) Client {
	if rdb == nil {
		return next
	}
	return &CachedClient{Client: next, rdb: rdb, ttl: ttl, logger: logger}
}

func (c *CachedClient) FetchAvailability(ctx context.Context, experienceID string) ([]itinerary.AvailabilityDay, error) {
	key := availabilityKeyPrefix + experienceID

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var days []itinerary.AvailabilityDay
		if jsonErr := json.Unmarshal(raw, &days); jsonErr == nil {
			return days, nil
		}
	case err != redis.Nil:
		c.logger.Warn("redis availability read failed", zap.String("key", key), zap.Error(err))
	}

	days, err := c.Client.FetchAvailability(ctx, experienceID)
	if err != nil {
		return nil, err
	}

	if payload, jsonErr := json.Marshal(days); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("redis availability write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return days, nil
}
