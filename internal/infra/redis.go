package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"itinera/internal/config"
)

// InitRedis returns nil when REDIS_ADDR is unset; the shared catalog cache is
// optional. A configured but unreachable Redis is logged and also skipped.
func InitRedis(cfg config.Config, logger *zap.Logger) *redis.Client {
	if cfg.RedisAddr == "" {
		logger.Info("REDIS_ADDR not set, shared catalog cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("Failed to connect to Redis, shared catalog cache disabled", zap.Error(err))
		_ = client.Close()
		return nil
	}
	return client
}
