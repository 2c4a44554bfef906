package redis_fx

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinera/internal/config"
	"itinera/internal/infra"
)

var Module = fx.Provide(provideRedis)

// provideRedis yields a nil client when Redis is not configured or not
// reachable; consumers treat nil as "no shared cache".
func provideRedis(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) *redis.Client {
	rdb := infra.InitRedis(cfg, logger)
	if rdb != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return rdb.Close()
			},
		})
	}
	return rdb
}
