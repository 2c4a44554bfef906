package catalog_fx

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"itinera/internal/catalog"
	"itinera/internal/config"
	"itinera/internal/services"
)

var Module = fx.Provide(provideCatalogClient, provideExperienceService)

func provideCatalogClient(cfg config.Config, rdb *redis.Client, logger *zap.Logger) catalog.Client {
	limit := rate.Inf
	if cfg.CatalogRatePerSec > 0 {
		limit = rate.Limit(cfg.CatalogRatePerSec)
	}
	burst := cfg.CatalogBurst
	if burst < 1 {
		burst = 1
	}

	client := catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, rate.NewLimiter(limit, burst), logger)
	return catalog.WithRedisCache(client, rdb, cfg.CatalogCacheTTL, logger)
}

func provideExperienceService(client catalog.Client) services.ExperienceServiceInterface {
	return services.NewExperienceService(client)
}
