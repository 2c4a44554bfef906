package memcache_fx

import (
	"context"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinera/internal/config"
	"itinera/internal/services"
	mem "itinera/pkg/memcache"
)

var Module = fx.Provide(provideDraftSessions)

const sweepInterval = time.Minute

// provideDraftSessions builds the draft session store and runs a janitor that
// drops expired drafts for the lifetime of the app.
func provideDraftSessions(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) mem.SessionStore[services.DraftSession] {
	store := mem.NewSessions[services.DraftSession](cfg.DraftTTL)

	stop := make(chan struct{})
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(sweepInterval)
				defer ticker.Stop()
				for {
					select {
					case <-stop:
						return
					case <-ticker.C:
						if n := store.Sweep(); n > 0 {
							logger.Debug("expired drafts swept", zap.Int("count", n))
						}
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(stop)
			return nil
		},
	})
	return store
}
