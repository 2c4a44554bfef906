package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"itinera/internal/config"
	"itinera/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideLogger),
	fx.Invoke(registerLogger),
)

func provideLogger(cfg config.Config) (*zap.Logger, error) {
	return utils.NewLogger(cfg.IsProduction())
}

// registerLogger makes the logger reachable through zap.L() and flushes it on
// shutdown.
func registerLogger(lc fx.Lifecycle, logger *zap.Logger) {
	undo := zap.ReplaceGlobals(logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			undo()
			_ = logger.Sync()
			return nil
		},
	})
}
