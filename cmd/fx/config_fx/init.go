package config_fx

import (
	"go.uber.org/fx"

	"itinera/internal/config"
)

var Module = fx.Provide(config.Load)
