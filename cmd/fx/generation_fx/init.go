package generation_fx

import (
	"go.uber.org/fx"

	"itinera/internal/config"
	"itinera/internal/generation"
)

var Module = fx.Provide(provideGenerationClient)

func provideGenerationClient(cfg config.Config) generation.Client {
	return generation.NewHTTPClient(cfg.GenerationBaseURL, cfg.GenerationTimeout)
}
