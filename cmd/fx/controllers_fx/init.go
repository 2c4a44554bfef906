package controllers_fx

import (
	"go.uber.org/fx"

	"itinera/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewDraftController),
	fx.Provide(controllers.NewExperienceController),
	fx.Provide(controllers.NewItineraryController))
