package itinerary_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"itinera/internal/repositories"
	"itinera/internal/services"
)

var Module = fx.Provide(
	provideItineraryRepo,
	provideItineraryService,
	services.NewDraftService,
)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func provideItineraryService(itineraryRepo repositories.ItineraryRepository) services.ItineraryServiceInterface {
	return services.NewItineraryService(itineraryRepo)
}
