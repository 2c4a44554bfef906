package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	dbm "itinera/internal/models/db_models"
	"itinera/internal/models/response_models"
	"itinera/internal/repositories"
	"itinera/pkg/utils"
)

type ItineraryServiceInterface interface {
	GetItineraryById(ctx context.Context, itineraryId string) (*response_models.ItineraryDetailResponse, error)
}

type ItineraryService struct {
	itineraryRepo repositories.ItineraryRepository
}

func NewItineraryService(itineraryRepo repositories.ItineraryRepository) ItineraryServiceInterface {
	return &ItineraryService{itineraryRepo: itineraryRepo}
}

func (i *ItineraryService) GetItineraryById(ctx context.Context, itineraryId string) (*response_models.ItineraryDetailResponse, error) {
	if _, err := uuid.Parse(itineraryId); err != nil {
		return nil, utils.ErrInvalidInput
	}

	it, err := i.itineraryRepo.GetDetailsOfItineraryById(ctx, itineraryId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if it == nil {
		return nil, utils.ErrItineraryNotFound
	}

	return mapItineraryToDetail(it), nil
}

// mapItineraryToDetail groups the stored rows by day. Every day of the trip
// gets an entry, empty or not.
func mapItineraryToDetail(it *dbm.Itinerary) *response_models.ItineraryDetailResponse {
	start := time.Time(it.StartDate)

	days := make([]response_models.ItineraryDayResponse, 0, it.TotalDays)
	for n := 1; n <= it.TotalDays; n++ {
		days = append(days, response_models.ItineraryDayResponse{
			DayNumber: n,
			Date:      utils.FormatDate(utils.DateOnly(start).AddDate(0, 0, n-1)),
			Items:     []response_models.ItineraryItemResponse{},
		})
	}

	for _, row := range it.Items {
		if row.DayNumber < 1 || row.DayNumber > len(days) {
			continue
		}
		day := &days[row.DayNumber-1]
		day.Items = append(day.Items, response_models.ItineraryItemResponse{
			ID:            row.ID,
			ExperienceID:  row.ExperienceID,
			StartTime:     row.StartTime,
			EndTime:       row.EndTime,
			CustomNote:    row.CustomNote,
			Name:          row.Name,
			Location:      row.Location,
			Price:         row.Price,
			PriceUnit:     row.PriceUnit,
			PriceEstimate: row.PriceEstimateText,
			Images:        row.Images,
		})
	}

	return &response_models.ItineraryDetailResponse{
		ID:         it.ID,
		Title:      it.Title,
		StartDate:  utils.FormatDate(start),
		EndDate:    utils.FormatDate(time.Time(it.EndDate)),
		TotalDays:  it.TotalDays,
		Travelers:  it.Travelers,
		TotalItems: len(it.Items),
		Days:       days,
	}
}
