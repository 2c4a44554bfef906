package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"itinera/internal/itinerary"
	dbm "itinera/internal/models/db_models"
)

type ItineraryRepository interface {
	// CreateFromDraft writes the itinerary and all of its items in one
	// transaction and returns the new id.
	CreateFromDraft(ctx context.Context, title string, draft itinerary.Draft) (uuid.UUID, error)
	GetDetailsOfItineraryById(ctx context.Context, itineraryId string) (*dbm.Itinerary, error)
}

type itineraryRepository struct {
	db *gorm.DB
}

func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &itineraryRepository{db: db}
}

func (r *itineraryRepository) CreateFromDraft(ctx context.Context, title string, draft itinerary.Draft) (uuid.UUID, error) {
	bounds := draft.Bounds()
	it := dbm.Itinerary{
		Title:     title,
		StartDate: datatypes.Date(bounds.StartDate),
		EndDate:   datatypes.Date(bounds.EndDate),
		TotalDays: bounds.TotalDays(),
		Travelers: draft.Travelers(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&it).Error; err != nil {
			return err
		}

		src := draft.Items()
		if len(src) == 0 {
			return nil
		}
		rows := make([]dbm.ItineraryItem, 0, len(src))
		for _, item := range src {
			rows = append(rows, toItemRow(it.ID, bounds.DateOf(item.DayNumber), item))
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return uuid.Nil, err
	}
	return it.ID, nil
}

func (r *itineraryRepository) GetDetailsOfItineraryById(ctx context.Context, itineraryId string) (*dbm.Itinerary, error) {
	var it dbm.Itinerary
	err := r.db.WithContext(ctx).
		Where("id = ?", itineraryId).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC, start_time ASC")
		}).
		First(&it).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &it, nil
}

func toItemRow(itineraryID uuid.UUID, date time.Time, item itinerary.Item) dbm.ItineraryItem {
	return dbm.ItineraryItem{
		ItineraryID:       itineraryID,
		ExperienceID:      item.ExperienceID,
		DayNumber:         item.DayNumber,
		Date:              datatypes.Date(date),
		StartTime:         item.StartTime,
		EndTime:           item.EndTime,
		CustomNote:        item.CustomNote,
		Name:              item.Snapshot.Name,
		Location:          item.Snapshot.Location,
		Price:             item.Snapshot.Price,
		PriceUnit:         item.Snapshot.PriceUnit,
		PriceEstimateText: item.Snapshot.PriceEstimateText,
		Images:            pq.StringArray(item.Snapshot.Images),
	}
}
