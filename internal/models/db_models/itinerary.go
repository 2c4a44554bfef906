package db_models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Itinerary is a committed draft. Rows are written once, in a single
// transaction, and never partially.
type Itinerary struct {
	BaseModel
	Title     string
	StartDate datatypes.Date `gorm:"not null"`
	EndDate   datatypes.Date `gorm:"not null"`
	TotalDays int
	Travelers int `gorm:"default:1"`

	Items []ItineraryItem `gorm:"foreignKey:ItineraryID"`
}

// ItineraryItem stores the item together with the catalog snapshot taken when
// it was added to the draft.
type ItineraryItem struct {
	BaseModel
	ItineraryID  uuid.UUID      `gorm:"type:uuid;index;not null"`
	ExperienceID string         `gorm:"index;not null"`
	DayNumber    int            `gorm:"not null"`
	Date         datatypes.Date `gorm:"not null"`
	StartTime    string         `gorm:"size:5;not null"`
	EndTime      string         `gorm:"size:5;not null"`
	CustomNote   string

	Name              string
	Location          string
	Price             float64
	PriceUnit         string
	PriceEstimateText string
	Images            pq.StringArray `gorm:"type:text[]"`
}
