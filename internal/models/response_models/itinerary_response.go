package response_models

import "github.com/google/uuid"

// ItineraryDetailResponse is a committed itinerary read back from storage.
type ItineraryDetailResponse struct {
	ID         uuid.UUID              `json:"id"`
	Title      string                 `json:"title"`
	StartDate  string                 `json:"start_date"`
	EndDate    string                 `json:"end_date"`
	TotalDays  int                    `json:"total_days"`
	Travelers  int                    `json:"travelers"`
	TotalItems int                    `json:"total_items"`
	Days       []ItineraryDayResponse `json:"days"`
}

type ItineraryDayResponse struct {
	DayNumber int                     `json:"day_number"`
	Date      string                  `json:"date"`
	Items     []ItineraryItemResponse `json:"items"`
}

type ItineraryItemResponse struct {
	ID            uuid.UUID `json:"id"`
	ExperienceID  string    `json:"experience_id"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	CustomNote    string    `json:"custom_note,omitempty"`
	Name          string    `json:"name"`
	Location      string    `json:"location,omitempty"`
	Price         float64   `json:"price,omitempty"`
	PriceUnit     string    `json:"price_unit,omitempty"`
	PriceEstimate string    `json:"price_estimate,omitempty"`
	Images        []string  `json:"images,omitempty"`
}

type ExperienceResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Location      string   `json:"location,omitempty"`
	Price         float64  `json:"price,omitempty"`
	PriceUnit     string   `json:"price_unit,omitempty"`
	PriceEstimate string   `json:"price_estimate,omitempty"`
	Images        []string `json:"images,omitempty"`
}
