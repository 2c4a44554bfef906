package response_models

import (
	"encoding/json"

	"itinera/internal/itinerary"
)

type DraftResponse struct {
	DraftID   string        `json:"draft_id"`
	Title     string        `json:"title,omitempty"`
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	TotalDays int           `json:"total_days"`
	Travelers int           `json:"travelers"`
	ItemCount int           `json:"item_count"`
	Days      []DayResponse `json:"days"`

	// Orphans are items left outside the trip after the dates were narrowed.
	// Finalizing is refused while any remain.
	Orphans []ItemResponse `json:"orphans,omitempty"`
}

type DayResponse struct {
	DayNumber       int             `json:"day_number"`
	Date            string          `json:"date"`
	IsEmpty         bool            `json:"is_empty"`
	OccupiedMinutes int             `json:"occupied_minutes"`
	Items           []ItemResponse  `json:"items"`
	Gaps            []itinerary.Gap `json:"gaps,omitempty"`
}

type ItemResponse struct {
	ExperienceID  string   `json:"experience_id"`
	DayNumber     int      `json:"day_number"`
	StartTime     string   `json:"start_time"`
	EndTime       string   `json:"end_time"`
	DisplayTime   string   `json:"display_time"`
	Duration      string   `json:"duration"`
	CustomNote    string   `json:"custom_note,omitempty"`
	Name          string   `json:"name"`
	Location      string   `json:"location,omitempty"`
	Price         float64  `json:"price,omitempty"`
	PriceUnit     string   `json:"price_unit,omitempty"`
	PriceEstimate string   `json:"price_estimate,omitempty"`
	Images        []string `json:"images,omitempty"`
}

type DaySummaryResponse struct {
	DayNumber       int    `json:"day_number"`
	Date            string `json:"date"`
	ItemCount       int    `json:"item_count"`
	IsEmpty         bool   `json:"is_empty"`
	OccupiedMinutes int    `json:"occupied_minutes"`
	Occupied        string `json:"occupied"`
}

type ConflictsResponse struct {
	HasConflict bool           `json:"has_conflict"`
	Conflicts   []ItemResponse `json:"conflicts"`
}

type SlotResponse struct {
	StartTime     string             `json:"start_time"`
	EndTime       string             `json:"end_time"`
	DisplayTime   string             `json:"display_time"`
	Selectable    bool               `json:"selectable"`
	BlockedBy     *itinerary.ItemKey `json:"blocked_by,omitempty"`
	BlockedByName string             `json:"blocked_by_name,omitempty"`
}

type AvailabilityResponse struct {
	ExperienceID string         `json:"experience_id"`
	DayNumber    int            `json:"day_number"`
	Date         string         `json:"date"`
	Weekday      string         `json:"weekday"`
	Loaded       bool           `json:"loaded"`
	Offered      bool           `json:"offered"`
	Slots        []SlotResponse `json:"slots"`
}

type SelectSlotResponse struct {
	Item  ItemResponse  `json:"item"`
	Draft DraftResponse `json:"draft"`
}

type FinalizeResponse struct {
	ItineraryID string `json:"itinerary_id"`
}

// RejectedItem is a generated activity the draft refused, with the reason.
type RejectedItem struct {
	Item   ItemResponse `json:"item"`
	Reason string       `json:"reason"`
}

type GenerateResponse struct {
	Status     string          `json:"status"` // "ok" or "no_results"
	Draft      *DraftResponse  `json:"draft,omitempty"`
	Rejected   []RejectedItem  `json:"rejected,omitempty"`
	Diagnostic json.RawMessage `json:"diagnostic,omitempty"`
}
