// Package itinerary holds the day-scheduling and time-conflict rules for a trip
// draft. Nothing in this package performs I/O.
package itinerary

import (
	"fmt"
	"time"

	"itinera/pkg/utils"
)

// ExperienceSnapshot is the catalog data copied onto an item when it is added.
// It is not refreshed afterwards: a price change in the catalog does not reach
// items already on the draft.
type ExperienceSnapshot struct {
	Name              string    `json:"name"`
	Location          string    `json:"location,omitempty"`
	Price             float64   `json:"price,omitempty"`
	PriceUnit         string    `json:"price_unit,omitempty"`
	PriceEstimateText string    `json:"price_estimate_text,omitempty"`
	Images            []string  `json:"images,omitempty"`
	CapturedAt        time.Time `json:"captured_at"`
}

// ItemKey identifies an item until the server assigns ids on commit.
type ItemKey struct {
	ExperienceID string `json:"experience_id"`
	DayNumber    int    `json:"day_number"`
	StartTime    string `json:"start_time"`
}

func (k ItemKey) String() string {
	return fmt.Sprintf("%s@day%d/%s", k.ExperienceID, k.DayNumber, k.StartTime)
}

type Item struct {
	ExperienceID string             `json:"experience_id"`
	DayNumber    int                `json:"day_number"`
	StartTime    string             `json:"start_time"`
	EndTime      string             `json:"end_time"`
	CustomNote   string             `json:"custom_note,omitempty"`
	Snapshot     ExperienceSnapshot `json:"snapshot"`
}

func (it Item) Key() ItemKey {
	return ItemKey{ExperienceID: it.ExperienceID, DayNumber: it.DayNumber, StartTime: it.StartTime}
}

// DisplayName falls back to the experience id when no snapshot name was captured.
func (it Item) DisplayName() string {
	if it.Snapshot.Name != "" {
		return it.Snapshot.Name
	}
	return "experience " + it.ExperienceID
}

func (it Item) Range() (Range, error) {
	return NewRange(it.StartTime, it.EndTime)
}

// Range is a half-open [Start, End) interval in minutes since midnight.
type Range struct {
	Start int
	End   int
}

// NewRange parses both clock values and rejects zero-length or inverted ranges.
func NewRange(start, end string) (Range, error) {
	s, err := utils.ToMinutes(start)
	if err != nil {
		return Range{}, err
	}
	e, err := utils.ToMinutes(end)
	if err != nil {
		return Range{}, err
	}
	if e <= s {
		return Range{}, fmt.Errorf("%w: %s-%s", utils.ErrInvalidTimeRange, start, end)
	}
	return Range{Start: s, End: e}, nil
}

func (r Range) Minutes() int { return r.End - r.Start }

type TimeSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// AvailabilityDay is one weekday's recurring offer for an experience.
type AvailabilityDay struct {
	DayOfWeek string     `json:"dayOfWeek"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// TripBounds are inclusive calendar dates; time-of-day is ignored.
type TripBounds struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

func NewTripBounds(start, end time.Time) (TripBounds, error) {
	b := TripBounds{StartDate: utils.DateOnly(start), EndDate: utils.DateOnly(end)}
	if b.EndDate.Before(b.StartDate) {
		return TripBounds{}, utils.ErrInvalidBounds
	}
	return b, nil
}

// TotalDays is recomputed from the dates on every call.
func (b TripBounds) TotalDays() int {
	return utils.DaysBetween(b.StartDate, b.EndDate) + 1
}

// DateOf returns the calendar date of a 1-based day number.
func (b TripBounds) DateOf(dayNumber int) time.Time {
	return utils.DateOnly(b.StartDate).AddDate(0, 0, dayNumber-1)
}

func (b TripBounds) Contains(dayNumber int) bool {
	return dayNumber >= 1 && dayNumber <= b.TotalDays()
}
