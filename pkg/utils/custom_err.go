package utils

import "errors"

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrDatabaseError = errors.New("database error")

	ErrMalformedTime    = errors.New("malformed time")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidBounds    = errors.New("trip end date is before start date")
	ErrDayOutOfRange    = errors.New("day number is outside the trip")
	ErrTimeConflict     = errors.New("time conflict")
	ErrDuplicateItem    = errors.New("item already exists")
	ErrItemNotFound     = errors.New("item not found")
	ErrOrphanedItems    = errors.New("itinerary has items outside the trip dates")
	ErrEmptyDraft       = errors.New("itinerary has no items")

	ErrDraftNotFound           = errors.New("draft not found")
	ErrItineraryNotFound       = errors.New("itinerary not found")
	ErrAvailabilityUnavailable = errors.New("availability is temporarily unavailable")
	ErrCatalogUnavailable      = errors.New("experience catalog is unavailable")
	ErrGenerationUnavailable   = errors.New("itinerary generation is unavailable")
	ErrNoGenerationResults     = errors.New("no itinerary could be generated")
)
