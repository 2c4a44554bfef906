package request_models

// Dates are calendar dates in "2006-01-02" form; times are "HH:MM" (a
// trailing ":SS" is accepted and dropped).

type CreateDraftRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Travelers int    `json:"travelers" binding:"omitempty,min=1"`
}

type UpdateBoundsRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type UpdateTravelersRequest struct {
	Travelers int `json:"travelers" binding:"required,min=1"`
}

// SnapshotRequest carries the catalog fields the client saw when picking the
// experience.
type SnapshotRequest struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"`
	PriceUnit     string   `json:"price_unit"`
	PriceEstimate string   `json:"price_estimate"`
	Images        []string `json:"images"`
}

type AddItemRequest struct {
	ExperienceID string          `json:"experience_id" binding:"required"`
	DayNumber    int             `json:"day_number" binding:"required"`
	StartTime    string          `json:"start_time" binding:"required"`
	EndTime      string          `json:"end_time" binding:"required"`
	CustomNote   string          `json:"custom_note"`
	Snapshot     SnapshotRequest `json:"snapshot"`
}

type ItemKeyRequest struct {
	ExperienceID string `json:"experience_id" binding:"required"`
	DayNumber    int    `json:"day_number" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
}

type RescheduleItemRequest struct {
	Item         ItemKeyRequest `json:"item" binding:"required"`
	NewDayNumber int            `json:"new_day_number" binding:"required"`
	NewStartTime string         `json:"new_start_time" binding:"required"`
	NewEndTime   string         `json:"new_end_time" binding:"required"`
}

type SelectSlotRequest struct {
	DayNumber  int             `json:"day_number" binding:"required"`
	StartTime  string          `json:"start_time" binding:"required"`
	EndTime    string          `json:"end_time" binding:"required"`
	CustomNote string          `json:"custom_note"`
	Snapshot   SnapshotRequest `json:"snapshot"`

	// Editing names the item whose slot is being changed; nil adds a new one.
	Editing *ItemKeyRequest `json:"editing"`
}

type FinalizeDraftRequest struct {
	Title string `json:"title"`
}

type GenerateDraftRequest struct {
	Title             string   `json:"title"`
	City              string   `json:"city" binding:"required"`
	StartDate         string   `json:"start_date" binding:"required"`
	EndDate           string   `json:"end_date" binding:"required"`
	Travelers         int      `json:"travelers" binding:"omitempty,min=1"`
	ActivityTags      []string `json:"activity_tags"`
	CompanionType     string   `json:"companion_type"`
	TimeOfDay         string   `json:"time_of_day"`
	BudgetTier        string   `json:"budget_tier"`
	Intensity         string   `json:"intensity"`
	DistanceTolerance string   `json:"distance_tolerance"`
}
