package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"itinera/internal/itinerary"
	"itinera/internal/models/request_models"
	"itinera/internal/services"
	"itinera/pkg/utils"
)

type DraftController struct {
	draftService services.DraftServiceInterface
}

func NewDraftController(draftService services.DraftServiceInterface) *DraftController {
	return &DraftController{
		draftService: draftService,
	}
}

// CreateDraft godoc
// @Summary Start a new itinerary draft
// @Tags Draft
// @Accept json
// @Produce json
// @Param request body request_models.CreateDraftRequest true "Trip dates and traveler count"
// @Success 200 {object} response_models.DraftResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /drafts [post]
func (d *DraftController) CreateDraft(c *gin.Context) {
	var req request_models.CreateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	draft, err := d.draftService.CreateDraft(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Draft created successfully")
}

// GetDraft godoc
// @Summary Get a draft grouped by day
// @Tags Draft
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} response_models.DraftResponse
// @Failure 404 {object} utils.APIResponse
// @Router /drafts/{draftId} [get]
func (d *DraftController) GetDraft(c *gin.Context) {
	draft, err := d.draftService.GetDraft(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Draft fetched successfully")
}

// UpdateBounds godoc
// @Summary Change the trip dates
// @Description Items that fall outside the new dates stay on the draft as orphans and block finalizing.
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body request_models.UpdateBoundsRequest true "New trip dates"
// @Success 200 {object} response_models.DraftResponse
// @Router /drafts/{draftId}/bounds [put]
func (d *DraftController) UpdateBounds(c *gin.Context) {
	var req request_models.UpdateBoundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	draft, err := d.draftService.UpdateBounds(c.Request.Context(), c.Param("draftId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Trip dates updated successfully")
}

// UpdateTravelers godoc
// @Summary Change the traveler count
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body request_models.UpdateTravelersRequest true "Traveler count"
// @Success 200 {object} response_models.DraftResponse
// @Router /drafts/{draftId}/travelers [put]
func (d *DraftController) UpdateTravelers(c *gin.Context) {
	var req request_models.UpdateTravelersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "travelers must be at least 1")
		return
	}

	draft, err := d.draftService.UpdateTravelers(c.Request.Context(), c.Param("draftId"), req.Travelers)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Travelers updated successfully")
}

// AddItem godoc
// @Summary Add an activity to a day
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body request_models.AddItemRequest true "Activity and time range"
// @Success 200 {object} response_models.DraftResponse
// @Failure 409 {object} utils.APIResponse "Overlaps an existing activity"
// @Failure 422 {object} utils.APIResponse
// @Router /drafts/{draftId}/items [post]
func (d *DraftController) AddItem(c *gin.Context) {
	var req request_models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "experience_id, day_number, start_time and end_time are required")
		return
	}

	draft, err := d.draftService.AddItem(c.Request.Context(), c.Param("draftId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Activity added successfully")
}

// RemoveItem godoc
// @Summary Remove an activity
// @Description Removing an activity that is not on the draft succeeds without changes.
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body request_models.ItemKeyRequest true "Activity key"
// @Success 200 {object} response_models.DraftResponse
// @Router /drafts/{draftId}/items [delete]
func (d *DraftController) RemoveItem(c *gin.Context) {
	var req request_models.ItemKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "experience_id, day_number and start_time are required")
		return
	}

	draft, err := d.draftService.RemoveItem(c.Request.Context(), c.Param("draftId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Activity removed successfully")
}

// RescheduleItem godoc
// @Summary Move an activity to another day or time
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body request_models.RescheduleItemRequest true "Activity key and new placement"
// @Success 200 {object} response_models.DraftResponse
// @Failure 409 {object} utils.APIResponse
// @Router /drafts/{draftId}/items/reschedule [put]
func (d *DraftController) RescheduleItem(c *gin.Context) {
	var req request_models.RescheduleItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "item, new_day_number, new_start_time and new_end_time are required")
		return
	}

	draft, err := d.draftService.RescheduleItem(c.Request.Context(), c.Param("draftId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, draft, "Activity rescheduled successfully")
}

// GetDaySummaries godoc
// @Summary Per-day item counts and occupied time
// @Tags Draft
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {array} response_models.DaySummaryResponse
// @Router /drafts/{draftId}/days [get]
func (d *DraftController) GetDaySummaries(c *gin.Context) {
	days, err := d.draftService.GetDaySummaries(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, days, "Days fetched successfully")
}

// GetDay godoc
// @Summary Activities of one day with the gaps between them
// @Tags Draft
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param day path int true "Day number, 1-based"
// @Success 200 {object} response_models.DayResponse
// @Router /drafts/{draftId}/days/{day} [get]
func (d *DraftController) GetDay(c *gin.Context) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day number")
		return
	}

	res, err := d.draftService.GetDay(c.Request.Context(), c.Param("draftId"), day)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Day fetched successfully")
}

// GetConflicts godoc
// @Summary List activities overlapping a candidate time range
// @Tags Draft
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param day query int true "Day number"
// @Param start query string true "Start time HH:MM"
// @Param end query string true "End time HH:MM"
// @Param exclude_experience_id query string false "Activity being edited"
// @Param exclude_day query int false "Day of the activity being edited"
// @Param exclude_start query string false "Start of the activity being edited"
// @Success 200 {object} response_models.ConflictsResponse
// @Router /drafts/{draftId}/conflicts [get]
func (d *DraftController) GetConflicts(c *gin.Context) {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day number")
		return
	}
	start, end := c.Query("start"), c.Query("end")
	if start == "" || end == "" {
		utils.RespondError(c, http.StatusBadRequest, "start and end are required")
		return
	}
	exclude, err := keyFromQuery(c, "exclude")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	res, err := d.draftService.GetConflicts(c.Request.Context(), c.Param("draftId"), day, start, end, exclude)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Conflicts checked successfully")
}

// GetBudget godoc
// @Summary Estimated cost range of the draft
// @Tags Draft
// @Produce json
// @Param draftId path string true "Draft ID"
// @Success 200 {object} itinerary.Budget
// @Router /drafts/{draftId}/budget [get]
func (d *DraftController) GetBudget(c *gin.Context) {
	budget, err := d.draftService.GetBudget(c.Request.Context(), c.Param("draftId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, budget, "Budget estimated successfully")
}

// GetAvailability godoc
// @Summary Bookable slots of an experience on a trip day
// @Description Slots blocked by an activity already on that day are returned with selectable=false and the blocking activity.
// @Tags Draft
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param experienceId path string true "Experience ID"
// @Param day query int true "Day number"
// @Param editing_experience_id query string false "Activity being edited"
// @Param editing_day query int false "Day of the activity being edited"
// @Param editing_start query string false "Start of the activity being edited"
// @Param refresh query bool false "Refetch availability from the catalog"
// @Success 200 {object} response_models.AvailabilityResponse
// @Failure 503 {object} utils.APIResponse "Catalog unreachable, retry"
// @Router /drafts/{draftId}/availability/{experienceId} [get]
func (d *DraftController) GetAvailability(c *gin.Context) {
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day number")
		return
	}
	editing, err := keyFromQuery(c, "editing")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	refresh := false
	if raw := c.Query("refresh"); raw != "" {
		if refresh, err = strconv.ParseBool(raw); err != nil {
			utils.RespondError(c, http.StatusBadRequest, "Invalid refresh flag")
			return
		}
	}

	res, err := d.draftService.GetAvailability(c.Request.Context(), c.Param("draftId"), c.Param("experienceId"), day, editing, refresh)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Availability fetched successfully")
}

// SelectSlot godoc
// @Summary Place an experience on one of its offered slots
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param experienceId path string true "Experience ID"
// @Param request body request_models.SelectSlotRequest true "Slot and optional activity being edited"
// @Success 200 {object} response_models.SelectSlotResponse
// @Failure 409 {object} utils.APIResponse
// @Router /drafts/{draftId}/availability/{experienceId}/select [post]
func (d *DraftController) SelectSlot(c *gin.Context) {
	var req request_models.SelectSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "day_number, start_time and end_time are required")
		return
	}

	res, err := d.draftService.SelectSlot(c.Request.Context(), c.Param("draftId"), c.Param("experienceId"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Slot selected successfully")
}

// FinalizeDraft godoc
// @Summary Commit the draft as an itinerary
// @Tags Draft
// @Accept json
// @Produce json
// @Param draftId path string true "Draft ID"
// @Param request body request_models.FinalizeDraftRequest false "Optional title"
// @Success 200 {object} response_models.FinalizeResponse
// @Failure 422 {object} utils.APIResponse "Empty draft or activities outside the trip dates"
// @Router /drafts/{draftId}/finalize [post]
func (d *DraftController) FinalizeDraft(c *gin.Context) {
	var req request_models.FinalizeDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	res, err := d.draftService.FinalizeDraft(c.Request.Context(), c.Param("draftId"), req.Title)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Itinerary saved successfully")
}

// GenerateDraft godoc
// @Summary Generate a draft from travel preferences
// @Description When nothing matches, status is "no_results" and the diagnostic explains which filters emptied the candidate list.
// @Tags Draft
// @Accept json
// @Produce json
// @Param request body request_models.GenerateDraftRequest true "City, dates and preferences"
// @Success 200 {object} response_models.GenerateResponse
// @Failure 503 {object} utils.APIResponse
// @Router /drafts/generate [post]
func (d *DraftController) GenerateDraft(c *gin.Context) {
	var req request_models.GenerateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "city, start_date and end_date are required")
		return
	}

	res, err := d.draftService.GenerateDraft(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, res, "Draft generated")
}

// keyFromQuery reads <prefix>_experience_id, <prefix>_day and <prefix>_start.
// All three absent means no key.
func keyFromQuery(c *gin.Context, prefix string) (*itinerary.ItemKey, error) {
	id := c.Query(prefix + "_experience_id")
	dayStr := c.Query(prefix + "_day")
	start := c.Query(prefix + "_start")
	if id == "" && dayStr == "" && start == "" {
		return nil, nil
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil || id == "" || start == "" {
		return nil, errors.New(prefix + "_experience_id, " + prefix + "_day and " + prefix + "_start must be given together")
	}
	return &itinerary.ItemKey{ExperienceID: id, DayNumber: day, StartTime: start}, nil
}
