package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"itinera/internal/services"
	"itinera/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{itineraryService: itineraryService}
}

// GetItineraryById godoc
// @Summary Get a committed itinerary
// @Tags Itinerary
// @Produce json
// @Param id path string true "Itinerary ID"
// @Success 200 {object} response_models.ItineraryDetailResponse
// @Failure 404 {object} utils.APIResponse
// @Router /itineraries/{id} [get]
func (i *ItineraryController) GetItineraryById(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		utils.RespondError(c, http.StatusBadRequest, "Itinerary ID is required")
		return
	}

	it, err := i.itineraryService.GetItineraryById(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, it, "Itinerary fetched successfully")
}
