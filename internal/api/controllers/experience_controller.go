package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"itinera/internal/services"
	"itinera/pkg/utils"
)

type ExperienceController struct {
	experienceService services.ExperienceServiceInterface
}

func NewExperienceController(experienceService services.ExperienceServiceInterface) *ExperienceController {
	return &ExperienceController{experienceService: experienceService}
}

// BrowseExperiences godoc
// @Summary Browse the experience catalog
// @Tags Experience
// @Produce json
// @Param city query string false "City"
// @Param search query string false "Free text search"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20) minimum(1) maximum(100)
// @Success 200 {array} response_models.ExperienceResponse
// @Failure 503 {object} utils.APIResponse
// @Router /experiences [get]
func (e *ExperienceController) BrowseExperiences(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	list, err := e.experienceService.BrowseExperiences(c.Request.Context(), c.Query("city"), c.Query("search"), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, list, "Experiences fetched successfully")
}
