package api

import (
	"github.com/gin-gonic/gin"

	"itinera/internal/api/controllers"
)

func RegisterRoutes(r *gin.Engine,
	draftController *controllers.DraftController,
	experienceController *controllers.ExperienceController,
	itineraryController *controllers.ItineraryController) {

	draftGroup := r.Group("/drafts")
	draftGroup.POST("", draftController.CreateDraft)
	draftGroup.POST("/generate", draftController.GenerateDraft)
	draftGroup.GET("/:draftId", draftController.GetDraft)
	draftGroup.PUT("/:draftId/bounds", draftController.UpdateBounds)
	draftGroup.PUT("/:draftId/travelers", draftController.UpdateTravelers)
	draftGroup.POST("/:draftId/items", draftController.AddItem)
	draftGroup.DELETE("/:draftId/items", draftController.RemoveItem)
	draftGroup.PUT("/:draftId/items/reschedule", draftController.RescheduleItem)
	draftGroup.GET("/:draftId/days", draftController.GetDaySummaries)
	draftGroup.GET("/:draftId/days/:day", draftController.GetDay)
	draftGroup.GET("/:draftId/conflicts", draftController.GetConflicts)
	draftGroup.GET("/:draftId/budget", draftController.GetBudget)
	draftGroup.GET("/:draftId/availability/:experienceId", draftController.GetAvailability)
	draftGroup.POST("/:draftId/availability/:experienceId/select", draftController.SelectSlot)
	draftGroup.POST("/:draftId/finalize", draftController.FinalizeDraft)

	r.GET("/experiences", experienceController.BrowseExperiences)
	r.GET("/itineraries/:id", itineraryController.GetItineraryById)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
}
