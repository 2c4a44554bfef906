package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service errors onto HTTP responses. Draft
// rejections keep their message so the client can show which activity
// blocked the change.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTimeConflict),
		errors.Is(err, ErrDuplicateItem):
		RespondError(c, http.StatusConflict, err.Error())

	case errors.Is(err, ErrMalformedTime),
		errors.Is(err, ErrInvalidTimeRange),
		errors.Is(err, ErrInvalidBounds),
		errors.Is(err, ErrDayOutOfRange),
		errors.Is(err, ErrOrphanedItems),
		errors.Is(err, ErrEmptyDraft):
		RespondError(c, http.StatusUnprocessableEntity, err.Error())

	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, err.Error())

	case errors.Is(err, ErrDraftNotFound),
		errors.Is(err, ErrItineraryNotFound),
		errors.Is(err, ErrItemNotFound):
		RespondError(c, http.StatusNotFound, err.Error())

	case errors.Is(err, ErrAvailabilityUnavailable),
		errors.Is(err, ErrCatalogUnavailable),
		errors.Is(err, ErrGenerationUnavailable):
		zap.L().Warn("upstream unavailable", zap.String("trace_id", traceID(c)), zap.Error(err))
		c.Header("Retry-After", "5")
		RespondError(c, http.StatusServiceUnavailable, err.Error()+", please retry")

	case errors.Is(err, ErrNoGenerationResults):
		c.JSON(http.StatusOK, APIResponse{
			Status:  "no_results",
			Code:    http.StatusOK,
			Message: err.Error(),
			TraceID: traceID(c),
		})

	case errors.Is(err, ErrDatabaseError):
		zap.L().Error("database error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")

	default:
		zap.L().Error("unhandled service error", zap.String("trace_id", traceID(c)), zap.Error(err))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
