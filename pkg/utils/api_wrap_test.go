package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandleServiceError_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err  error
		code int
	}{
		{fmt.Errorf("wrapped: %w", ErrTimeConflict), http.StatusConflict},
		{ErrDuplicateItem, http.StatusConflict},
		{ErrMalformedTime, http.StatusUnprocessableEntity},
		{ErrDayOutOfRange, http.StatusUnprocessableEntity},
		{ErrOrphanedItems, http.StatusUnprocessableEntity},
		{ErrEmptyDraft, http.StatusUnprocessableEntity},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrDraftNotFound, http.StatusNotFound},
		{ErrItineraryNotFound, http.StatusNotFound},
		{ErrAvailabilityUnavailable, http.StatusServiceUnavailable},
		{ErrNoGenerationResults, http.StatusOK},
		{ErrDatabaseError, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("trace_id", "t-1")

		HandleServiceError(c, tt.err)

		if w.Code != tt.code {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.code, w.Code)
		}
		var body APIResponse
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: decode: %v", tt.err, err)
		}
		if body.TraceID != "t-1" || body.Code != tt.code {
			t.Fatalf("%v: unexpected envelope %+v", tt.err, body)
		}
	}
}

func TestRespondSuccess_WithoutTraceID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondSuccess(c, map[string]int{"n": 1}, "ok")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
