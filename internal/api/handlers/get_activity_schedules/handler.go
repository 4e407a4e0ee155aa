package get_activity_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings"
)

const (
	msgInvalidActivityID = "некорректный идентификатор активности"
	msgActivityNotFound  = "активность не найдена"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/schedules
// Возвращает будущие расписания активности с заполненностью по броням
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{activityId}/schedules - Invalid activity id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	result, err := h.service.GetAvailableSchedulesByActivity(r.Context(), activityID)
	if err != nil {
		if errors.Is(err, bookings.ErrActivityNotFound) {
			h.logger.Warn("GET /activities/%d/schedules - Activity not found", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)
			return
		}
		h.logger.Error("GET /activities/%d/schedules - Failed to fetch schedules: %v", activityID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /activities/%d/schedules - Returned %d schedules", activityID, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
