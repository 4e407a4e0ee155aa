package get_space_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings"
)

const (
	msgInvalidScheduleID = "некорректный идентификатор расписания"
	msgScheduleNotFound  = "расписание не найдено"
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

// Handle GET /api/v1/activities/schedules/{scheduleId}/availability
// Свободные места по модели бронирований: partySize минус занятые места
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/schedules/{scheduleId}/availability - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	result, err := h.service.GetSpaceAvailability(r.Context(), scheduleID)
	if err != nil {
		if errors.Is(err, bookings.ErrScheduleNotFound) {
			h.logger.Warn("GET /activities/schedules/%d/availability - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)
			return
		}
		h.logger.Error("GET /activities/schedules/%d/availability - Failed to fetch availability: %v", scheduleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /activities/schedules/%d/availability - available=%d", scheduleID, result.AvailableSpaces)
	handlers.RespondJSON(w, http.StatusOK, result)
}
