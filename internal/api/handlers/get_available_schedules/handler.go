package get_available_schedules

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules"
)

const (
	msgInvalidActivityID = "некорректный идентификатор активности"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateRequired      = "параметр date обязателен"
	msgActivityNotFound  = "активность не найдена"
)

type Handler struct {
	service SchedulesService
	logger  Logger
}

func NewHandler(service SchedulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/activities/{activityId}/schedules/available?date=YYYY-MM-DD
// Возвращает расписания активности на день, у которых остались места
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /activities/{activityId}/schedules/available - Invalid activity id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	raw := r.URL.Query().Get("date")
	if raw == "" {
		h.logger.Warn("GET /activities/%d/schedules/available - Missing date parameter", activityID)
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}

	day, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		h.logger.Warn("GET /activities/%d/schedules/available - Invalid date: %q", activityID, raw)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetAvailableByDay(r.Context(), activityID, day)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrActivityNotFound):
			h.logger.Warn("GET /activities/%d/schedules/available - Activity not found", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("GET /activities/%d/schedules/available - Invalid input: %v", activityID, err)
			handlers.RespondBadRequest(w, msgInvalidActivityID)

		default:
			h.logger.Error("GET /activities/%d/schedules/available - Failed to fetch schedules: %v", activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /activities/%d/schedules/available - Returned %d schedules for %s",
		activityID, len(result.Schedules), raw)
	handlers.RespondJSON(w, http.StatusOK, result)
}
