package get_schedule_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

const (
	msgInvalidActivityID = "некорректный идентификатор активности"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidRange      = "некорректный диапазон дат"
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

// Handle GET /api/v1/activities/schedules/availability
// Query параметры: activityId, startDate, endDate (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.AvailabilityFilterRequest{}
	query := r.URL.Query()

	if raw := query.Get("activityId"); raw != "" {
		activityID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || activityID <= 0 {
			h.logger.Warn("GET /activities/schedules/availability - Invalid activityId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidActivityID)
			return
		}
		req.ActivityID = &activityID
	}

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /activities/schedules/availability - Invalid startDate: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /activities/schedules/availability - Invalid endDate: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		// Конец окна включает весь последний день
		endOfDay := endDate.AddDate(0, 0, 1)
		req.EndDate = &endOfDay
	}

	result, err := h.service.GetAvailability(r.Context(), req)
	if err != nil {
		if errors.Is(err, schedules.ErrInvalidInput) {
			h.logger.Warn("GET /activities/schedules/availability - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		h.logger.Error("GET /activities/schedules/availability - Failed to fetch availability: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /activities/schedules/availability - Returned %d schedules", len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
