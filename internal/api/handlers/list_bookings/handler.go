package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
)

const (
	msgInvalidStatus     = "некорректный статус бронирования"
	msgInvalidScheduleID = "некорректный идентификатор расписания"
	msgInvalidPagination = "некорректные параметры пагинации"
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

// Handle GET /api/v1/bookings
// Query параметры: status, activityScheduleId, page, limit (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}
	query := r.URL.Query()

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("activityScheduleId"); raw != "" {
		scheduleID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || scheduleID <= 0 {
			h.logger.Warn("GET /bookings - Invalid activityScheduleId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidScheduleID)
			return
		}
		req.ActivityScheduleID = &scheduleID
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			h.logger.Warn("GET /bookings - Invalid page: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidPagination)
			return
		}
		req.Page = page
	}

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			h.logger.Warn("GET /bookings - Invalid limit: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidPagination)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /bookings - Failed to fetch bookings: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /bookings - Returned %d of %d bookings", len(result.Items), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
