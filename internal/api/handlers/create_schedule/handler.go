package create_schedule

import (
	"errors"
	"net/http"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgActivityNotFound   = "активность не найдена"
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

// Handle POST /api/v1/activities/schedules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activities/schedules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedules.ErrActivityNotFound):
			h.logger.Warn("POST /activities/schedules - Activity not found: activity_id=%d", req.ActivityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, schedules.ErrInvalidInput):
			h.logger.Warn("POST /activities/schedules - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /activities/schedules - Failed to create schedule: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activities/schedules - Schedule created: schedule_id=%d, activity_id=%d",
		result.ID, result.ActivityID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
