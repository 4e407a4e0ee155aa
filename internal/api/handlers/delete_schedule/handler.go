package delete_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules"
)

const (
	msgInvalidScheduleID = "некорректный идентификатор расписания"
	msgScheduleNotFound  = "расписание не найдено"
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

// Handle DELETE /api/v1/activities/schedules/{scheduleId}
// Мягкое удаление: расписание остаётся в таблице в неактивном статусе
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /activities/schedules/{scheduleId} - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	if err := h.service.Delete(r.Context(), scheduleID); err != nil {
		if errors.Is(err, schedules.ErrScheduleNotFound) {
			h.logger.Warn("DELETE /activities/schedules/%d - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)
			return
		}
		h.logger.Error("DELETE /activities/schedules/%d - Failed to delete schedule: %v", scheduleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /activities/schedules/%d - Schedule deleted", scheduleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
