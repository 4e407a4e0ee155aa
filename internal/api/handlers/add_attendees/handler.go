package add_attendees

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	addAttendees "github.com/Hannyer/CRM-API-SERVER/internal/usecase/add_attendees"
)

const (
	msgInvalidScheduleID  = "некорректный идентификатор расписания"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgScheduleNotFound   = "расписание не найдено"
	msgCapacityExceeded   = "недостаточно свободных мест в расписании"
)

type Handler struct {
	useCase AddAttendeesUseCase
	logger  Logger
}

func NewHandler(useCase AddAttendeesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/activities/schedules/{scheduleId}/attendees
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	scheduleID, err := strconv.ParseInt(mux.Vars(r)["scheduleId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /activities/schedules/{scheduleId}/attendees - Invalid schedule id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidScheduleID)
		return
	}

	var req AddAttendeesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activities/schedules/%d/attendees - Invalid request body: %v", scheduleID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &addAttendees.Request{
		ScheduleID: scheduleID,
		Quantity:   req.Quantity,
	})
	if err != nil {
		var capacityErr *addAttendees.CapacityExceededError

		switch {
		case errors.As(err, &capacityErr):
			h.logger.Warn("POST /activities/schedules/%d/attendees - Capacity exceeded: available=%d, requested=%d",
				scheduleID, capacityErr.Available, capacityErr.Requested)
			handlers.RespondConflict(w, "CAPACITY_EXCEEDED", msgCapacityExceeded, FromCapacityExceeded(capacityErr))

		case errors.Is(err, addAttendees.ErrScheduleNotFound):
			h.logger.Warn("POST /activities/schedules/%d/attendees - Schedule not found", scheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, addAttendees.ErrInvalidInput):
			h.logger.Warn("POST /activities/schedules/%d/attendees - Invalid input: %v", scheduleID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /activities/schedules/%d/attendees - Failed to add attendees: %v", scheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activities/schedules/%d/attendees - Booked %d spot(s), now %d/%d",
		scheduleID, req.Quantity, result.NewBooked, result.Capacity)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
