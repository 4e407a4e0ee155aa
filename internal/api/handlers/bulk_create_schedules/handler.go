package bulk_create_schedules

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	bulkCreate "github.com/Hannyer/CRM-API-SERVER/internal/usecase/bulk_create_schedules"
)

const (
	msgInvalidActivityID   = "некорректный идентификатор активности"
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgActivityNotFound    = "активность не найдена"
	msgScheduleConflict    = "генерируемые расписания пересекаются"
)

type Handler struct {
	useCase BulkCreateSchedulesUseCase
	logger  Logger
}

func NewHandler(useCase BulkCreateSchedulesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/activities/{activityId}/schedules/bulk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	activityID, err := strconv.ParseInt(mux.Vars(r)["activityId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /activities/{activityId}/schedules/bulk - Invalid activity id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidActivityID)
		return
	}

	var req BulkCreateSchedulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /activities/%d/schedules/bulk - Invalid request body: %v", activityID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(activityID)
	if err != nil {
		h.logger.Warn("POST /activities/%d/schedules/bulk - Failed to parse request: %v", activityID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *bulkCreate.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /activities/%d/schedules/bulk - %d conflict(s)", activityID, len(conflictErr.Conflicts))
			handlers.RespondConflict(w, "SCHEDULE_CONFLICT", msgScheduleConflict, FromConflicts(conflictErr.Conflicts))

		case errors.Is(err, bulkCreate.ErrActivityNotFound):
			h.logger.Warn("POST /activities/%d/schedules/bulk - Activity not found", activityID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, bulkCreate.ErrInvalidInput):
			h.logger.Warn("POST /activities/%d/schedules/bulk - Invalid input: %v", activityID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /activities/%d/schedules/bulk - Failed to create schedules: %v", activityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /activities/%d/schedules/bulk - Created %d schedules", activityID, result.CreatedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
