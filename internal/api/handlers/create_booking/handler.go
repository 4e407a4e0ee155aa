package create_booking

import (
	"errors"
	"net/http"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/api/middleware"
	bookingModels "github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
	createBooking "github.com/Hannyer/CRM-API-SERVER/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgScheduleNotFound   = "расписание не найдено"
	msgActivityNotFound   = "активность не найдена"
	msgCompanyNotFound    = "компания не найдена"
	msgCompanyInactive    = "компания неактивна"
	msgNotEnoughSpace     = "недостаточно свободных мест в расписании"
	msgInvalidCommission  = "комиссия должна быть в диапазоне от 0 до 100"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	createdBy := middleware.UserIDFromContext(r.Context())

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(createdBy))
	if err != nil {
		var spaceErr *createBooking.NotEnoughSpaceError

		switch {
		// Нехватка мест в workflow бронирования отдаётся как 400,
		// в отличие от 409 у операции резервирования мест
		case errors.As(err, &spaceErr):
			h.logger.Warn("POST /bookings - Not enough space: schedule_id=%d, available=%d, requested=%d",
				spaceErr.ScheduleID, spaceErr.Available, spaceErr.Requested)
			handlers.RespondErrorDetail(w, http.StatusBadRequest, "NOT_ENOUGH_SPACE", msgNotEnoughSpace,
				NotEnoughSpaceResponse{Available: spaceErr.Available, Requested: spaceErr.Requested})

		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not found: schedule_id=%d", req.ActivityScheduleID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrActivityNotFound):
			h.logger.Warn("POST /bookings - Activity not found: schedule_id=%d", req.ActivityScheduleID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, createBooking.ErrCompanyNotFound):
			h.logger.Warn("POST /bookings - Company not found: company_id=%v", req.CompanyID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, createBooking.ErrCompanyInactive):
			h.logger.Warn("POST /bookings - Company inactive: company_id=%v", req.CompanyID)
			handlers.RespondBadRequest(w, msgCompanyInactive)

		case errors.Is(err, createBooking.ErrInvalidCommission):
			h.logger.Warn("POST /bookings - Invalid commission: %v", err)
			handlers.RespondBadRequest(w, msgInvalidCommission)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /bookings - Failed to create booking: schedule_id=%d, error=%v",
				req.ActivityScheduleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, schedule_id=%d",
		result.Booking.ID, result.Booking.ActivityScheduleID)
	handlers.RespondJSON(w, http.StatusCreated, bookingModels.FromDomainBooking(result.Booking))
}
