package update_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Hannyer/CRM-API-SERVER/internal/api/handlers"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgBookingNotFound    = "бронирование не найдено"
	msgScheduleNotFound   = "расписание не найдено"
	msgActivityNotFound   = "активность не найдена"
	msgCompanyNotFound    = "компания не найдена"
	msgCompanyInactive    = "компания неактивна"
	msgNotEnoughSpace     = "недостаточно свободных мест в расписании"
	msgInvalidCommission  = "комиссия должна быть в диапазоне от 0 до 100"
	msgInvalidStatus      = "некорректный статус бронирования"
)

// NotEnoughSpaceResponse детали ответа 400 при нехватке мест
type NotEnoughSpaceResponse struct {
	Available int `json:"available"`
	Requested int `json:"requested"`
}

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

// Handle PUT /api/v1/bookings/{id}
// Частичное обновление: отсутствующие поля не изменяются,
// правила арифметики людей и доступности применяются заново
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /bookings/{id} - Invalid booking id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	var req models.UpdateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%d - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), bookingID, &req)
	if err != nil {
		var spaceErr *bookings.NotEnoughSpaceError

		switch {
		case errors.As(err, &spaceErr):
			h.logger.Warn("PUT /bookings/%d - Not enough space: available=%d, requested=%d",
				bookingID, spaceErr.Available, spaceErr.Requested)
			handlers.RespondErrorDetail(w, http.StatusBadRequest, "NOT_ENOUGH_SPACE", msgNotEnoughSpace,
				NotEnoughSpaceResponse{Available: spaceErr.Available, Requested: spaceErr.Requested})

		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/%d - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookings.ErrScheduleNotFound):
			h.logger.Warn("PUT /bookings/%d - Schedule not found", bookingID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, bookings.ErrActivityNotFound):
			h.logger.Warn("PUT /bookings/%d - Activity not found", bookingID)
			handlers.RespondNotFound(w, msgActivityNotFound)

		case errors.Is(err, bookings.ErrCompanyNotFound):
			h.logger.Warn("PUT /bookings/%d - Company not found", bookingID)
			handlers.RespondNotFound(w, msgCompanyNotFound)

		case errors.Is(err, bookings.ErrCompanyInactive):
			h.logger.Warn("PUT /bookings/%d - Company inactive", bookingID)
			handlers.RespondBadRequest(w, msgCompanyInactive)

		case errors.Is(err, bookings.ErrInvalidCommission):
			h.logger.Warn("PUT /bookings/%d - Invalid commission: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidCommission)

		case errors.Is(err, bookings.ErrInvalidStatus):
			h.logger.Warn("PUT /bookings/%d - Invalid status: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%d - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /bookings/%d - Failed to update booking: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%d - Booking updated", bookingID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
