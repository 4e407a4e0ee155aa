package bookings

import (
	"errors"
	"fmt"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrScheduleNotFound возвращается, когда расписание не найдено или неактивно
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("activity not found")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("company not found")

	// ErrCompanyInactive возвращается при попытке привязать неактивную компанию
	ErrCompanyInactive = errors.New("company is inactive")

	// ErrAlreadyCancelled возвращается при повторной отмене бронирования
	ErrAlreadyCancelled = errors.New("booking is already cancelled")

	// ErrNotEnoughSpace возвращается, когда на расписании не хватает мест
	ErrNotEnoughSpace = errors.New("not enough space on schedule")

	// ErrInvalidCommission возвращается при комиссии вне диапазона 0-100
	ErrInvalidCommission = errors.New("commission percentage out of range")

	// ErrInvalidStatus возвращается при недопустимом статусе бронирования
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

// NotEnoughSpaceError несёт цифры заполненности расписания,
// чтобы клиент видел, сколько мест осталось
type NotEnoughSpaceError struct {
	ScheduleID int64
	Available  int
	Requested  int
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("not enough space on schedule %d: available=%d, requested=%d",
		e.ScheduleID, e.Available, e.Requested)
}

// Unwrap позволяет сопоставлять ошибку с ErrNotEnoughSpace через errors.Is
func (e *NotEnoughSpaceError) Unwrap() error {
	return ErrNotEnoughSpace
}
