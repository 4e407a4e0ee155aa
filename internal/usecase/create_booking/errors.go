package create_booking

import (
	"errors"
	"fmt"
)

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено или неактивно
	ErrScheduleNotFound = errors.New("create_booking: schedule not found")

	// ErrActivityNotFound возвращается, когда активность расписания неактивна
	ErrActivityNotFound = errors.New("create_booking: activity not found")

	// ErrCompanyNotFound возвращается, когда компания не найдена
	ErrCompanyNotFound = errors.New("create_booking: company not found")

	// ErrCompanyInactive возвращается при ссылке на неактивную компанию
	ErrCompanyInactive = errors.New("create_booking: company is inactive")

	// ErrNotEnoughSpace возвращается, когда людей больше, чем свободных мест
	ErrNotEnoughSpace = errors.New("create_booking: not enough space on schedule")

	// ErrInvalidCommission возвращается при комиссии вне диапазона 0-100
	ErrInvalidCommission = errors.New("create_booking: commission percentage out of range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// NotEnoughSpaceError несёт цифры заполненности расписания
type NotEnoughSpaceError struct {
	ScheduleID int64
	Available  int
	Requested  int
}

func (e *NotEnoughSpaceError) Error() string {
	return fmt.Sprintf("create_booking: not enough space on schedule %d: available=%d, requested=%d",
		e.ScheduleID, e.Available, e.Requested)
}

// Unwrap позволяет сопоставлять ошибку с ErrNotEnoughSpace через errors.Is
func (e *NotEnoughSpaceError) Unwrap() error {
	return ErrNotEnoughSpace
}
