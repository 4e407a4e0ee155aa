package add_attendees

import (
	"errors"
	"fmt"
)

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено или неактивно
	ErrScheduleNotFound = errors.New("add_attendees: schedule not found")

	// ErrCapacityExceeded возвращается, когда запрошенное количество
	// не помещается в оставшиеся места расписания
	ErrCapacityExceeded = errors.New("add_attendees: capacity exceeded")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("add_attendees: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("add_attendees: internal error")
)

// CapacityExceededError несёт цифры заполненности, чтобы клиент видел,
// сколько мест осталось
type CapacityExceededError struct {
	ScheduleID    int64
	CurrentBooked int
	Capacity      int
	Available     int
	Requested     int
}

func (e *CapacityExceededError) Error() string {
	return fmt.Sprintf("add_attendees: capacity exceeded on schedule %d: booked=%d, capacity=%d, available=%d, requested=%d",
		e.ScheduleID, e.CurrentBooked, e.Capacity, e.Available, e.Requested)
}

// Unwrap позволяет сопоставлять ошибку с ErrCapacityExceeded через errors.Is
func (e *CapacityExceededError) Unwrap() error {
	return ErrCapacityExceeded
}
