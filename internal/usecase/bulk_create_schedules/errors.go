package bulk_create_schedules

import (
	"errors"
	"fmt"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

var (
	// ErrActivityNotFound возвращается, когда активность не найдена или неактивна
	ErrActivityNotFound = errors.New("bulk_create_schedules: activity not found")

	// ErrScheduleConflict возвращается при пересечении генерируемых слотов
	ErrScheduleConflict = errors.New("bulk_create_schedules: schedule conflict")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("bulk_create_schedules: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("bulk_create_schedules: internal error")
)

// ConflictError несёт полный список найденных пересечений,
// чтобы клиент видел все проблемы партии за один запрос
type ConflictError struct {
	Conflicts []domain.ScheduleConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("bulk_create_schedules: %d overlapping schedule(s)", len(e.Conflicts))
}

// Unwrap позволяет сопоставлять ошибку с ErrScheduleConflict через errors.Is
func (e *ConflictError) Unwrap() error {
	return ErrScheduleConflict
}
