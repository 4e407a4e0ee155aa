package schedule

import "errors"

var (
	// ErrScheduleNotFound возвращается, когда расписание не найдено или неактивно
	ErrScheduleNotFound = errors.New("schedule.repository: schedule not found")

	// ErrCapacityExceeded возвращается, когда условное обновление booked_count
	// не прошло проверку вместимости
	ErrCapacityExceeded = errors.New("schedule.repository: capacity exceeded")

	// ErrInvalidQuantity возвращается при неположительном количестве участников
	ErrInvalidQuantity = errors.New("schedule.repository: quantity must be positive")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedule.repository: failed to scan row")
)
