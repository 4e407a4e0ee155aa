package add_attendees

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
// AddAttendees выполняет условное обновление счётчика одним запросом,
// при провале проверки вместимости возвращает текущее состояние строки
type ScheduleRepository interface {
	AddAttendees(ctx context.Context, id int64, quantity int) (*domain.Schedule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
