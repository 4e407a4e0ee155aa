package bulk_create_schedules

import (
	"context"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	CreateBatch(ctx context.Context, schedules []*domain.Schedule) ([]*domain.Schedule, error)
	GetActiveByActivityInWindow(ctx context.Context, activityID int64, from, to time.Time) ([]*domain.Schedule, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
