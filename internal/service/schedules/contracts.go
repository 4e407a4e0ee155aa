package schedules

import (
	"context"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error)
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
	GetActiveByActivityInWindow(ctx context.Context, activityID int64, from, to time.Time) ([]*domain.Schedule, error)
	ListActive(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error)
	GetAvailableByDay(ctx context.Context, activityID int64, day time.Time) ([]*domain.Schedule, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
