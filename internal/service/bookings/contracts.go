package bookings

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int, error)
	Update(ctx context.Context, id int64, update domain.BookingUpdate) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
	SumActivePeople(ctx context.Context, scheduleID int64) (int, error)
	GetSpaceAvailability(ctx context.Context, scheduleID int64) (*domain.SpaceAvailability, error)
	GetAvailableSchedulesByActivity(ctx context.Context, activityID int64) ([]*domain.SpaceAvailability, error)
}

// ScheduleRepository интерфейс репозитория расписаний
// Внутри транзакции GetByID блокирует строку расписания (FOR UPDATE),
// сериализуя конкурентные проверки доступности
type ScheduleRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Schedule, error)
}

// ActivityRepository интерфейс репозитория активностей
type ActivityRepository interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error)
}

// CompanyRepository интерфейс репозитория компаний
type CompanyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
