package create_booking

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	SumActivePeople(ctx context.Context, scheduleID int64) (int, error)
}

// ScheduleRepository интерфейс репозитория расписаний
// Внутри транзакции GetByID блокирует строку расписания (FOR UPDATE),
// сериализуя конкурентные проверки доступности по одному расписанию
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
