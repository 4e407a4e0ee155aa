package domain

// Business validation constants
const (
	MinCommissionPercentage = 0.0
	MaxCommissionPercentage = 100.0

	DefaultCommissionPercentage = 0.0

	// MaxBulkGenerationDays предел диапазона массовой генерации расписаний
	MaxBulkGenerationDays = 366

	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы бронирований, занимающих места расписания
// Используется при подсчёте свободных мест booking-модели
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}

// ValidBookingStatuses допустимые статусы бронирования
var ValidBookingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
}
