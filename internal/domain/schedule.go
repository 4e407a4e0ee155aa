package domain

import (
	"time"

	"github.com/Hannyer/CRM-API-SERVER/pkg/types"
)

// Schedule конкретный бронируемый временной слот активности
// Интервал [ScheduledStart, ScheduledEnd) полуоткрытый: слоты, граничащие
// концом и началом, не пересекаются
type Schedule struct {
	ID             int64
	ActivityID     int64
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Capacity       int
	BookedCount    int
	Status         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AvailableSpots возвращает количество свободных мест (ledger-модель)
func (s *Schedule) AvailableSpots() int {
	return s.Capacity - s.BookedCount
}

// IsFull returns true if the schedule has no available spots
func (s *Schedule) IsFull() bool {
	return s.AvailableSpots() <= 0
}

// IsActive returns true if the schedule has not been soft-deleted
func (s *Schedule) IsActive() bool {
	return s.Status
}

// Overlaps проверяет пересечение с интервалом [start, end)
// Пересечение есть только при строгих неравенствах: граничащие интервалы
// (конец одного равен началу другого) не считаются пересекающимися
func (s *Schedule) Overlaps(start, end time.Time) bool {
	return s.ScheduledStart.Before(end) && start.Before(s.ScheduledEnd)
}

// TimeSlot дневной слот для массовой генерации расписаний
// Разворачивается в Schedule на каждый день диапазона генерации
type TimeSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Capacity  int
}

// ScheduleConflict пара пересекающихся интервалов, найденная при генерации
// ExistingScheduleID заполнен, если кандидат пересекается с уже существующим
// расписанием; nil - если пересекаются два кандидата из одной партии
type ScheduleConflict struct {
	CandidateStart     time.Time
	CandidateEnd       time.Time
	ConflictStart      time.Time
	ConflictEnd        time.Time
	ExistingScheduleID *int64
}

// ScheduleFilter фильтр для выборки расписаний с доступностью
type ScheduleFilter struct {
	ActivityID *int64     // Фильтр по активности (опционально)
	StartDate  *time.Time // Начало окна (опционально)
	EndDate    *time.Time // Конец окна (опционально)
}
