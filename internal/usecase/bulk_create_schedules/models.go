package bulk_create_schedules

import (
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// Request модель запроса на массовую генерацию расписаний
type Request struct {
	ActivityID       int64             // Активность, для которой генерируются слоты
	StartDate        time.Time         // Первый день диапазона (включительно)
	EndDate          time.Time         // Последний день диапазона (включительно)
	TimeSlots        []domain.TimeSlot // Дневные слоты, разворачиваемые на каждый день
	ValidateOverlaps bool              // Проверять пересечения перед записью
}

// Response модель ответа с созданными расписаниями
type Response struct {
	CreatedCount int                // Количество созданных расписаний
	Schedules    []*domain.Schedule // Созданные расписания в порядке генерации
}
