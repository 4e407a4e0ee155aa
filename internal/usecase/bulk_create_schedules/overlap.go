package bulk_create_schedules

import (
	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// checkOverlaps ищет пересечения интервалов среди кандидатов и между
// кандидатами и существующими активными расписаниями активности
// Интервалы полуоткрытые [start, end): слоты, граничащие концом и началом,
// не конфликтуют. Возвращает полный список конфликтов, состояние не меняет
func checkOverlaps(candidates []*domain.Schedule, existing []*domain.Schedule) []domain.ScheduleConflict {
	conflicts := make([]domain.ScheduleConflict, 0)

	// Кандидаты попарно между собой
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if candidates[i].Overlaps(candidates[j].ScheduledStart, candidates[j].ScheduledEnd) {
				conflicts = append(conflicts, domain.ScheduleConflict{
					CandidateStart: candidates[i].ScheduledStart,
					CandidateEnd:   candidates[i].ScheduledEnd,
					ConflictStart:  candidates[j].ScheduledStart,
					ConflictEnd:    candidates[j].ScheduledEnd,
				})
			}
		}
	}

	// Каждый кандидат против существующих расписаний
	for _, candidate := range candidates {
		for _, schedule := range existing {
			if candidate.Overlaps(schedule.ScheduledStart, schedule.ScheduledEnd) {
				id := schedule.ID
				conflicts = append(conflicts, domain.ScheduleConflict{
					CandidateStart:     candidate.ScheduledStart,
					CandidateEnd:       candidate.ScheduledEnd,
					ConflictStart:      schedule.ScheduledStart,
					ConflictEnd:        schedule.ScheduledEnd,
					ExistingScheduleID: &id,
				})
			}
		}
	}

	return conflicts
}
