package bulk_create_schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
)

// UseCase use case массовой генерации расписаний
type UseCase struct {
	scheduleRepo ScheduleRepository
	activityRepo ActivityRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	activityRepo ActivityRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute разворачивает диапазон дат и дневные слоты в декартово
// произведение расписаний и вставляет всю партию одной транзакцией
// При включенной проверке пересечений любой конфликт отменяет партию
// целиком, клиенту возвращается полный список конфликтов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BulkCreateSchedules: activity=%d, range=%s..%s, slots=%d, validateOverlaps=%v",
		req.ActivityID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		len(req.TimeSlots), req.ValidateOverlaps)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BulkCreateSchedules: validation failed: %v", err)
		return nil, err
	}

	// 2. Активность должна существовать и быть активной
	if _, err := uc.activityRepo.GetActiveByID(ctx, req.ActivityID); err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			uc.logger.Warn("BulkCreateSchedules: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		uc.logger.Error("BulkCreateSchedules: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
	}

	// 3. Разворачиваем кандидатов: каждый день диапазона x каждый слот
	candidates := expandCandidates(req)

	var created []*domain.Schedule

	// 4. Проверка пересечений и вставка в одной сериализуемой транзакции,
	// чтобы конкурентная генерация по той же активности не проскочила
	// между проверкой и записью
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if req.ValidateOverlaps {
			windowStart := truncateToDay(req.StartDate)
			windowEnd := truncateToDay(req.EndDate).AddDate(0, 0, 1)

			existing, err := uc.scheduleRepo.GetActiveByActivityInWindow(txCtx, req.ActivityID, windowStart, windowEnd)
			if err != nil {
				uc.logger.Error("BulkCreateSchedules: failed to get existing schedules: %v", err)
				return fmt.Errorf("%w: failed to get existing schedules: %v", ErrInternal, err)
			}

			conflicts := checkOverlaps(candidates, existing)
			if len(conflicts) > 0 {
				uc.logger.Warn("BulkCreateSchedules: %d conflict(s) found for activity=%d",
					len(conflicts), req.ActivityID)
				return &ConflictError{Conflicts: conflicts}
			}
		}

		batch, err := uc.scheduleRepo.CreateBatch(txCtx, candidates)
		if err != nil {
			uc.logger.Error("BulkCreateSchedules: failed to insert batch: %v", err)
			return fmt.Errorf("%w: failed to insert batch: %v", ErrInternal, err)
		}

		created = batch
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("BulkCreateSchedules: successfully created %d schedules for activity=%d",
		len(created), req.ActivityID)

	return &Response{
		CreatedCount: len(created),
		Schedules:    created,
	}, nil
}

// expandCandidates строит по одному расписанию на каждую пару (день, слот)
func expandCandidates(req *Request) []*domain.Schedule {
	start := truncateToDay(req.StartDate)
	end := truncateToDay(req.EndDate)

	candidates := make([]*domain.Schedule, 0, len(req.TimeSlots))

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		for _, slot := range req.TimeSlots {
			candidates = append(candidates, &domain.Schedule{
				ActivityID:     req.ActivityID,
				ScheduledStart: slot.StartTime.OnDate(day),
				ScheduledEnd:   slot.EndTime.OnDate(day),
				Capacity:       slot.Capacity,
				BookedCount:    0,
				Status:         true,
			})
		}
	}

	return candidates
}

// truncateToDay обнуляет компонент времени, сохраняя часовой пояс
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
