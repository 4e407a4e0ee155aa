package add_attendees

import (
	"context"
	"errors"
	"fmt"

	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
)

// UseCase use case атомарного резервирования мест расписания
type UseCase struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Execute увеличивает booked_count расписания на запрошенное количество
// Проверка вместимости и инкремент выполняются одним условным UPDATE,
// поэтому конкурентные вызовы по одному расписанию не могут переполнить
// его даже без внешней блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AddAttendees: schedule=%d, quantity=%d", req.ScheduleID, req.Quantity)

	if req.ScheduleID <= 0 {
		uc.logger.Warn("AddAttendees: invalid schedule id=%d", req.ScheduleID)
		return nil, fmt.Errorf("%w: scheduleId must be positive", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		uc.logger.Warn("AddAttendees: invalid quantity=%d for schedule=%d", req.Quantity, req.ScheduleID)
		return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)
	}

	schedule, err := uc.scheduleRepo.AddAttendees(ctx, req.ScheduleID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, scheduleRepo.ErrScheduleNotFound):
			uc.logger.Warn("AddAttendees: schedule id=%d not found", req.ScheduleID)
			return nil, ErrScheduleNotFound

		case errors.Is(err, scheduleRepo.ErrCapacityExceeded):
			// Репозиторий возвращает актуальное состояние строки,
			// чтобы клиент видел, сколько мест осталось
			uc.logger.Warn("AddAttendees: capacity exceeded on schedule id=%d: booked=%d/%d, requested=%d",
				req.ScheduleID, schedule.BookedCount, schedule.Capacity, req.Quantity)
			return nil, &CapacityExceededError{
				ScheduleID:    schedule.ID,
				CurrentBooked: schedule.BookedCount,
				Capacity:      schedule.Capacity,
				Available:     schedule.AvailableSpots(),
				Requested:     req.Quantity,
			}

		case errors.Is(err, scheduleRepo.ErrInvalidQuantity):
			return nil, fmt.Errorf("%w: quantity must be a positive integer", ErrInvalidInput)

		default:
			uc.logger.Error("AddAttendees: repository error for schedule id=%d: %v", req.ScheduleID, err)
			return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("AddAttendees: successfully booked %d spot(s) on schedule id=%d, booked=%d/%d",
		req.Quantity, schedule.ID, schedule.BookedCount, schedule.Capacity)

	return &Response{
		ScheduleID:     schedule.ID,
		PreviousBooked: schedule.BookedCount - req.Quantity,
		NewBooked:      schedule.BookedCount,
		Capacity:       schedule.Capacity,
		Available:      schedule.AvailableSpots(),
	}, nil
}
