package schedules

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

// Service сервис для работы с расписаниями активностей
type Service struct {
	scheduleRepo ScheduleRepository
	activityRepo ActivityRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	activityRepo ActivityRepository,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create создает одиночное расписание
// В отличие от массовой генерации пересечения здесь не проверяются,
// ответственность за непротиворечивость лежит на вызывающей стороне
func (s *Service) Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("CreateSchedule: activity=%d, start=%s, end=%s, capacity=%d",
		req.ActivityID, req.ScheduledStart.Format(time.RFC3339), req.ScheduledEnd.Format(time.RFC3339), req.Capacity)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("CreateSchedule: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.activityRepo.GetActiveByID(ctx, req.ActivityID); err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("CreateSchedule: activity id=%d not found", req.ActivityID)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("CreateSchedule: failed to get activity id=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: Create - failed to get activity: %v", ErrInternal, err)
	}

	schedule := &domain.Schedule{
		ActivityID:     req.ActivityID,
		ScheduledStart: req.ScheduledStart,
		ScheduledEnd:   req.ScheduledEnd,
		Capacity:       req.Capacity,
		BookedCount:    0,
		Status:         true,
	}

	created, err := s.scheduleRepo.Create(ctx, schedule)
	if err != nil {
		s.logger.Error("CreateSchedule: repository error for activity=%d: %v", req.ActivityID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSchedule: successfully created schedule id=%d", created.ID)
	return models.FromDomainSchedule(created), nil
}

// GetByID получает расписание по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule id=%d", id)

	schedule, err := s.scheduleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSchedule: schedule id=%d not found", id)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSchedule: repository error for schedule id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSchedule(schedule), nil
}

// GetAvailability получает активные расписания со свободными местами
// по модели счётчика (capacity - bookedCount), с фильтрами по активности
// и окну дат, упорядоченные по времени начала
func (s *Service) GetAvailability(ctx context.Context, req *models.AvailabilityFilterRequest) (*models.ScheduleListResponse, error) {
	logMsg := "GetAvailability: fetching schedules"
	if req.ActivityID != nil {
		logMsg += fmt.Sprintf(", activity=%d", *req.ActivityID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	s.logger.Info(logMsg)

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetAvailability: endDate is before startDate")
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	schedules, err := s.scheduleRepo.ListActive(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("GetAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAvailability: successfully fetched %d schedules", len(schedules))
	return models.FromDomainScheduleList(schedules), nil
}

// GetAvailableByDay получает расписания активности на указанный день,
// у которых остались свободные места
func (s *Service) GetAvailableByDay(ctx context.Context, activityID int64, day time.Time) (*models.ScheduleListResponse, error) {
	s.logger.Info("GetAvailableByDay: activity=%d, day=%s", activityID, day.Format(domain.DateFormat))

	if activityID <= 0 {
		return nil, fmt.Errorf("%w: activityID must be positive", ErrInvalidInput)
	}

	if _, err := s.activityRepo.GetActiveByID(ctx, activityID); err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("GetAvailableByDay: activity id=%d not found", activityID)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("GetAvailableByDay: failed to get activity id=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: GetAvailableByDay - failed to get activity: %v", ErrInternal, err)
	}

	schedules, err := s.scheduleRepo.GetAvailableByDay(ctx, activityID, day)
	if err != nil {
		s.logger.Error("GetAvailableByDay: repository error for activity=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: GetAvailableByDay - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAvailableByDay: successfully fetched %d schedules for activity=%d", len(schedules), activityID)
	return models.FromDomainScheduleList(schedules), nil
}

// Delete мягко удаляет расписание (переводит в неактивный статус)
// Строка остаётся в таблице, проекции доступности её не видят
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("DeleteSchedule: deleting schedule id=%d", id)

	if err := s.scheduleRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Warn("DeleteSchedule: schedule id=%d not found", id)
			return ErrScheduleNotFound
		}
		s.logger.Error("DeleteSchedule: repository error for schedule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteSchedule: successfully deleted schedule id=%d", id)
	return nil
}

// validateCreateRequest валидирует запрос на создание расписания
func validateCreateRequest(req *models.CreateScheduleRequest) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityId must be positive", ErrInvalidInput)
	}

	if req.ScheduledStart.IsZero() || req.ScheduledEnd.IsZero() {
		return fmt.Errorf("%w: scheduledStart and scheduledEnd are required", ErrInvalidInput)
	}

	if !req.ScheduledStart.Before(req.ScheduledEnd) {
		return fmt.Errorf("%w: scheduledStart must be before scheduledEnd", ErrInvalidInput)
	}

	if req.Capacity < 0 {
		return fmt.Errorf("%w: capacity must not be negative", ErrInvalidInput)
	}

	return nil
}
