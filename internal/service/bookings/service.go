package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
	bookingRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/booking"
	companyRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/company"
	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	activityRepo ActivityRepository
	companyRepo  CompanyRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	activityRepo ActivityRepository,
	companyRepo CompanyRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		companyRepo:  companyRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List получает страницу бронирований с фильтрацией по статусу и расписанию
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings page=%d, limit=%d", req.Page, req.Limit)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d of %d bookings", len(bookings), total)
	return models.FromDomainBookingList(bookings, total, filter.Page, filter.Limit), nil
}

// Update частично обновляет бронирование
// При изменении состава группы или расписания заново проверяет арифметику
// людей и доступность мест, исключая собственные места брони из занятых,
// чтобы уменьшение группы или перенос в рамках того же расписания
// не штрафовался дважды. Выполняется в сериализуемой транзакции
// с блокировкой строки расписания
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d", id)

	update, err := buildDomainUpdate(req)
	if err != nil {
		s.logger.Warn("Update: invalid request for booking id=%d: %v", id, err)
		return nil, err
	}

	var result *domain.Booking

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.bookingRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - failed to get booking: %v", ErrInternal, err)
		}

		effective := applyUpdate(booking, update)

		if err := validatePeopleCounts(effective); err != nil {
			return err
		}

		if s.needsAvailabilityCheck(booking, effective, update) {
			if err := s.checkAvailability(txCtx, booking, effective); err != nil {
				return err
			}
		}

		if err := s.resolveCommission(txCtx, req, update); err != nil {
			return err
		}

		if update.PassengerCount != nil && *update.PassengerCount < 0 {
			return fmt.Errorf("%w: passengerCount must not be negative", ErrInvalidInput)
		}

		updated, err := s.bookingRepo.Update(txCtx, id, *update)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = updated
		return nil
	})

	if err != nil {
		if !isClientError(err) {
			s.logger.Error("Update: failed to update booking id=%d: %v", id, err)
		} else {
			s.logger.Warn("Update: rejected update of booking id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Update: successfully updated booking id=%d", id)
	return models.FromDomainBooking(result), nil
}

// Cancel отменяет бронирование
// Повторная отмена уже отменённой брони отклоняется, места расписания
// освобождаются автоматически, так как проекции доступности не учитывают
// отменённые брони
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", id)
		return nil, ErrAlreadyCancelled
	}

	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	cancelled, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - failed to reload booking: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", id)
	return models.FromDomainBooking(cancelled), nil
}

// GetSpaceAvailability получает свободные места расписания booking-модели
func (s *Service) GetSpaceAvailability(ctx context.Context, scheduleID int64) (*models.SpaceAvailabilityResponse, error) {
	s.logger.Info("GetSpaceAvailability: fetching availability for schedule id=%d", scheduleID)

	availability, err := s.bookingRepo.GetSpaceAvailability(ctx, scheduleID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrScheduleNotFound) {
			s.logger.Warn("GetSpaceAvailability: schedule id=%d not found", scheduleID)
			return nil, ErrScheduleNotFound
		}
		s.logger.Error("GetSpaceAvailability: repository error for schedule id=%d: %v", scheduleID, err)
		return nil, fmt.Errorf("%w: GetSpaceAvailability - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSpaceAvailability(availability), nil
}

// GetAvailableSchedulesByActivity получает будущие расписания активности
// с заполненностью booking-модели
func (s *Service) GetAvailableSchedulesByActivity(ctx context.Context, activityID int64) (*models.SpaceAvailabilityListResponse, error) {
	s.logger.Info("GetAvailableSchedulesByActivity: fetching schedules for activity id=%d", activityID)

	if _, err := s.activityRepo.GetActiveByID(ctx, activityID); err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			s.logger.Warn("GetAvailableSchedulesByActivity: activity id=%d not found", activityID)
			return nil, ErrActivityNotFound
		}
		s.logger.Error("GetAvailableSchedulesByActivity: failed to get activity id=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: GetAvailableSchedulesByActivity - failed to get activity: %v", ErrInternal, err)
	}

	availabilities, err := s.bookingRepo.GetAvailableSchedulesByActivity(ctx, activityID)
	if err != nil {
		s.logger.Error("GetAvailableSchedulesByActivity: repository error for activity id=%d: %v", activityID, err)
		return nil, fmt.Errorf("%w: GetAvailableSchedulesByActivity - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAvailableSchedulesByActivity: successfully fetched %d schedules for activity id=%d",
		len(availabilities), activityID)
	return models.FromDomainSpaceAvailabilityList(availabilities), nil
}

// Вспомогательные методы

// needsAvailabilityCheck определяет, затрагивает ли обновление занятость мест
func (s *Service) needsAvailabilityCheck(current *domain.Booking, effective *domain.Booking, update *domain.BookingUpdate) bool {
	if update.ActivityScheduleID != nil && *update.ActivityScheduleID != current.ActivityScheduleID {
		return true
	}
	if update.NumberOfPeople != nil && *update.NumberOfPeople != current.NumberOfPeople {
		return true
	}
	// Возврат отменённой брони в занимающий статус снова резервирует места
	if current.IsCancelled() && effective.CountsAgainstOccupancy() {
		return true
	}
	return false
}

// checkAvailability проверяет, что на целевом расписании хватает мест
// для нового состава группы. Собственные места брони вычитаются из занятых,
// если бронь сейчас занимает то же расписание
func (s *Service) checkAvailability(ctx context.Context, current *domain.Booking, effective *domain.Booking) error {
	schedule, err := s.scheduleRepo.GetByID(ctx, effective.ActivityScheduleID)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return ErrScheduleNotFound
		}
		return fmt.Errorf("%w: checkAvailability - failed to get schedule: %v", ErrInternal, err)
	}
	if !schedule.IsActive() {
		return ErrScheduleNotFound
	}

	activity, err := s.activityRepo.GetActiveByID(ctx, schedule.ActivityID)
	if err != nil {
		if errors.Is(err, activityRepo.ErrActivityNotFound) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("%w: checkAvailability - failed to get activity: %v", ErrInternal, err)
	}

	used, err := s.bookingRepo.SumActivePeople(ctx, schedule.ID)
	if err != nil {
		return fmt.Errorf("%w: checkAvailability - failed to sum people: %v", ErrInternal, err)
	}

	if current.CountsAgainstOccupancy() && current.ActivityScheduleID == schedule.ID {
		used -= current.NumberOfPeople
	}

	available := activity.PartySize - used
	if effective.NumberOfPeople > available {
		return &NotEnoughSpaceError{
			ScheduleID: schedule.ID,
			Available:  available,
			Requested:  effective.NumberOfPeople,
		}
	}

	return nil
}

// resolveCommission валидирует и при необходимости подставляет комиссию
// При смене компании без явной комиссии наследуется процент новой компании
func (s *Service) resolveCommission(ctx context.Context, req *models.UpdateBookingRequest, update *domain.BookingUpdate) error {
	if req.CompanyID != nil {
		company, err := s.companyRepo.GetByID(ctx, *req.CompanyID)
		if err != nil {
			if errors.Is(err, companyRepo.ErrCompanyNotFound) {
				return ErrCompanyNotFound
			}
			return fmt.Errorf("%w: resolveCommission - failed to get company: %v", ErrInternal, err)
		}
		if !company.IsActive() {
			return ErrCompanyInactive
		}

		if req.CommissionPercentage == nil {
			commission := company.CommissionPercentage
			update.CommissionPercentage = &commission
		}
	}

	if update.CommissionPercentage != nil {
		commission := *update.CommissionPercentage
		if commission < domain.MinCommissionPercentage || commission > domain.MaxCommissionPercentage {
			return ErrInvalidCommission
		}
	}

	return nil
}

// buildDomainUpdate конвертирует запрос в domain обновление с валидацией статуса
func buildDomainUpdate(req *models.UpdateBookingRequest) (*domain.BookingUpdate, error) {
	update := &domain.BookingUpdate{
		ActivityScheduleID:   req.ActivityScheduleID,
		CompanyID:            req.CompanyID,
		Transport:            req.Transport,
		NumberOfPeople:       req.NumberOfPeople,
		AdultCount:           req.AdultCount,
		ChildCount:           req.ChildCount,
		SeniorCount:          req.SeniorCount,
		PassengerCount:       req.PassengerCount,
		CommissionPercentage: req.CommissionPercentage,
		CustomerName:         req.CustomerName,
		CustomerEmail:        req.CustomerEmail,
		CustomerPhone:        req.CustomerPhone,
	}

	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidStatus)
		}
		update.Status = &status
	}

	return update, nil
}

// applyUpdate возвращает копию брони с наложенными изменениями
func applyUpdate(booking *domain.Booking, update *domain.BookingUpdate) *domain.Booking {
	effective := *booking

	if update.ActivityScheduleID != nil {
		effective.ActivityScheduleID = *update.ActivityScheduleID
	}
	if update.CompanyID != nil {
		effective.CompanyID = update.CompanyID
	}
	if update.Transport != nil {
		effective.Transport = *update.Transport
	}
	if update.NumberOfPeople != nil {
		effective.NumberOfPeople = *update.NumberOfPeople
	}
	if update.AdultCount != nil {
		effective.AdultCount = *update.AdultCount
	}
	if update.ChildCount != nil {
		effective.ChildCount = *update.ChildCount
	}
	if update.SeniorCount != nil {
		effective.SeniorCount = *update.SeniorCount
	}
	if update.PassengerCount != nil {
		effective.PassengerCount = update.PassengerCount
	}
	if update.CommissionPercentage != nil {
		effective.CommissionPercentage = *update.CommissionPercentage
	}
	if update.CustomerName != nil {
		effective.CustomerName = *update.CustomerName
	}
	if update.CustomerEmail != nil {
		effective.CustomerEmail = update.CustomerEmail
	}
	if update.CustomerPhone != nil {
		effective.CustomerPhone = update.CustomerPhone
	}
	if update.Status != nil {
		effective.Status = *update.Status
	}

	return &effective
}

// validatePeopleCounts проверяет арифметику состава группы
func validatePeopleCounts(booking *domain.Booking) error {
	if booking.NumberOfPeople <= 0 {
		return fmt.Errorf("%w: numberOfPeople must be positive", ErrInvalidInput)
	}
	if booking.AdultCount < 0 || booking.ChildCount < 0 || booking.SeniorCount < 0 {
		return fmt.Errorf("%w: people counts must not be negative", ErrInvalidInput)
	}
	if !booking.PeopleCountsConsistent() {
		return fmt.Errorf("%w: adultCount + childCount + seniorCount must equal numberOfPeople", ErrInvalidInput)
	}
	return nil
}

// isClientError различает ошибки клиента и внутренние сбои для логирования
func isClientError(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrScheduleNotFound) ||
		errors.Is(err, ErrActivityNotFound) ||
		errors.Is(err, ErrCompanyNotFound) ||
		errors.Is(err, ErrCompanyInactive) ||
		errors.Is(err, ErrNotEnoughSpace) ||
		errors.Is(err, ErrInvalidCommission) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidInput)
}
