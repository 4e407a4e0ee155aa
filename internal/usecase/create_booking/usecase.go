package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	activityRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/activity"
	companyRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/company"
	scheduleRepo "github.com/Hannyer/CRM-API-SERVER/internal/infra/storage/schedule"
)

// UseCase use case создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	scheduleRepo ScheduleRepository
	activityRepo ActivityRepository
	companyRepo  CompanyRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	activityRepo ActivityRepository,
	companyRepo CompanyRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		scheduleRepo: scheduleRepo,
		activityRepo: activityRepo,
		companyRepo:  companyRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute создает бронирование
// Проверка доступности и вставка выполняются в сериализуемой транзакции
// с блокировкой строки расписания, поэтому конкурентные брони на одно
// расписание не могут суммарно превысить вместимость группы
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: schedule=%d, people=%d, company=%v",
		req.ActivityScheduleID, req.NumberOfPeople, req.CompanyID)

	// 1. Валидация арифметики состава группы
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Расписание: внутри транзакции строка блокируется (FOR UPDATE),
		// конкурентные создания брони на это расписание ждут здесь
		schedule, err := uc.scheduleRepo.GetByID(txCtx, req.ActivityScheduleID)
		if err != nil {
			if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
				uc.logger.Warn("CreateBooking: schedule id=%d not found", req.ActivityScheduleID)
				return ErrScheduleNotFound
			}
			uc.logger.Error("CreateBooking: failed to get schedule id=%d: %v", req.ActivityScheduleID, err)
			return fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
		if !schedule.IsActive() {
			uc.logger.Warn("CreateBooking: schedule id=%d is inactive", schedule.ID)
			return ErrScheduleNotFound
		}

		// 3. Активность расписания должна быть активной
		activity, err := uc.activityRepo.GetActiveByID(txCtx, schedule.ActivityID)
		if err != nil {
			if errors.Is(err, activityRepo.ErrActivityNotFound) {
				uc.logger.Warn("CreateBooking: activity id=%d not found for schedule id=%d",
					schedule.ActivityID, schedule.ID)
				return ErrActivityNotFound
			}
			uc.logger.Error("CreateBooking: failed to get activity id=%d: %v", schedule.ActivityID, err)
			return fmt.Errorf("%w: failed to get activity: %v", ErrInternal, err)
		}

		// 4. Свободные места: размер группы активности минус люди
		// неотменённых бронирований этого расписания
		used, err := uc.bookingRepo.SumActivePeople(txCtx, schedule.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to sum people for schedule id=%d: %v", schedule.ID, err)
			return fmt.Errorf("%w: failed to sum people: %v", ErrInternal, err)
		}

		available := activity.PartySize - used
		if req.NumberOfPeople > available {
			uc.logger.Warn("CreateBooking: not enough space on schedule id=%d: available=%d, requested=%d",
				schedule.ID, available, req.NumberOfPeople)
			return &NotEnoughSpaceError{
				ScheduleID: schedule.ID,
				Available:  available,
				Requested:  req.NumberOfPeople,
			}
		}

		// 5. Комиссия: ручное значение, иначе комиссия компании, иначе ноль
		var company *domain.Company
		if req.CompanyID != nil {
			company, err = uc.companyRepo.GetByID(txCtx, *req.CompanyID)
			if err != nil {
				if errors.Is(err, companyRepo.ErrCompanyNotFound) {
					uc.logger.Warn("CreateBooking: company id=%d not found", *req.CompanyID)
					return ErrCompanyNotFound
				}
				uc.logger.Error("CreateBooking: failed to get company id=%d: %v", *req.CompanyID, err)
				return fmt.Errorf("%w: failed to get company: %v", ErrInternal, err)
			}
			if !company.IsActive() {
				uc.logger.Warn("CreateBooking: company id=%d is inactive", company.ID)
				return ErrCompanyInactive
			}
		}

		commission := deriveCommission(req.CommissionPercentage, company)
		if err := validateCommission(commission); err != nil {
			uc.logger.Warn("CreateBooking: commission %.2f out of range", commission)
			return err
		}

		// 6. Сохраняем бронь в статусе pending
		booking := &domain.Booking{
			ActivityScheduleID:   schedule.ID,
			CompanyID:            req.CompanyID,
			Transport:            req.Transport,
			NumberOfPeople:       req.NumberOfPeople,
			AdultCount:           req.AdultCount,
			ChildCount:           req.ChildCount,
			SeniorCount:          req.SeniorCount,
			PassengerCount:       req.PassengerCount,
			CommissionPercentage: commission,
			CustomerName:         req.CustomerName,
			CustomerEmail:        req.CustomerEmail,
			CustomerPhone:        req.CustomerPhone,
			Status:               domain.StatusPending,
			CreatedBy:            req.CreatedBy,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		// 7. Перечитываем бронь с денормализованными данными join'ов
		full, err := uc.bookingRepo.GetByID(txCtx, created.ID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to reload booking id=%d: %v", created.ID, err)
			return fmt.Errorf("%w: failed to reload booking: %v", ErrInternal, err)
		}

		result = full
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d on schedule id=%d",
		result.ID, result.ActivityScheduleID)

	return &Response{Booking: result}, nil
}
