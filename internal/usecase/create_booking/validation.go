package create_booking

import (
	"fmt"
	"strings"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Арифметика состава группы проверяется до любых обращений к БД
func validateRequest(req *Request) error {
	if req.ActivityScheduleID <= 0 {
		return fmt.Errorf("%w: activityScheduleId must be positive", ErrInvalidInput)
	}

	if req.NumberOfPeople <= 0 {
		return fmt.Errorf("%w: numberOfPeople must be a positive integer", ErrInvalidInput)
	}

	if req.AdultCount < 0 || req.ChildCount < 0 || req.SeniorCount < 0 {
		return fmt.Errorf("%w: people counts must not be negative", ErrInvalidInput)
	}

	if req.AdultCount+req.ChildCount+req.SeniorCount != req.NumberOfPeople {
		return fmt.Errorf("%w: adultCount + childCount + seniorCount must equal numberOfPeople", ErrInvalidInput)
	}

	if req.CompanyID != nil && *req.CompanyID <= 0 {
		return fmt.Errorf("%w: companyId must be positive", ErrInvalidInput)
	}

	if req.PassengerCount != nil && *req.PassengerCount < 0 {
		return fmt.Errorf("%w: passengerCount must not be negative", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	return nil
}

// deriveCommission вычисляет итоговую комиссию брони
// Приоритет: ручное значение, затем комиссия компании, затем ноль
func deriveCommission(manual *float64, company *domain.Company) float64 {
	if manual != nil {
		return *manual
	}
	if company != nil {
		return company.CommissionPercentage
	}
	return domain.DefaultCommissionPercentage
}

// validateCommission проверяет, что комиссия лежит в допустимом диапазоне
func validateCommission(commission float64) error {
	if commission < domain.MinCommissionPercentage || commission > domain.MaxCommissionPercentage {
		return ErrInvalidCommission
	}
	return nil
}
