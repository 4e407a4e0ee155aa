package bulk_create_schedules

import (
	"fmt"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ActivityID <= 0 {
		return fmt.Errorf("%w: activityId must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}

	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	days := daysInRange(req)
	if days > domain.MaxBulkGenerationDays {
		return fmt.Errorf("%w: date range exceeds %d days", ErrInvalidInput, domain.MaxBulkGenerationDays)
	}

	if len(req.TimeSlots) == 0 {
		return fmt.Errorf("%w: timeSlots must not be empty", ErrInvalidInput)
	}

	for i, slot := range req.TimeSlots {
		if slot.StartTime.IsZero() || slot.EndTime.IsZero() {
			return fmt.Errorf("%w: timeSlots[%d] must have startTime and endTime", ErrInvalidInput, i)
		}
		if err := slot.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: timeSlots[%d] has invalid startTime: %v", ErrInvalidInput, i, err)
		}
		if err := slot.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: timeSlots[%d] has invalid endTime: %v", ErrInvalidInput, i, err)
		}
		// Нулевая длина слота запрещена, полуоткрытый интервал [t, t) пуст
		if !slot.StartTime.IsBefore(slot.EndTime) {
			return fmt.Errorf("%w: timeSlots[%d] startTime must be before endTime", ErrInvalidInput, i)
		}
		if slot.Capacity < 0 {
			return fmt.Errorf("%w: timeSlots[%d] capacity must not be negative", ErrInvalidInput, i)
		}
	}

	return nil
}

// daysInRange возвращает число календарных дней диапазона, включая границы
func daysInRange(req *Request) int {
	start := truncateToDay(req.StartDate)
	end := truncateToDay(req.EndDate)

	days := 0
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		days++
	}
	return days
}
