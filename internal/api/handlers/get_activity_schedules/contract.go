package get_activity_schedules

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
)

type BookingsService interface {
	GetAvailableSchedulesByActivity(ctx context.Context, activityID int64) (*models.SpaceAvailabilityListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
