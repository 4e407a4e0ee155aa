package get_space_availability

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/service/bookings/models"
)

type BookingsService interface {
	GetSpaceAvailability(ctx context.Context, scheduleID int64) (*models.SpaceAvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
