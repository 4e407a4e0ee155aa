package get_schedule_availability

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

type SchedulesService interface {
	GetAvailability(ctx context.Context, req *models.AvailabilityFilterRequest) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
