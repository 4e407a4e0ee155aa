package get_available_schedules

import (
	"context"
	"time"

	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

type SchedulesService interface {
	GetAvailableByDay(ctx context.Context, activityID int64, day time.Time) (*models.ScheduleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
