package create_schedule

import (
	"context"

	"github.com/Hannyer/CRM-API-SERVER/internal/service/schedules/models"
)

type SchedulesService interface {
	Create(ctx context.Context, req *models.CreateScheduleRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
