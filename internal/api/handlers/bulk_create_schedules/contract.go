package bulk_create_schedules

import (
	"context"

	bulkCreate "github.com/Hannyer/CRM-API-SERVER/internal/usecase/bulk_create_schedules"
)

type BulkCreateSchedulesUseCase interface {
	Execute(ctx context.Context, req *bulkCreate.Request) (*bulkCreate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
