package activity

import (
	"github.com/Hannyer/CRM-API-SERVER/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
