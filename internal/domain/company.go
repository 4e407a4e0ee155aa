package domain

import "time"

// Company компания-партнёр, направляющая клиентов
// Поставляет комиссию по умолчанию для бронирований без ручного override
type Company struct {
	ID                   int64
	Name                 string
	CommissionPercentage float64
	Status               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// IsActive returns true if the company has not been soft-deleted
func (c *Company) IsActive() bool {
	return c.Status
}
