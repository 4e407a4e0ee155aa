package domain

import "time"

// Activity экскурсионная активность (тур), которой принадлежат расписания
// Управляется CRUD-слоем CRM; ядро читает её для проверки статуса
// и номинального размера группы
type Activity struct {
	ID        int64
	Title     string
	PartySize int // Номинальный размер группы, используется как fallback вместимости
	Status    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the activity has not been soft-deleted
func (a *Activity) IsActive() bool {
	return a.Status
}
