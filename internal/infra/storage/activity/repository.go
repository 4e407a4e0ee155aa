package activity

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	"github.com/Hannyer/CRM-API-SERVER/pkg/dbmetrics"
	"github.com/Hannyer/CRM-API-SERVER/pkg/psqlbuilder"
)

// Repository репозиторий для чтения активностей
// Полный CRUD активностей живет в CRM-модуле; ядру планирования нужны
// только выборки для проверки статуса и party_size
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория активностей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает активность по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"title",
		"party_size",
		"status",
		"created_at",
		"updated_at",
	).
		From("ops.activity").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var activity domain.Activity
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&activity.ID,
		&activity.Title,
		&activity.PartySize,
		&activity.Status,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan activity: %v", ErrScanRow, err)
	}

	activity.CreatedAt = createdAt.Time
	activity.UpdatedAt = updatedAt.Time

	return &activity, nil
}

// GetActiveByID получает активность по ID, отфильтровывая мягко удалённые
func (r *Repository) GetActiveByID(ctx context.Context, id int64) (*domain.Activity, error) {
	activity, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !activity.IsActive() {
		return nil, ErrActivityNotFound
	}
	return activity, nil
}
