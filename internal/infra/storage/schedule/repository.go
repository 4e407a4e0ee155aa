package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	"github.com/Hannyer/CRM-API-SERVER/pkg/dbmetrics"
	"github.com/Hannyer/CRM-API-SERVER/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id",
	"activity_id",
	"scheduled_start",
	"scheduled_end",
	"capacity",
	"booked_count",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с расписаниями активностей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает одно расписание
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, schedule *domain.Schedule) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ops.activity_schedule").
		Columns(
			"activity_id",
			"scheduled_start",
			"scheduled_end",
			"capacity",
			"booked_count",
			"status",
		).
		Values(
			schedule.ActivityID,
			schedule.ScheduledStart,
			schedule.ScheduledEnd,
			schedule.Capacity,
			schedule.BookedCount,
			schedule.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&schedule.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return schedule, nil
}

// CreateBatch вставляет партию расписаний одним запросом
// Вызывается массовой генерацией внутри транзакции: при откате транзакции
// не остается частично вставленных строк
func (r *Repository) CreateBatch(ctx context.Context, schedules []*domain.Schedule) ([]*domain.Schedule, error) {
	if len(schedules) == 0 {
		return []*domain.Schedule{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("ops.activity_schedule").
		Columns(
			"activity_id",
			"scheduled_start",
			"scheduled_end",
			"capacity",
			"booked_count",
			"status",
		)

	for _, s := range schedules {
		insertBuilder = insertBuilder.Values(
			s.ActivityID,
			s.ScheduledStart,
			s.ScheduledEnd,
			s.Capacity,
			s.BookedCount,
			s.Status,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// GetByID получает расписание по ID
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы сериализовать
// конкурентные проверки занятости одного и того же расписания
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("ops.activity_schedule").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	schedule, err := r.scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan schedule: %v", ErrScanRow, err)
	}

	return schedule, nil
}

// GetActiveByActivityInWindow получает активные расписания активности,
// пересекающиеся с окном [from, to)
// Используется валидацией пересечений при массовой генерации; внутри
// транзакции строки блокируются (FOR UPDATE), чтобы конкурентная генерация
// по той же активности не вставила пересекающиеся слоты
func (r *Repository) GetActiveByActivityInWindow(ctx context.Context, activityID int64, from, to time.Time) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("ops.activity_schedule").
		Where(squirrel.Eq{"activity_id": activityID}).
		Where(squirrel.Eq{"status": true}).
		Where(squirrel.Lt{"scheduled_start": to}).
		Where(squirrel.Gt{"scheduled_end": from}).
		OrderBy("scheduled_start ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByActivityInWindow - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByActivityInWindow - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// AddAttendees атомарно увеличивает booked_count расписания на quantity
// Проверка вместимости и инкремент выполняются одним условным UPDATE:
// конкурентные вызовы по одному scheduleId не могут превысить capacity
// независимо от порядка выполнения
//
// При нарушении условия вместимости возвращает текущее состояние расписания
// вместе с ErrCapacityExceeded, чтобы вызывающая сторона могла сообщить,
// сколько мест осталось
func (r *Repository) AddAttendees(ctx context.Context, id int64, quantity int) (*domain.Schedule, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ops.activity_schedule").
		Set("booked_count", squirrel.Expr("booked_count + ?", quantity)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": true}).
		Where(squirrel.Expr("booked_count + ? <= capacity", quantity)).
		Suffix("RETURNING " + columnList()).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddAttendees - build update query: %v", ErrBuildQuery, err)
	}

	schedule, err := r.scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if err == nil {
		return schedule, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("%w: AddAttendees - execute update: %v", ErrExecQuery, err)
	}

	// Условие не прошло: различаем отсутствующее расписание и нехватку мест
	current, getErr := r.GetByID(ctx, id)
	if getErr != nil {
		return nil, getErr
	}
	if !current.IsActive() {
		return nil, ErrScheduleNotFound
	}

	return current, ErrCapacityExceeded
}

// ListActive получает активные расписания с опциональной фильтрацией
// по активности и окну дат, отсортированные по времени начала
func (r *Repository) ListActive(ctx context.Context, filter domain.ScheduleFilter) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(scheduleColumns...).
		From("ops.activity_schedule").
		Where(squirrel.Eq{"status": true}).
		OrderBy("scheduled_start ASC")

	if filter.ActivityID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"activity_id": *filter.ActivityID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"scheduled_start": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"scheduled_start": *filter.EndDate})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// GetAvailableByDay получает активные расписания активности на указанный день,
// у которых остались свободные места (booked_count < capacity)
func (r *Repository) GetAvailableByDay(ctx context.Context, activityID int64, date time.Time) ([]*domain.Schedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("ops.activity_schedule").
		Where(squirrel.Eq{"activity_id": activityID}).
		Where(squirrel.Eq{"status": true}).
		Where(squirrel.Expr("booked_count < capacity")).
		Where(squirrel.Expr("DATE(scheduled_start) = ?::date", date.Format(domain.DateFormat))).
		OrderBy("scheduled_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableByDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSchedules(rows)
}

// SoftDelete помечает расписание неактивным (мягкое удаление)
// Физическое удаление не выполняется: история бронирований сохраняется
func (r *Repository) SoftDelete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ops.activity_schedule").
		Set("status", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": true}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SoftDelete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SoftDelete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrScheduleNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSchedule сканирует одну строку расписания
func (r *Repository) scanSchedule(row rowScanner) (*domain.Schedule, error) {
	var schedule domain.Schedule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&schedule.ID,
		&schedule.ActivityID,
		&schedule.ScheduledStart,
		&schedule.ScheduledEnd,
		&schedule.Capacity,
		&schedule.BookedCount,
		&schedule.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	schedule.CreatedAt = createdAt.Time
	schedule.UpdatedAt = updatedAt.Time

	return &schedule, nil
}

// scanSchedules сканирует результаты запроса в слайс расписаний
func (r *Repository) scanSchedules(rows *sql.Rows) ([]*domain.Schedule, error) {
	schedules := make([]*domain.Schedule, 0)

	for rows.Next() {
		schedule, err := r.scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSchedules - scan row: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSchedules - rows error: %v", ErrScanRow, err)
	}

	return schedules, nil
}

// columnList возвращает список колонок расписания через запятую
func columnList() string {
	list := scheduleColumns[0]
	for _, col := range scheduleColumns[1:] {
		list += ", " + col
	}
	return list
}
