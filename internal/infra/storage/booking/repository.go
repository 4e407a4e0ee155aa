package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Hannyer/CRM-API-SERVER/internal/domain"
	"github.com/Hannyer/CRM-API-SERVER/pkg/dbmetrics"
	"github.com/Hannyer/CRM-API-SERVER/pkg/psqlbuilder"
)

// bookingJoinColumns колонки бронирования с денормализованными данными
// активности, расписания и компании
var bookingJoinColumns = []string{
	"b.id",
	"b.activity_schedule_id",
	"b.company_id",
	"b.transport",
	"b.number_of_people",
	"b.adult_count",
	"b.child_count",
	"b.senior_count",
	"b.passenger_count",
	"b.commission_percentage",
	"b.customer_name",
	"b.customer_email",
	"b.customer_phone",
	"b.status",
	"b.created_by",
	"a.id",
	"a.title",
	"a.party_size",
	"s.scheduled_start",
	"s.scheduled_end",
	"c.name",
	"b.created_at",
	"b.updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value),
// использует её - workflow создания бронирования выполняет проверку
// доступности и вставку в одной сериализуемой транзакции
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("ops.booking").
		Columns(
			"activity_schedule_id",
			"company_id",
			"transport",
			"number_of_people",
			"adult_count",
			"child_count",
			"senior_count",
			"passenger_count",
			"commission_percentage",
			"customer_name",
			"customer_email",
			"customer_phone",
			"status",
			"created_by",
		).
		Values(
			booking.ActivityScheduleID,
			booking.CompanyID,
			booking.Transport,
			booking.NumberOfPeople,
			booking.AdultCount,
			booking.ChildCount,
			booking.SeniorCount,
			booking.PassengerCount,
			booking.CommissionPercentage,
			booking.CustomerName,
			booking.CustomerEmail,
			booking.CustomerPhone,
			booking.Status,
			booking.CreatedBy,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID с данными активности,
// расписания и компании
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingJoinColumns...).
		From("ops.booking b").
		Join("ops.activity_schedule s ON s.id = b.activity_schedule_id").
		Join("ops.activity a ON a.id = s.activity_id").
		LeftJoin("ops.company c ON c.id = b.company_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования с постраничной выборкой
// Опционально фильтрует по статусу и расписанию; возвращает также
// общее число записей под фильтром
func (r *Repository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := squirrel.And{}
	if filter.Status != nil {
		conditions = append(conditions, squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.ActivityScheduleID != nil {
		conditions = append(conditions, squirrel.Eq{"b.activity_schedule_id": *filter.ActivityScheduleID})
	}

	countBuilder := psqlbuilder.Select("COUNT(*)").From("ops.booking b")
	if len(conditions) > 0 {
		countBuilder = countBuilder.Where(conditions)
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - scan total: %v", ErrScanRow, err)
	}

	offset := (filter.Page - 1) * filter.Limit

	selectBuilder := psqlbuilder.Select(bookingJoinColumns...).
		From("ops.booking b").
		Join("ops.activity_schedule s ON s.id = b.activity_schedule_id").
		Join("ops.activity a ON a.id = s.activity_id").
		LeftJoin("ops.company c ON c.id = b.company_id").
		OrderBy("b.created_at DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(offset))

	if len(conditions) > 0 {
		selectBuilder = selectBuilder.Where(conditions)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// Update частично обновляет бронирование
// nil-поля BookingUpdate не изменяются; при пустом обновлении
// возвращает текущее состояние
func (r *Repository) Update(ctx context.Context, id int64, update domain.BookingUpdate) (*domain.Booking, error) {
	if update.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("ops.booking").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if update.ActivityScheduleID != nil {
		updateBuilder = updateBuilder.Set("activity_schedule_id", *update.ActivityScheduleID)
	}
	if update.CompanyID != nil {
		updateBuilder = updateBuilder.Set("company_id", *update.CompanyID)
	}
	if update.Transport != nil {
		updateBuilder = updateBuilder.Set("transport", *update.Transport)
	}
	if update.NumberOfPeople != nil {
		updateBuilder = updateBuilder.Set("number_of_people", *update.NumberOfPeople)
	}
	if update.AdultCount != nil {
		updateBuilder = updateBuilder.Set("adult_count", *update.AdultCount)
	}
	if update.ChildCount != nil {
		updateBuilder = updateBuilder.Set("child_count", *update.ChildCount)
	}
	if update.SeniorCount != nil {
		updateBuilder = updateBuilder.Set("senior_count", *update.SeniorCount)
	}
	if update.PassengerCount != nil {
		updateBuilder = updateBuilder.Set("passenger_count", *update.PassengerCount)
	}
	if update.CommissionPercentage != nil {
		updateBuilder = updateBuilder.Set("commission_percentage", *update.CommissionPercentage)
	}
	if update.CustomerName != nil {
		updateBuilder = updateBuilder.Set("customer_name", *update.CustomerName)
	}
	if update.CustomerEmail != nil {
		updateBuilder = updateBuilder.Set("customer_email", *update.CustomerEmail)
	}
	if update.CustomerPhone != nil {
		updateBuilder = updateBuilder.Set("customer_phone", *update.CustomerPhone)
	}
	if update.Status != nil {
		updateBuilder = updateBuilder.Set("status", *update.Status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return nil, ErrBookingNotFound
	}

	return r.GetByID(ctx, id)
}

// Cancel отменяет бронирование (переводит в статус cancelled)
// Отменённые брони перестают занимать места расписания во всех
// проекциях доступности
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("ops.booking").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// SumActivePeople суммирует людей неотменённых бронирований расписания
// Используется workflow бронирования при проверке доступности
func (r *Repository) SumActivePeople(ctx context.Context, scheduleID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(number_of_people), 0)").
		From("ops.booking").
		Where(squirrel.Eq{"activity_schedule_id": scheduleID}).
		Where(squirrel.Eq{"status": domain.OccupyingStatuses}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: SumActivePeople - build select query: %v", ErrBuildQuery, err)
	}

	var sum int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&sum); err != nil {
		return 0, fmt.Errorf("%w: SumActivePeople - scan sum: %v", ErrScanRow, err)
	}

	return sum, nil
}

// GetSpaceAvailability вычисляет свободные места расписания booking-модели:
// party_size активности минус сумма людей неотменённых бронирований
// Возвращает ErrScheduleNotFound, если расписание или активность неактивны
func (r *Repository) GetSpaceAvailability(ctx context.Context, scheduleID int64) (*domain.SpaceAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	const bookedPeopleExpr = `COALESCE((
		SELECT SUM(b.number_of_people)
		FROM ops.booking b
		WHERE b.activity_schedule_id = s.id
		  AND b.status IN ('pending', 'confirmed')
	), 0)`

	query, args, err := psqlbuilder.Select(
		"s.id",
		"a.id",
		"a.title",
		"s.scheduled_start",
		"s.scheduled_end",
		"a.party_size",
		bookedPeopleExpr,
		"a.party_size - "+bookedPeopleExpr,
	).
		From("ops.activity_schedule s").
		Join("ops.activity a ON a.id = s.activity_id").
		Where(squirrel.Eq{"s.id": scheduleID}).
		Where(squirrel.Eq{"s.status": true}).
		Where(squirrel.Eq{"a.status": true}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSpaceAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var availability domain.SpaceAvailability
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&availability.ScheduleID,
		&availability.ActivityID,
		&availability.ActivityTitle,
		&availability.ScheduledStart,
		&availability.ScheduledEnd,
		&availability.PartySize,
		&availability.BookedPeople,
		&availability.AvailableSpaces,
	)

	if err == sql.ErrNoRows {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSpaceAvailability - scan availability: %v", ErrScanRow, err)
	}

	return &availability, nil
}

// GetAvailableSchedulesByActivity получает будущие активные расписания
// активности с заполненностью booking-модели
func (r *Repository) GetAvailableSchedulesByActivity(ctx context.Context, activityID int64) ([]*domain.SpaceAvailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	const bookedPeopleExpr = `COALESCE((
		SELECT SUM(b.number_of_people)
		FROM ops.booking b
		WHERE b.activity_schedule_id = s.id
		  AND b.status IN ('pending', 'confirmed')
	), 0)`

	query, args, err := psqlbuilder.Select(
		"s.id",
		"a.id",
		"a.title",
		"s.scheduled_start",
		"s.scheduled_end",
		"a.party_size",
		bookedPeopleExpr,
		"a.party_size - "+bookedPeopleExpr,
	).
		From("ops.activity_schedule s").
		Join("ops.activity a ON a.id = s.activity_id").
		Where(squirrel.Eq{"s.activity_id": activityID}).
		Where(squirrel.Eq{"s.status": true}).
		Where(squirrel.Eq{"a.status": true}).
		Where(squirrel.Expr("s.scheduled_start > CURRENT_TIMESTAMP")).
		OrderBy("s.scheduled_start ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSchedulesByActivity - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSchedulesByActivity - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	availabilities := make([]*domain.SpaceAvailability, 0)
	for rows.Next() {
		var availability domain.SpaceAvailability
		err := rows.Scan(
			&availability.ScheduleID,
			&availability.ActivityID,
			&availability.ActivityTitle,
			&availability.ScheduledStart,
			&availability.ScheduledEnd,
			&availability.PartySize,
			&availability.BookedPeople,
			&availability.AvailableSpaces,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAvailableSchedulesByActivity - scan row: %v", ErrScanRow, err)
		}
		availabilities = append(availabilities, &availability)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAvailableSchedulesByActivity - rows error: %v", ErrScanRow, err)
	}

	return availabilities, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку бронирования с данными join'ов
func (r *Repository) scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ActivityScheduleID,
		&booking.CompanyID,
		&booking.Transport,
		&booking.NumberOfPeople,
		&booking.AdultCount,
		&booking.ChildCount,
		&booking.SeniorCount,
		&booking.PassengerCount,
		&booking.CommissionPercentage,
		&booking.CustomerName,
		&booking.CustomerEmail,
		&booking.CustomerPhone,
		&booking.Status,
		&booking.CreatedBy,
		&booking.ActivityID,
		&booking.ActivityTitle,
		&booking.ActivityPartySize,
		&booking.ScheduledStart,
		&booking.ScheduledEnd,
		&booking.CompanyName,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := r.scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
