package job

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingCRM/pkg/psqlbuilder"
)

// jobColumns полный набор колонок таблицы jobs в порядке сканирования
var jobColumns = []string{
	"id",
	"customer_id",
	"car_id",
	"service_id",
	"vehicle_size",
	"booking_datetime",
	"duration_minutes",
	"status",
	"base_price",
	"addons_price",
	"total_price",
	"deposit_amount",
	"force_booked",
	"service_name",
	"addon_ids",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с работами (jobs)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория работ
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую работу.
// Если в контексте передана активная транзакция, использует её —
// usecase создания работы выполняет вставку в сериализуемой транзакции.
func (r *Repository) Create(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("jobs").
		Columns(
			"customer_id",
			"car_id",
			"service_id",
			"vehicle_size",
			"booking_datetime",
			"duration_minutes",
			"status",
			"base_price",
			"addons_price",
			"total_price",
			"deposit_amount",
			"force_booked",
			"service_name",
			"addon_ids",
			"notes",
		).
		Values(
			job.CustomerID,
			job.CarID,
			job.ServiceID,
			job.VehicleSize,
			job.BookingDatetime,
			job.DurationMinutes,
			job.Status,
			job.BasePrice,
			job.AddOnsPrice,
			job.TotalPrice,
			job.DepositAmount,
			job.ForceBooked,
			job.ServiceName,
			pq.Array(job.AddOnIDs),
			job.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&job.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	job.CreatedAt = createdAt.Time
	job.UpdatedAt = updatedAt.Time

	return job, nil
}

// GetByID получает работу по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	job, err := scanJob(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan job: %v", ErrScanRow, err)
	}

	return job, nil
}

// GetWithFilter получает работы с гибкой фильтрацией для доски и календаря.
// Поддерживает фильтрацию по клиенту, услуге, периоду, статусу и
// включению неактивных работ.
func (r *Repository) GetWithFilter(ctx context.Context, filter domain.JobsFilter) ([]*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(jobColumns...).From("jobs")

	if filter.CustomerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}

	// Фильтрация по периоду: работа попадает в выборку, если её окно
	// начинается в периоде
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_datetime": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"booking_datetime": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны неактивные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	selectBuilder = selectBuilder.OrderBy("booking_datetime ASC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanJobs(rows)
}

// Update обновляет изменяемые поля работы.
// Ценовой снимок (base/addons/total) пересчитывается usecase'ом и
// сохраняется целиком, чтобы инвариант total = base + addons не
// расходился со строкой в БД.
func (r *Repository) Update(ctx context.Context, job *domain.Job) (*domain.Job, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("car_id", job.CarID).
		Set("service_id", job.ServiceID).
		Set("vehicle_size", job.VehicleSize).
		Set("booking_datetime", job.BookingDatetime).
		Set("duration_minutes", job.DurationMinutes).
		Set("base_price", job.BasePrice).
		Set("addons_price", job.AddOnsPrice).
		Set("total_price", job.TotalPrice).
		Set("deposit_amount", job.DepositAmount).
		Set("force_booked", job.ForceBooked).
		Set("service_name", job.ServiceName).
		Set("addon_ids", pq.Array(job.AddOnIDs)).
		Set("notes", job.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": job.ID}).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	job.UpdatedAt = updatedAt.Time
	return job, nil
}

// UpdateStatus обновляет стадию работы на доске
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrJobNotFound
	}

	return nil
}

// Cancel мягко удаляет работу с указанием причины.
// Физическое удаление не используется — история работ сохраняется,
// чистка внешнего календаря остаётся заботой внешнего синка.
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.JobStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("jobs").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
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
		return ErrJobNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanJob сканирует одну строку в domain.Job
func scanJob(row rowScanner) (*domain.Job, error) {
	var j domain.Job
	var addOnIDs pq.Int64Array
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&j.ID,
		&j.CustomerID,
		&j.CarID,
		&j.ServiceID,
		&j.VehicleSize,
		&j.BookingDatetime,
		&j.DurationMinutes,
		&j.Status,
		&j.BasePrice,
		&j.AddOnsPrice,
		&j.TotalPrice,
		&j.DepositAmount,
		&j.ForceBooked,
		&j.ServiceName,
		&addOnIDs,
		&j.Notes,
		&j.CancellationReason,
		&j.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	j.AddOnIDs = []int64(addOnIDs)
	j.CreatedAt = createdAt.Time
	j.UpdatedAt = updatedAt.Time

	return &j, nil
}

// scanJobs сканирует результаты запроса в слайс работ
func scanJobs(rows *sql.Rows) ([]*domain.Job, error) {
	jobs := make([]*domain.Job, 0)

	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanJobs - scan row: %v", ErrScanRow, err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanJobs - rows error: %v", ErrScanRow, err)
	}

	return jobs, nil
}
