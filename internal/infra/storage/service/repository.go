package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingCRM/pkg/psqlbuilder"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// Repository репозиторий каталога услуг
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает услугу по ID вместе с тарифами по размерам
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"category",
		"duration_minutes",
		"requires_quote",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("services").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var svc domain.Service
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&svc.ID,
		&svc.Name,
		&svc.Category,
		&svc.DurationMinutes,
		&svc.RequiresQuote,
		&svc.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan service: %v", ErrScanRow, err)
	}

	svc.CreatedAt = createdAt.Time
	svc.UpdatedAt = updatedAt.Time

	pricing, err := r.getPricingTiers(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	svc.Pricing = pricing

	return &svc, nil
}

// UpdateDurationMinutes обновляет дефолтную длительность услуги.
// Значение уже нормализовано и зажато движком в [30, 10080].
func (r *Repository) UpdateDurationMinutes(ctx context.Context, id int64, minutes int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("services").
		Set("duration_minutes", minutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateDurationMinutes - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateDurationMinutes - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDurationMinutes - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrServiceNotFound
	}

	return nil
}

// getPricingTiers читает тарифы услуги из service_pricing
func (r *Repository) getPricingTiers(ctx context.Context, executor dbmetrics.DBExecutor, serviceID int64) (map[domain.VehicleSize]types.Pence, error) {
	query, args, err := psqlbuilder.Select("vehicle_size", "price_pence").
		From("service_pricing").
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getPricingTiers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPricingTiers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	pricing := make(map[domain.VehicleSize]types.Pence)
	for rows.Next() {
		var size domain.VehicleSize
		var price types.Pence
		if err := rows.Scan(&size, &price); err != nil {
			return nil, fmt.Errorf("%w: getPricingTiers - scan row: %v", ErrScanRow, err)
		}
		pricing[size] = price
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getPricingTiers - rows error: %v", ErrScanRow, err)
	}

	return pricing, nil
}
