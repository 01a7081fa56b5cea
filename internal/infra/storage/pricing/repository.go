package pricing

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

// Repository репозиторий цен: стандартные тарифы по размерам
// (service_pricing) и клиентские переопределения (customer_service_pricing).
// Реализует bookingengine.PricingStore.
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория цен
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStandardPrice возвращает стандартную цену услуги (inc VAT, пенсы)
// для тарифного класса, либо nil, если тариф не настроен
func (r *Repository) GetStandardPrice(ctx context.Context, serviceID int64, size domain.VehicleSize) (*types.Pence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("price_pence").
		From("service_pricing").
		Where(squirrel.Eq{"service_id": serviceID, "vehicle_size": size}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetStandardPrice - build select query: %v", ErrBuildQuery, err)
	}

	var price types.Pence
	err = executor.QueryRowContext(ctx, query, args...).Scan(&price)
	if err == sql.ErrNoRows {
		// Тариф не настроен — не ошибка, цена "P.O.A."
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStandardPrice - scan price: %v", ErrScanRow, err)
	}

	return &price, nil
}

// GetCustomerOverrides возвращает клиентские цены для (клиент, услуга,
// размер), включая истёкшие: фильтрацию по сроку действия и tie-break
// выполняет резолвер цен.
func (r *Repository) GetCustomerOverrides(ctx context.Context, customerID, serviceID int64, size domain.VehicleSize) ([]*domain.PriceOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"customer_id",
		"service_id",
		"vehicle_size",
		"price_pence",
		"valid_until",
		"created_at",
	).
		From("customer_service_pricing").
		Where(squirrel.Eq{
			"customer_id":  customerID,
			"service_id":   serviceID,
			"vehicle_size": size,
		}).
		OrderBy("created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerOverrides - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetCustomerOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	overrides := make([]*domain.PriceOverride, 0)
	for rows.Next() {
		var o domain.PriceOverride
		var createdAt sql.NullTime

		err := rows.Scan(
			&o.ID,
			&o.CustomerID,
			&o.ServiceID,
			&o.VehicleSize,
			&o.PriceIncVAT,
			&o.ValidUntil,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetCustomerOverrides - scan row: %v", ErrScanRow, err)
		}

		o.CreatedAt = createdAt.Time
		overrides = append(overrides, &o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetCustomerOverrides - rows error: %v", ErrScanRow, err)
	}

	return overrides, nil
}

// UpsertStandardPrice создает или обновляет стандартный тариф услуги
func (r *Repository) UpsertStandardPrice(ctx context.Context, serviceID int64, size domain.VehicleSize, price types.Pence) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("service_pricing").
		Columns("service_id", "vehicle_size", "price_pence").
		Values(serviceID, size, price).
		Suffix("ON CONFLICT (service_id, vehicle_size) DO UPDATE SET price_pence = EXCLUDED.price_pence").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertStandardPrice - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertStandardPrice - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreateOverride создает клиентскую цену
func (r *Repository) CreateOverride(ctx context.Context, override *domain.PriceOverride) (*domain.PriceOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customer_service_pricing").
		Columns("customer_id", "service_id", "vehicle_size", "price_pence", "valid_until").
		Values(override.CustomerID, override.ServiceID, override.VehicleSize, override.PriceIncVAT, override.ValidUntil).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOverride - execute insert: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	return override, nil
}

// DeleteOverride удаляет клиентскую цену
func (r *Repository) DeleteOverride(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("customer_service_pricing").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}
