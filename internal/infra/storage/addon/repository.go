package addon

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/dbmetrics"
	"github.com/m04kA/SMC-DetailingCRM/pkg/psqlbuilder"
)

const tableAddOns = "add_ons"

// Repository - репозиторий для работы с дополнительными услугами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создаёт новый репозиторий дополнительных услуг
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByIDs возвращает дополнительные услуги по списку идентификаторов.
// Неизвестные идентификаторы молча пропускаются.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.AddOn, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"price_inc_vat",
		"is_variable_price",
	).
		From(tableAddOns).
		Where(squirrel.Expr("id = ANY(?)", pq.Array(ids))).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var addons []*domain.AddOn
	for rows.Next() {
		a := &domain.AddOn{}
		if err := rows.Scan(&a.ID, &a.Name, &a.PriceIncVAT, &a.IsVariablePrice); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScanRow, err)
		}
		addons = append(addons, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExecQuery, err)
	}

	return addons, nil
}
