package bookingengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// TieBreakPolicy политика выбора при нескольких активных клиентских
// ценах на одну и ту же (услуга, размер)
type TieBreakPolicy string

const (
	// TieBreakLatestCreated выигрывает последняя созданная цена
	TieBreakLatestCreated TieBreakPolicy = "latest_created"
	// TieBreakLowestPrice выигрывает наименьшая цена
	TieBreakLowestPrice TieBreakPolicy = "lowest_price"
)

// ParseTieBreakPolicy validates a configured tie-break policy
func ParseTieBreakPolicy(s string) (TieBreakPolicy, error) {
	switch TieBreakPolicy(s) {
	case TieBreakLatestCreated, "":
		return TieBreakLatestCreated, nil
	case TieBreakLowestPrice:
		return TieBreakLowestPrice, nil
	default:
		return "", fmt.Errorf("bookingengine: unknown tie-break policy %q", s)
	}
}

// VATBreakdown разложение суммы inc VAT на компоненты.
// Инвариант: ExVAT + VAT == IncVAT, без дрейфа пенсов.
type VATBreakdown struct {
	ExVAT  types.Pence
	VAT    types.Pence
	IncVAT types.Pence
}

// DecomposeVAT splits an inc-VAT total into ex-VAT and VAT parts.
// The ex-VAT part is total/(1+rate) rounded half-up to a whole penny;
// VAT is the remainder, so the components always sum back to the total.
func DecomposeVAT(total types.Pence, rate float64) VATBreakdown {
	exVAT := types.Pence(math.Round(float64(total) / (1 + rate)))
	return VATBreakdown{
		ExVAT:  exVAT,
		VAT:    total - exVAT,
		IncVAT: total,
	}
}

// PriceResolver resolves the price to charge for a
// (customer, service, vehicle size) and sums selected add-ons.
type PriceResolver struct {
	pricing  PricingStore
	addons   AddOnCatalog
	vatRate  float64
	tieBreak TieBreakPolicy
	logger   Logger
}

// NewPriceResolver создает резолвер цен
func NewPriceResolver(
	pricing PricingStore,
	addons AddOnCatalog,
	vatRate float64,
	tieBreak TieBreakPolicy,
	logger Logger,
) *PriceResolver {
	return &PriceResolver{
		pricing:  pricing,
		addons:   addons,
		vatRate:  vatRate,
		tieBreak: tieBreak,
		logger:   logger,
	}
}

// VATRate returns the configured VAT rate
func (r *PriceResolver) VATRate() float64 {
	return r.vatRate
}

// Decompose разложение суммы по сконфигурированной ставке НДС
func (r *PriceResolver) Decompose(total types.Pence) VATBreakdown {
	return DecomposeVAT(total, r.vatRate)
}

// ResolveBasePrice возвращает цену для (клиент, услуга, размер) на дату asOf.
//
// Приоритет:
//  1. Активная клиентская цена (valid_until отсутствует или >= asOf);
//     при нескольких активных применяется tie-break политика.
//  2. Стандартная цена услуги для тарифного класса.
//  3. nil — цена не настроена ("P.O.A."); вызывающий обязан проверить
//     и НЕ трактовать как ноль.
//
// Недоступность источника цен — восстановимая ошибка (ErrPricingStore),
// никогда не fail-open: молчаливый ноль занизил бы счёт клиенту.
func (r *PriceResolver) ResolveBasePrice(
	ctx context.Context,
	customerID, serviceID int64,
	sizeCategory string,
	asOf time.Time,
) (*types.Pence, error) {
	size, err := domain.ParseVehicleSize(sizeCategory)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownVehicleSize, err)
	}

	overrides, err := r.pricing.GetCustomerOverrides(ctx, customerID, serviceID, size)
	if err != nil {
		r.logger.Error("ResolveBasePrice: override lookup failed: customer=%d, service=%d, size=%s: %v",
			customerID, serviceID, size, err)
		return nil, fmt.Errorf("%w: override lookup: %v", ErrPricingStore, err)
	}

	if override := pickOverride(overrides, asOf, r.tieBreak); override != nil {
		r.logger.Info("ResolveBasePrice: customer override applied: customer=%d, service=%d, size=%s, price=%s",
			customerID, serviceID, size, override.PriceIncVAT)
		price := override.PriceIncVAT
		return &price, nil
	}

	standard, err := r.pricing.GetStandardPrice(ctx, serviceID, size)
	if err != nil {
		r.logger.Error("ResolveBasePrice: standard price lookup failed: service=%d, size=%s: %v",
			serviceID, size, err)
		return nil, fmt.Errorf("%w: standard price lookup: %v", ErrPricingStore, err)
	}

	if standard == nil {
		// Цена не настроена — путь "quote required"
		r.logger.Warn("ResolveBasePrice: no price configured: customer=%d, service=%d, size=%s",
			customerID, serviceID, size)
		return nil, nil
	}

	return standard, nil
}

// pickOverride выбирает применимую клиентскую цену среди активных.
// Порядок tie-break детерминирован и настраивается в конфиге
// (поведение исходной системы при нескольких строках не было задано).
func pickOverride(overrides []*domain.PriceOverride, asOf time.Time, policy TieBreakPolicy) *domain.PriceOverride {
	var winner *domain.PriceOverride

	for _, o := range overrides {
		if !o.IsActiveAt(asOf) {
			continue
		}
		if winner == nil {
			winner = o
			continue
		}
		switch policy {
		case TieBreakLowestPrice:
			if o.PriceIncVAT < winner.PriceIncVAT {
				winner = o
			}
		default: // TieBreakLatestCreated
			if o.CreatedAt.After(winner.CreatedAt) {
				winner = o
			}
		}
	}

	return winner
}

// AddOnsTotal суммирует цены выбранных допуслуг.
// Отсутствующие в каталоге id дают 0 (UI предлагает только валидные id),
// позиции с is_variable_price (P.O.A.) исключаются из автоматической суммы.
func (r *PriceResolver) AddOnsTotal(ctx context.Context, ids []int64) (types.Pence, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	addons, err := r.addons.GetByIDs(ctx, ids)
	if err != nil {
		r.logger.Error("AddOnsTotal: catalog lookup failed: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrAddOnCatalog, err)
	}

	var total types.Pence
	for _, a := range addons {
		if a.IsVariablePrice {
			continue
		}
		total += a.PriceIncVAT
	}

	return total, nil
}
