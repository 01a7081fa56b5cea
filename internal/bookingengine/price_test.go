package bookingengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/ptr"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// fakePricingStore хранит цены в памяти для тестов
type fakePricingStore struct {
	standard    map[int64]map[domain.VehicleSize]types.Pence
	overrides   []*domain.PriceOverride
	standardErr error
	overrideErr error
}

func (f *fakePricingStore) GetStandardPrice(_ context.Context, serviceID int64, size domain.VehicleSize) (*types.Pence, error) {
	if f.standardErr != nil {
		return nil, f.standardErr
	}
	tiers, ok := f.standard[serviceID]
	if !ok {
		return nil, nil
	}
	price, ok := tiers[size]
	if !ok {
		return nil, nil
	}
	return &price, nil
}

func (f *fakePricingStore) GetCustomerOverrides(_ context.Context, customerID, serviceID int64, size domain.VehicleSize) ([]*domain.PriceOverride, error) {
	if f.overrideErr != nil {
		return nil, f.overrideErr
	}
	var result []*domain.PriceOverride
	for _, o := range f.overrides {
		if o.CustomerID == customerID && o.ServiceID == serviceID && o.VehicleSize == size {
			result = append(result, o)
		}
	}
	return result, nil
}

// fakeAddOnCatalog каталог допуслуг в памяти
type fakeAddOnCatalog struct {
	addons map[int64]*domain.AddOn
	err    error
}

func (f *fakeAddOnCatalog) GetByIDs(_ context.Context, ids []int64) ([]*domain.AddOn, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []*domain.AddOn
	for _, id := range ids {
		if a, ok := f.addons[id]; ok {
			result = append(result, a)
		}
	}
	return result, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestResolver(store *fakePricingStore, catalog *fakeAddOnCatalog, policy TieBreakPolicy) *PriceResolver {
	if store == nil {
		store = &fakePricingStore{}
	}
	if catalog == nil {
		catalog = &fakeAddOnCatalog{}
	}
	return NewPriceResolver(store, catalog, 0.20, policy, noopLogger{})
}

var asOf = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestResolveBasePrice_OverrideBeatsStandard(t *testing.T) {
	store := &fakePricingStore{
		standard: map[int64]map[domain.VehicleSize]types.Pence{
			10: {domain.SizeMedium: 6000},
		},
		overrides: []*domain.PriceOverride{
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeMedium, PriceIncVAT: 5000},
		},
	}
	resolver := newTestResolver(store, nil, TieBreakLatestCreated)

	price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "medium", asOf)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, types.Pence(5000), *price)
}

func TestResolveBasePrice_ExpiredOverrideFallsBack(t *testing.T) {
	yesterday := asOf.AddDate(0, 0, -1)
	store := &fakePricingStore{
		standard: map[int64]map[domain.VehicleSize]types.Pence{
			10: {domain.SizeMedium: 6000},
		},
		overrides: []*domain.PriceOverride{
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeMedium, PriceIncVAT: 5000, ValidUntil: &yesterday},
		},
	}
	resolver := newTestResolver(store, nil, TieBreakLatestCreated)

	price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "medium", asOf)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, types.Pence(6000), *price)
}

func TestResolveBasePrice_OverrideValidUntilTodayStillApplies(t *testing.T) {
	store := &fakePricingStore{
		standard: map[int64]map[domain.VehicleSize]types.Pence{
			10: {domain.SizeMedium: 6000},
		},
		overrides: []*domain.PriceOverride{
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeMedium, PriceIncVAT: 5000, ValidUntil: ptr.Ptr(asOf)},
		},
	}
	resolver := newTestResolver(store, nil, TieBreakLatestCreated)

	price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "medium", asOf)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, types.Pence(5000), *price)
}

func TestResolveBasePrice_TieBreakLatestCreated(t *testing.T) {
	store := &fakePricingStore{
		overrides: []*domain.PriceOverride{
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeLarge, PriceIncVAT: 7000, CreatedAt: asOf.AddDate(0, -2, 0)},
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeLarge, PriceIncVAT: 7500, CreatedAt: asOf.AddDate(0, -1, 0)},
		},
	}
	resolver := newTestResolver(store, nil, TieBreakLatestCreated)

	price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "large", asOf)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, types.Pence(7500), *price)
}

func TestResolveBasePrice_TieBreakLowestPrice(t *testing.T) {
	store := &fakePricingStore{
		overrides: []*domain.PriceOverride{
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeLarge, PriceIncVAT: 7000, CreatedAt: asOf.AddDate(0, -2, 0)},
			{CustomerID: 1, ServiceID: 10, VehicleSize: domain.SizeLarge, PriceIncVAT: 7500, CreatedAt: asOf.AddDate(0, -1, 0)},
		},
	}
	resolver := newTestResolver(store, nil, TieBreakLowestPrice)

	price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "large", asOf)
	require.NoError(t, err)
	require.NotNil(t, price)
	assert.Equal(t, types.Pence(7000), *price)
}

func TestResolveBasePrice_NoPriceConfiguredReturnsNil(t *testing.T) {
	resolver := newTestResolver(&fakePricingStore{}, nil, TieBreakLatestCreated)

	price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "small", asOf)
	require.NoError(t, err)
	// nil — сигнал "P.O.A.", не ноль
	assert.Nil(t, price)
}

func TestResolveBasePrice_SizeMappedCaseInsensitively(t *testing.T) {
	store := &fakePricingStore{
		standard: map[int64]map[domain.VehicleSize]types.Pence{
			10: {domain.SizeXL: 12000},
		},
	}
	resolver := newTestResolver(store, nil, TieBreakLatestCreated)

	for _, input := range []string{"XL", "xl", "Xl"} {
		price, err := resolver.ResolveBasePrice(context.Background(), 1, 10, input, asOf)
		require.NoError(t, err, "size=%q", input)
		require.NotNil(t, price, "size=%q", input)
		assert.Equal(t, types.Pence(12000), *price)
	}
}

func TestResolveBasePrice_UnknownSize(t *testing.T) {
	resolver := newTestResolver(nil, nil, TieBreakLatestCreated)

	_, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "gigantic", asOf)
	require.ErrorIs(t, err, ErrUnknownVehicleSize)
}

func TestResolveBasePrice_StoreFailurePropagates(t *testing.T) {
	store := &fakePricingStore{overrideErr: errors.New("connection refused")}
	resolver := newTestResolver(store, nil, TieBreakLatestCreated)

	_, err := resolver.ResolveBasePrice(context.Background(), 1, 10, "small", asOf)
	// Недоступность цен — ошибка, а не молчаливый ноль
	require.ErrorIs(t, err, ErrPricingStore)
}

func TestAddOnsTotal(t *testing.T) {
	catalog := &fakeAddOnCatalog{
		addons: map[int64]*domain.AddOn{
			1: {ID: 1, Name: "Engine bay", PriceIncVAT: 1500},
			2: {ID: 2, Name: "Odour removal", PriceIncVAT: 2500, IsVariablePrice: true},
			3: {ID: 3, Name: "Pet hair", PriceIncVAT: 2000},
		},
	}
	resolver := newTestResolver(nil, catalog, TieBreakLatestCreated)

	t.Run("variable price items excluded", func(t *testing.T) {
		total, err := resolver.AddOnsTotal(context.Background(), []int64{1, 2})
		require.NoError(t, err)
		// P.O.A. позиция даёт 0 в автоматической сумме
		assert.Equal(t, types.Pence(1500), total)
	})

	t.Run("unknown ids contribute zero", func(t *testing.T) {
		total, err := resolver.AddOnsTotal(context.Background(), []int64{1, 99})
		require.NoError(t, err)
		assert.Equal(t, types.Pence(1500), total)
	})

	t.Run("empty selection", func(t *testing.T) {
		total, err := resolver.AddOnsTotal(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, types.Pence(0), total)
	})

	t.Run("sums regular items", func(t *testing.T) {
		total, err := resolver.AddOnsTotal(context.Background(), []int64{1, 3})
		require.NoError(t, err)
		assert.Equal(t, types.Pence(3500), total)
	})
}

func TestAddOnsTotal_CatalogFailurePropagates(t *testing.T) {
	catalog := &fakeAddOnCatalog{err: errors.New("timeout")}
	resolver := newTestResolver(nil, catalog, TieBreakLatestCreated)

	_, err := resolver.AddOnsTotal(context.Background(), []int64{1})
	require.ErrorIs(t, err, ErrAddOnCatalog)
}

func TestDecomposeVAT(t *testing.T) {
	tests := []struct {
		total     types.Pence
		wantExVAT types.Pence
		wantVAT   types.Pence
	}{
		{0, 0, 0},
		{120, 100, 20},
		{100, 83, 17},  // 83.33 -> 83
		{101, 84, 17},  // 84.17 -> 84
		{99, 83, 16},   // 82.5 -> 83 (round half up)
		{6000, 5000, 1000},
		{5999, 4999, 1000}, // 4999.17 -> 4999
	}

	for _, tt := range tests {
		got := DecomposeVAT(tt.total, 0.20)
		assert.Equal(t, tt.wantExVAT, got.ExVAT, "total=%d", tt.total)
		assert.Equal(t, tt.wantVAT, got.VAT, "total=%d", tt.total)
		assert.Equal(t, tt.total, got.IncVAT, "total=%d", tt.total)
	}
}

func TestDecomposeVAT_ClosureHoldsForEveryTotal(t *testing.T) {
	// Для любой суммы exVAT + VAT == incVAT, без дрейфа пенсов
	for total := types.Pence(0); total <= 25000; total++ {
		b := DecomposeVAT(total, 0.20)
		if b.ExVAT+b.VAT != total {
			t.Fatalf("penny drift at total=%d: exVAT=%d vat=%d", total, b.ExVAT, b.VAT)
		}
	}
}
