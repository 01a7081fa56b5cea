package quote_price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/pkg/ptr"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakePricingStore struct {
	standard  map[domain.VehicleSize]types.Pence
	overrides []*domain.PriceOverride
	err       error
}

func (f *fakePricingStore) GetStandardPrice(_ context.Context, _ int64, size domain.VehicleSize) (*types.Pence, error) {
	if f.err != nil {
		return nil, f.err
	}
	price, ok := f.standard[size]
	if !ok {
		return nil, nil
	}
	return &price, nil
}

func (f *fakePricingStore) GetCustomerOverrides(_ context.Context, _, _ int64, _ domain.VehicleSize) ([]*domain.PriceOverride, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.overrides, nil
}

type fakeAddOnCatalog struct {
	addons []*domain.AddOn
}

func (f *fakeAddOnCatalog) GetByIDs(_ context.Context, _ []int64) ([]*domain.AddOn, error) {
	return f.addons, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(pricing *fakePricingStore, addons *fakeAddOnCatalog) *UseCase {
	if pricing == nil {
		pricing = &fakePricingStore{standard: map[domain.VehicleSize]types.Pence{
			domain.SizeMedium: 5000,
		}}
	}
	if addons == nil {
		addons = &fakeAddOnCatalog{}
	}

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, Name: "Full Valet", DurationMinutes: 180},
		13: {ID: 13, Name: "Ceramic Coating", DurationMinutes: 960, RequiresQuote: true},
	}}

	resolver := bookingengine.NewPriceResolver(pricing, addons, domain.DefaultVATRate, bookingengine.TieBreakLatestCreated, noopLogger{})
	return NewUseCase(services, resolver, noopLogger{})
}

func TestExecute_QuoteWithBreakdown(t *testing.T) {
	addons := &fakeAddOnCatalog{addons: []*domain.AddOn{
		{ID: 1, Name: "Engine bay", PriceIncVAT: 1500},
	}}
	uc := newTestUseCase(nil, addons)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   10,
		VehicleSize: "medium",
		AddOnIDs:    []int64{1},
	})
	require.NoError(t, err)

	assert.False(t, resp.QuoteRequired)
	assert.Equal(t, int64(5000), resp.BasePrice)
	assert.Equal(t, int64(1500), resp.AddOnsPrice)
	assert.Equal(t, int64(6500), resp.TotalPrice)
	assert.Equal(t, resp.TotalPrice, resp.ExVATPrice+resp.VATAmount)
	assert.Equal(t, domain.DefaultVATRate, resp.VATRate)
}

func TestExecute_OverrideAppliesAtAsOf(t *testing.T) {
	validUntil := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	pricing := &fakePricingStore{
		standard: map[domain.VehicleSize]types.Pence{domain.SizeMedium: 5000},
		overrides: []*domain.PriceOverride{
			{ID: 1, PriceIncVAT: 4000, ValidUntil: &validUntil, CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
	uc := newTestUseCase(pricing, nil)

	// До истечения — клиентская цена
	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   10,
		VehicleSize: "medium",
		AsOf:        ptr.Ptr(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4000), resp.BasePrice)

	// После истечения — стандартный тариф
	resp, err = uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   10,
		VehicleSize: "medium",
		AsOf:        ptr.Ptr(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), resp.BasePrice)
}

func TestExecute_QuoteRequiredWhenNoTier(t *testing.T) {
	pricing := &fakePricingStore{standard: map[domain.VehicleSize]types.Pence{}}
	uc := newTestUseCase(pricing, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   10,
		VehicleSize: "xl",
	})
	require.NoError(t, err)

	assert.True(t, resp.QuoteRequired)
	assert.Zero(t, resp.TotalPrice, "price fields stay empty, never a silent zero quote")
	assert.Zero(t, resp.BasePrice)
}

func TestExecute_QuoteRequiredWhenServiceFlagged(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   13,
		VehicleSize: "medium",
	})
	require.NoError(t, err)
	assert.True(t, resp.QuoteRequired)
}

func TestExecute_PricingUnavailable(t *testing.T) {
	pricing := &fakePricingStore{err: errors.New("connection refused")}
	uc := newTestUseCase(pricing, nil)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   10,
		VehicleSize: "medium",
	})
	require.ErrorIs(t, err, ErrPricingUnavailable)
}

func TestExecute_InvalidVehicleSize(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   10,
		VehicleSize: "huge",
	})
	require.ErrorIs(t, err, ErrInvalidVehicleSize)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID:  42,
		ServiceID:   999,
		VehicleSize: "medium",
	})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(nil, nil)

	tests := []struct {
		name string
		req  *Request
	}{
		{"missing customer", &Request{ServiceID: 10, VehicleSize: "medium"}},
		{"missing service", &Request{CustomerID: 42, VehicleSize: "medium"}},
		{"empty vehicle size", &Request{CustomerID: 42, ServiceID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
