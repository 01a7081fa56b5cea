package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	pricingRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/pricing"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing/models"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// Фейки

type fakePricingRepo struct {
	upsertedServiceID int64
	upsertedSize      domain.VehicleSize
	upsertedPrice     types.Pence

	createdOverride *domain.PriceOverride

	deletedID int64
	overrides map[int64]bool
}

func (f *fakePricingRepo) UpsertStandardPrice(ctx context.Context, serviceID int64, size domain.VehicleSize, price types.Pence) error {
	f.upsertedServiceID = serviceID
	f.upsertedSize = size
	f.upsertedPrice = price
	return nil
}

func (f *fakePricingRepo) CreateOverride(ctx context.Context, override *domain.PriceOverride) (*domain.PriceOverride, error) {
	override.ID = 301
	override.CreatedAt = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	f.createdOverride = override
	return override, nil
}

func (f *fakePricingRepo) DeleteOverride(ctx context.Context, id int64) error {
	if !f.overrides[id] {
		return pricingRepo.ErrOverrideNotFound
	}
	f.deletedID = id
	return nil
}

type fakeServiceRepo struct {
	services map[int64]*domain.Service
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService() (*Service, *fakePricingRepo) {
	repo := &fakePricingRepo{overrides: map[int64]bool{301: true}}
	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, Name: "Full Valet", DurationMinutes: 180},
	}}
	return NewService(repo, services, noopLogger{}), repo
}

func TestService_SetStandardPrice_UpsertsTier(t *testing.T) {
	svc, repo := newTestService()

	err := svc.SetStandardPrice(context.Background(), 10, &models.SetStandardPriceRequest{
		VehicleSize: "Medium",
		PricePence:  5000,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(10), repo.upsertedServiceID)
	assert.Equal(t, domain.SizeMedium, repo.upsertedSize)
	assert.Equal(t, types.Pence(5000), repo.upsertedPrice)
}

func TestService_SetStandardPrice_RejectsZeroPrice(t *testing.T) {
	svc, repo := newTestService()

	err := svc.SetStandardPrice(context.Background(), 10, &models.SetStandardPriceRequest{
		VehicleSize: "medium",
		PricePence:  0,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.upsertedServiceID)
}

func TestService_SetStandardPrice_InvalidVehicleSize(t *testing.T) {
	svc, _ := newTestService()

	err := svc.SetStandardPrice(context.Background(), 10, &models.SetStandardPriceRequest{
		VehicleSize: "gigantic",
		PricePence:  5000,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SetStandardPrice_ServiceNotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.SetStandardPrice(context.Background(), 404, &models.SetStandardPriceRequest{
		VehicleSize: "medium",
		PricePence:  5000,
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_CreateOverride_ReturnsCreatedOverride(t *testing.T) {
	svc, repo := newTestService()

	validUntil := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	resp, err := svc.CreateOverride(context.Background(), 200, &models.CreateOverrideRequest{
		ServiceID:   10,
		VehicleSize: "xl",
		PricePence:  4200,
		ValidUntil:  &validUntil,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(301), resp.ID)
	assert.Equal(t, int64(200), resp.CustomerID)
	assert.Equal(t, "xl", resp.VehicleSize)
	assert.Equal(t, int64(4200), resp.PricePence)
	require.NotNil(t, resp.ValidUntil)
	assert.Equal(t, "2026-06-01T00:00:00Z", *resp.ValidUntil)
	assert.Equal(t, domain.SizeXL, repo.createdOverride.VehicleSize)
}

func TestService_CreateOverride_OpenEnded(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.CreateOverride(context.Background(), 200, &models.CreateOverrideRequest{
		ServiceID:   10,
		VehicleSize: "medium",
		PricePence:  4200,
	})

	require.NoError(t, err)
	assert.Nil(t, resp.ValidUntil)
	assert.Nil(t, repo.createdOverride.ValidUntil)
}

func TestService_CreateOverride_ServiceNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateOverride(context.Background(), 200, &models.CreateOverrideRequest{
		ServiceID:   404,
		VehicleSize: "medium",
		PricePence:  4200,
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_CreateOverride_RejectsNonPositivePrice(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateOverride(context.Background(), 200, &models.CreateOverrideRequest{
		ServiceID:   10,
		VehicleSize: "medium",
		PricePence:  -1,
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_DeleteOverride_Deletes(t *testing.T) {
	svc, repo := newTestService()

	err := svc.DeleteOverride(context.Background(), 301)

	require.NoError(t, err)
	assert.Equal(t, int64(301), repo.deletedID)
}

func TestService_DeleteOverride_NotFound(t *testing.T) {
	svc, _ := newTestService()

	err := svc.DeleteOverride(context.Background(), 404)

	assert.ErrorIs(t, err, ErrOverrideNotFound)
}
