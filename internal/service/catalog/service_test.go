package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/catalog/models"
)

// Фейки

type fakeServiceRepo struct {
	services map[int64]*domain.Service

	updatedID      int64
	updatedMinutes int
}

func (f *fakeServiceRepo) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

func (f *fakeServiceRepo) UpdateDurationMinutes(ctx context.Context, id int64, minutes int) error {
	if _, ok := f.services[id]; !ok {
		return serviceRepo.ErrServiceNotFound
	}
	f.updatedID = id
	f.updatedMinutes = minutes
	return nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestService(durationMinutes int) (*Service, *fakeServiceRepo) {
	repo := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {
			ID:              10,
			Name:            "Full Valet",
			DurationMinutes: durationMinutes,
		},
	}}
	return NewService(repo, noopLogger{}), repo
}

func TestService_GetDuration_DisplaysShortJobInHours(t *testing.T) {
	svc, _ := newTestService(180)

	resp, err := svc.GetDuration(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, 180, resp.DurationMinutes)
	assert.Equal(t, "hours", resp.DisplayUnit)
	assert.Equal(t, 3.0, resp.DisplayValue)
	assert.Equal(t, "Full Valet", resp.ServiceName)
}

func TestService_GetDuration_DisplaysLongJobInDays(t *testing.T) {
	svc, _ := newTestService(600)

	resp, err := svc.GetDuration(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "days", resp.DisplayUnit)
	assert.Equal(t, 1.25, resp.DisplayValue)
}

func TestService_GetDuration_FullWorkdayStaysInHours(t *testing.T) {
	svc, _ := newTestService(480)

	resp, err := svc.GetDuration(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "hours", resp.DisplayUnit)
	assert.Equal(t, 8.0, resp.DisplayValue)
}

func TestService_GetDuration_NotFound(t *testing.T) {
	svc, _ := newTestService(180)

	_, err := svc.GetDuration(context.Background(), 404)

	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestService_UpdateDuration_NormalizesHours(t *testing.T) {
	svc, repo := newTestService(180)

	resp, err := svc.UpdateDuration(context.Background(), 10, &models.UpdateDurationRequest{
		Value: 2.5,
		Unit:  "hours",
	})

	require.NoError(t, err)
	assert.Equal(t, 150, repo.updatedMinutes)
	assert.Equal(t, 150, resp.DurationMinutes)
	assert.Equal(t, 2.5, resp.DisplayValue)
}

func TestService_UpdateDuration_NormalizesWorkdays(t *testing.T) {
	svc, repo := newTestService(180)

	_, err := svc.UpdateDuration(context.Background(), 10, &models.UpdateDurationRequest{
		Value: 1.5,
		Unit:  "days",
	})

	require.NoError(t, err)
	assert.Equal(t, 720, repo.updatedMinutes)
}

func TestService_UpdateDuration_ClampsAboveMaximum(t *testing.T) {
	svc, repo := newTestService(180)

	_, err := svc.UpdateDuration(context.Background(), 10, &models.UpdateDurationRequest{
		Value: 100,
		Unit:  "days",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.MaxJobDurationMinutes, repo.updatedMinutes)
}

func TestService_UpdateDuration_InvalidUnit(t *testing.T) {
	svc, repo := newTestService(180)

	_, err := svc.UpdateDuration(context.Background(), 10, &models.UpdateDurationRequest{
		Value: 2,
		Unit:  "weeks",
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Zero(t, repo.updatedID)
}

func TestService_UpdateDuration_NotFound(t *testing.T) {
	svc, _ := newTestService(180)

	_, err := svc.UpdateDuration(context.Background(), 404, &models.UpdateDurationRequest{
		Value: 2,
		Unit:  "hours",
	})

	assert.ErrorIs(t, err, ErrServiceNotFound)
}
