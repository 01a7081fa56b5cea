package update_job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	jobRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/job"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/pkg/ptr"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// Фейки зависимостей

type fakeJobRepo struct {
	jobs    map[int64]*domain.Job
	updated *domain.Job
}

func (f *fakeJobRepo) GetByID(_ context.Context, id int64) (*domain.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, jobRepo.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

func (f *fakeJobRepo) Update(_ context.Context, job *domain.Job) (*domain.Job, error) {
	if _, ok := f.jobs[job.ID]; !ok {
		return nil, jobRepo.ErrJobNotFound
	}
	saved := *job
	saved.UpdatedAt = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	f.updated = &saved
	return &saved, nil
}

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
	standard map[int64]map[domain.VehicleSize]types.Pence
}

func (f *fakePricingStore) GetStandardPrice(_ context.Context, serviceID int64, size domain.VehicleSize) (*types.Pence, error) {
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

func (f *fakePricingStore) GetCustomerOverrides(_ context.Context, _, _ int64, _ domain.VehicleSize) ([]*domain.PriceOverride, error) {
	return nil, nil
}

type fakeAddOnCatalog struct {
	addons map[int64]*domain.AddOn
}

func (f *fakeAddOnCatalog) GetByIDs(_ context.Context, ids []int64) ([]*domain.AddOn, error) {
	var out []*domain.AddOn
	for _, id := range ids {
		if a, ok := f.addons[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCalendar struct {
	events []domain.CalendarConflict
}

func (f *fakeCalendar) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.CalendarConflict, error) {
	var out []domain.CalendarConflict
	for _, e := range f.events {
		if e.Overlaps(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

// Сборка usecase

func scheduledJob() *domain.Job {
	return &domain.Job{
		ID:              55,
		CustomerID:      42,
		CarID:           7,
		ServiceID:       10,
		VehicleSize:     domain.SizeMedium,
		BookingDatetime: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		DurationMinutes: 180,
		Status:          domain.StatusScheduled,
		BasePrice:       5000,
		TotalPrice:      5000,
		ServiceName:     "Full Valet",
	}
}

func newTestUseCase(repo *fakeJobRepo, calendar *fakeCalendar) *UseCase {
	if calendar == nil {
		calendar = &fakeCalendar{}
	}

	services := &fakeServiceRepo{services: map[int64]*domain.Service{
		10: {ID: 10, Name: "Full Valet", DurationMinutes: 180},
		12: {ID: 12, Name: "Maintenance Wash", DurationMinutes: 60},
		13: {ID: 13, Name: "Ceramic Coating", DurationMinutes: 960, RequiresQuote: true},
	}}

	pricing := &fakePricingStore{standard: map[int64]map[domain.VehicleSize]types.Pence{
		10: {domain.SizeMedium: 5000, domain.SizeXL: 8000},
		12: {domain.SizeMedium: 2500},
	}}

	addons := &fakeAddOnCatalog{addons: map[int64]*domain.AddOn{
		1: {ID: 1, Name: "Engine bay", PriceIncVAT: 1500},
	}}

	resolver := bookingengine.NewPriceResolver(pricing, addons, domain.DefaultVATRate, bookingengine.TieBreakLatestCreated, noopLogger{})
	checker := bookingengine.NewConflictChecker(calendar, noopLogger{})

	uc := NewUseCase(repo, services, resolver, checker, &fakeTxManager{}, noopLogger{})
	uc.timeProvider = &fixedTime{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return uc
}

type fixedTime struct{ t time.Time }

func (f *fixedTime) Now() time.Time { return f.t }

func TestExecute_NotesOnlyKeepsPriceSnapshot(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		JobID:  55,
		UserID: 1,
		Notes:  ptr.Ptr("customer will wait on site"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(5000), resp.TotalPrice, "price snapshot untouched")
	require.NotNil(t, resp.Notes)
	assert.Equal(t, "customer will wait on site", *resp.Notes)
}

func TestExecute_ServiceChangeReprices(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		JobID:     55,
		UserID:    1,
		ServiceID: ptr.Ptr(int64(12)),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2500), resp.BasePrice)
	assert.Equal(t, "Maintenance Wash", resp.ServiceName)
}

func TestExecute_VehicleSizeChangeReprices(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		JobID:       55,
		UserID:      1,
		VehicleSize: ptr.Ptr("XL"),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(8000), resp.BasePrice)
	assert.Equal(t, "xl", resp.VehicleSize)
}

func TestExecute_AddOnsChangeReprices(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		JobID:    55,
		UserID:   1,
		AddOnIDs: ptr.Ptr([]int64{1}),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1500), resp.AddOnsPrice)
	assert.Equal(t, int64(6500), resp.TotalPrice)
}

func TestExecute_DurationChangeNormalizes(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		JobID:         55,
		UserID:        1,
		DurationValue: ptr.Ptr(1.5),
		DurationUnit:  ptr.Ptr("days"),
	})
	require.NoError(t, err)

	assert.Equal(t, 720, resp.DurationMinutes, "1.5 shop days of 8 hours")
}

func TestExecute_RescheduleIntoConflictBlocked(t *testing.T) {
	calendar := &fakeCalendar{events: []domain.CalendarConflict{
		{
			Title: "Supplier visit",
			Start: time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC),
		},
	}}
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, calendar)

	_, err := uc.Execute(context.Background(), &Request{
		JobID:           55,
		UserID:          1,
		BookingDatetime: ptr.Ptr(time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)),
	})
	require.ErrorIs(t, err, ErrBookingConflict)

	var conflictErr *ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Len(t, conflictErr.Conflicts, 1)
	assert.Nil(t, repo.updated)
}

func TestExecute_RescheduleWithForce(t *testing.T) {
	calendar := &fakeCalendar{events: []domain.CalendarConflict{
		{
			Title: "Supplier visit",
			Start: time.Date(2026, 3, 6, 10, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 6, 11, 0, 0, 0, time.UTC),
		},
	}}
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, calendar)

	resp, err := uc.Execute(context.Background(), &Request{
		JobID:           55,
		UserID:          1,
		BookingDatetime: ptr.Ptr(time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC)),
		Force:           true,
	})
	require.NoError(t, err)
	assert.True(t, resp.ForceBooked)
}

func TestExecute_QuoteRequiredDoesNotOverwriteSnapshot(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	// У услуги 12 нет тарифа для XL
	_, err := uc.Execute(context.Background(), &Request{
		JobID:       55,
		UserID:      1,
		ServiceID:   ptr.Ptr(int64(12)),
		VehicleSize: ptr.Ptr("xl"),
	})
	require.ErrorIs(t, err, ErrQuoteRequired)
	assert.Nil(t, repo.updated, "nothing persisted when repricing fails")
}

func TestExecute_QuoteRequiredServiceRejected(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		JobID:     55,
		UserID:    1,
		ServiceID: ptr.Ptr(int64(13)),
	})
	require.ErrorIs(t, err, ErrQuoteRequired)
}

func TestExecute_CompletedJobRejected(t *testing.T) {
	job := scheduledJob()
	job.Status = domain.StatusCompleted
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: job}}
	uc := newTestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		JobID:  55,
		UserID: 1,
		Notes:  ptr.Ptr("too late"),
	})
	require.ErrorIs(t, err, ErrCannotUpdate)
}

func TestExecute_JobNotFound(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{}}
	uc := newTestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{JobID: 999, UserID: 1})
	require.ErrorIs(t, err, ErrJobNotFound)
}

func TestExecute_DurationValueWithoutUnit(t *testing.T) {
	repo := &fakeJobRepo{jobs: map[int64]*domain.Job{55: scheduledJob()}}
	uc := newTestUseCase(repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		JobID:         55,
		UserID:        1,
		DurationValue: ptr.Ptr(2.0),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}
