package check_availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/ptr"
)

type fakeCalendar struct {
	events []domain.CalendarConflict
	err    error
}

func (f *fakeCalendar) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.CalendarConflict, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.CalendarConflict
	for _, e := range f.events {
		if e.Overlaps(start, end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func newTestUseCase(calendar *fakeCalendar) *UseCase {
	checker := bookingengine.NewConflictChecker(calendar, noopLogger{})
	return NewUseCase(checker, noopLogger{})
}

func TestExecute_ClearWindow(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{})

	resp, err := uc.Execute(context.Background(), &Request{
		Start:           time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		DurationMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)

	assert.True(t, resp.Clear)
	assert.Empty(t, resp.Conflicts)
}

func TestExecute_ReportsConflicts(t *testing.T) {
	calendar := &fakeCalendar{events: []domain.CalendarConflict{
		{
			Title: "Team meeting",
			Start: time.Date(2026, 3, 5, 9, 30, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC),
		},
	}}
	uc := newTestUseCase(calendar)

	resp, err := uc.Execute(context.Background(), &Request{
		Start: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		End:   ptr.Ptr(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	assert.False(t, resp.Clear)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, "Team meeting", resp.Conflicts[0].Title)
}

func TestExecute_TouchingEventIsNotConflict(t *testing.T) {
	calendar := &fakeCalendar{events: []domain.CalendarConflict{
		{
			Title: "Earlier job",
			Start: time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC),
			End:   time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		},
	}}
	uc := newTestUseCase(calendar)

	resp, err := uc.Execute(context.Background(), &Request{
		Start:           time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		DurationMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)
	assert.True(t, resp.Clear)
}

func TestExecute_CalendarDownFailsOpen(t *testing.T) {
	calendar := &fakeCalendar{err: errors.New("calendar timeout")}
	uc := newTestUseCase(calendar)

	resp, err := uc.Execute(context.Background(), &Request{
		Start:           time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC),
		DurationMinutes: ptr.Ptr(60),
	})
	require.NoError(t, err)
	assert.True(t, resp.Clear, "calendar outage must not block the flow")
}

func TestExecute_WindowValidation(t *testing.T) {
	uc := newTestUseCase(&fakeCalendar{})

	start := time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero start", &Request{DurationMinutes: ptr.Ptr(60)}},
		{"neither end nor duration", &Request{Start: start}},
		{"both end and duration", &Request{Start: start, End: ptr.Ptr(start.Add(time.Hour)), DurationMinutes: ptr.Ptr(60)}},
		{"end before start", &Request{Start: start, End: ptr.Ptr(start.Add(-time.Hour))}},
		{"end equals start", &Request{Start: start, End: ptr.Ptr(start)}},
		{"non-positive duration", &Request{Start: start, DurationMinutes: ptr.Ptr(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
