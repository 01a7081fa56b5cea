package bookingengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// fakeCalendar управляемый провайдер календаря для тестов
type fakeCalendar struct {
	events []domain.CalendarConflict
	err    error

	// blockCh если задан, FindOverlapping сигналит в startedCh и ждёт —
	// имитация медленного запроса для теста отмены
	blockCh   chan struct{}
	startedCh chan struct{}
}

func (f *fakeCalendar) FindOverlapping(_ context.Context, start, end time.Time) ([]domain.CalendarConflict, error) {
	if f.startedCh != nil {
		f.startedCh <- struct{}{}
	}
	if f.blockCh != nil {
		<-f.blockCh
	}
	if f.err != nil {
		return nil, f.err
	}
	var result []domain.CalendarConflict
	for _, e := range f.events {
		if e.Overlaps(start, end) {
			result = append(result, e)
		}
	}
	return result, nil
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestCheckWindow_Clear(t *testing.T) {
	checker := NewConflictChecker(&fakeCalendar{}, noopLogger{})
	attempt := checker.NewAttempt()

	start := mustTime(t, "2024-06-01T08:00:00Z")
	end := mustTime(t, "2024-06-01T09:00:00Z")

	conflicts, err := attempt.CheckWindow(context.Background(), start, end)
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, StateClear, attempt.State())
}

func TestCheckWindow_ConflictGateScenario(t *testing.T) {
	// Окно 08:00–09:00, существующее событие 08:30–08:45 — ровно один конфликт
	calendar := &fakeCalendar{
		events: []domain.CalendarConflict{
			{
				Title: "Ceramic coating — E. Harris",
				Start: mustTime(t, "2024-06-01T08:30:00Z"),
				End:   mustTime(t, "2024-06-01T08:45:00Z"),
			},
		},
	}
	checker := NewConflictChecker(calendar, noopLogger{})
	attempt := checker.NewAttempt()

	start := mustTime(t, "2024-06-01T08:00:00Z")
	end := mustTime(t, "2024-06-01T09:00:00Z")

	conflicts, err := attempt.CheckWindow(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "Ceramic coating — E. Harris", conflicts[0].Title)
	assert.Equal(t, StateConflicted, attempt.State())

	// ForceBook подтверждает конфликты и сбрасывает попытку
	acknowledged, err := attempt.ForceBook()
	require.NoError(t, err)
	assert.Len(t, acknowledged, 1)
	assert.Equal(t, StateIdle, attempt.State())
	assert.Empty(t, attempt.Conflicts())
}

func TestCheckWindow_TouchingBoundariesAreNotConflicts(t *testing.T) {
	calendar := &fakeCalendar{
		events: []domain.CalendarConflict{
			{Title: "before", Start: mustTime(t, "2024-06-01T07:00:00Z"), End: mustTime(t, "2024-06-01T08:00:00Z")},
			{Title: "after", Start: mustTime(t, "2024-06-01T09:00:00Z"), End: mustTime(t, "2024-06-01T10:00:00Z")},
		},
	}
	checker := NewConflictChecker(calendar, noopLogger{})
	attempt := checker.NewAttempt()

	conflicts, err := attempt.CheckWindow(context.Background(),
		mustTime(t, "2024-06-01T08:00:00Z"), mustTime(t, "2024-06-01T09:00:00Z"))
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, StateClear, attempt.State())
}

func TestCheckWindow_FailOpenOnCalendarError(t *testing.T) {
	calendar := &fakeCalendar{err: errors.New("dial tcp: connection refused")}
	checker := NewConflictChecker(calendar, noopLogger{})
	attempt := checker.NewAttempt()

	conflicts, err := attempt.CheckWindow(context.Background(),
		mustTime(t, "2024-06-01T08:00:00Z"), mustTime(t, "2024-06-01T09:00:00Z"))

	// Недоступный календарь не блокирует бронирование
	require.NoError(t, err)
	assert.Empty(t, conflicts)
	assert.Equal(t, StateClear, attempt.State())
}

func TestCheckWindow_InvalidWindow(t *testing.T) {
	checker := NewConflictChecker(&fakeCalendar{}, noopLogger{})
	attempt := checker.NewAttempt()

	start := mustTime(t, "2024-06-01T09:00:00Z")
	_, err := attempt.CheckWindow(context.Background(), start, start)
	require.ErrorIs(t, err, ErrInvalidWindow)

	_, err = attempt.CheckWindow(context.Background(), start, start.Add(-time.Hour))
	require.ErrorIs(t, err, ErrInvalidWindow)
}

func TestForceBook_RequiresConflictedState(t *testing.T) {
	checker := NewConflictChecker(&fakeCalendar{}, noopLogger{})
	attempt := checker.NewAttempt()

	_, err := attempt.ForceBook()
	require.ErrorIs(t, err, ErrNotConflicted)

	// После чистой проверки force-book тоже не нужен и не разрешён
	_, err = attempt.CheckWindow(context.Background(),
		mustTime(t, "2024-06-01T08:00:00Z"), mustTime(t, "2024-06-01T09:00:00Z"))
	require.NoError(t, err)

	_, err = attempt.ForceBook()
	require.ErrorIs(t, err, ErrNotConflicted)
}

func TestCancel_ResetsConflictedAttempt(t *testing.T) {
	calendar := &fakeCalendar{
		events: []domain.CalendarConflict{
			{Title: "busy", Start: mustTime(t, "2024-06-01T08:00:00Z"), End: mustTime(t, "2024-06-01T10:00:00Z")},
		},
	}
	checker := NewConflictChecker(calendar, noopLogger{})
	attempt := checker.NewAttempt()

	_, err := attempt.CheckWindow(context.Background(),
		mustTime(t, "2024-06-01T08:00:00Z"), mustTime(t, "2024-06-01T09:00:00Z"))
	require.NoError(t, err)
	require.Equal(t, StateConflicted, attempt.State())

	attempt.Cancel()
	assert.Equal(t, StateIdle, attempt.State())
	assert.Empty(t, attempt.Conflicts())

	// Отменённая попытка не допускает force-book
	_, err = attempt.ForceBook()
	require.ErrorIs(t, err, ErrNotConflicted)
}

func TestCheckWindow_InFlightResultDiscardedAfterCancel(t *testing.T) {
	calendar := &fakeCalendar{
		events: []domain.CalendarConflict{
			{Title: "busy", Start: mustTime(t, "2024-06-01T08:00:00Z"), End: mustTime(t, "2024-06-01T10:00:00Z")},
		},
		blockCh:   make(chan struct{}),
		startedCh: make(chan struct{}, 1),
	}
	checker := NewConflictChecker(calendar, noopLogger{})
	attempt := checker.NewAttempt()

	type result struct {
		conflicts []domain.CalendarConflict
		err       error
	}
	resultCh := make(chan result, 1)

	go func() {
		conflicts, err := attempt.CheckWindow(context.Background(),
			mustTime(t, "2024-06-01T08:00:00Z"), mustTime(t, "2024-06-01T09:00:00Z"))
		resultCh <- result{conflicts, err}
	}()

	// Дожидаемся, пока запрос "повиснет" в календаре, отменяем попытку
	// и только потом отпускаем запрос
	<-calendar.startedCh
	attempt.Cancel()
	close(calendar.blockCh)

	res := <-resultCh
	require.ErrorIs(t, res.err, ErrAttemptCancelled)
	assert.Empty(t, res.conflicts)
	// Состояние не изменилось результатом отменённой проверки
	assert.Equal(t, StateIdle, attempt.State())
	assert.Empty(t, attempt.Conflicts())
}
