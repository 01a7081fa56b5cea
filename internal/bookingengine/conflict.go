package bookingengine

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// AttemptState состояние попытки бронирования
type AttemptState string

const (
	// StateIdle проверка ещё не выполнялась (или попытка сброшена)
	StateIdle AttemptState = "idle"
	// StateClear окно свободно, можно сохранять работу
	StateClear AttemptState = "clear"
	// StateConflicted найдены пересечения; требуется явное
	// подтверждение (ForceBook) или отказ (Cancel)
	StateConflicted AttemptState = "conflicted"
)

// ConflictChecker performs advisory conflict detection against the
// calendar collaborator. The check and the commit are deliberately
// separate so the caller can show a confirmation dialog in between;
// the race with concurrent bookings is accepted.
type ConflictChecker struct {
	calendar CalendarProvider
	logger   Logger
}

// NewConflictChecker создает проверку конфликтов
func NewConflictChecker(calendar CalendarProvider, logger Logger) *ConflictChecker {
	return &ConflictChecker{
		calendar: calendar,
		logger:   logger,
	}
}

// NewAttempt starts a fresh booking attempt in the Idle state
func (c *ConflictChecker) NewAttempt() *Attempt {
	return &Attempt{
		checker: c,
		state:   StateIdle,
	}
}

// Attempt a single booking attempt's conflict-gate state machine:
//
//	Idle --CheckWindow--> Clear | Conflicted
//	Conflicted --ForceBook--> Idle (conflicts acknowledged, persist)
//	Conflicted --Cancel-----> Idle (no job created)
//
// Cancel bumps the generation token so a check still in flight is
// discarded when its result arrives: a cancelled flow never mutates
// state.
type Attempt struct {
	checker *ConflictChecker

	mu         sync.Mutex
	state      AttemptState
	conflicts  []domain.CalendarConflict
	generation uint64
}

// State возвращает текущее состояние попытки
func (a *Attempt) State() AttemptState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Conflicts возвращает снимок зафиксированных конфликтов
func (a *Attempt) Conflicts() []domain.CalendarConflict {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]domain.CalendarConflict(nil), a.conflicts...)
}

// CheckWindow запрашивает у календаря события, пересекающие [start, end).
//
// Недоступность или таймаут календаря — fail open: возвращается пустой
// список конфликтов и попытка переходит в Clear. Бронирование не должно
// блокироваться проверкой занятости, которая сама упала: календарь —
// вторичная система относительно собственного расписания CRM.
func (a *Attempt) CheckWindow(ctx context.Context, start, end time.Time) ([]domain.CalendarConflict, error) {
	if !start.Before(end) {
		return nil, ErrInvalidWindow
	}

	a.mu.Lock()
	gen := a.generation
	a.mu.Unlock()

	conflicts, err := a.checker.calendar.FindOverlapping(ctx, start, end)
	if err != nil {
		a.checker.logger.Error("CheckWindow: calendar unavailable, failing open: window=[%s, %s): %v",
			start.Format(time.RFC3339), end.Format(time.RFC3339), err)
		conflicts = nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	// Попытка была отменена, пока шёл запрос — результат отбрасывается
	if a.generation != gen {
		return nil, ErrAttemptCancelled
	}

	if len(conflicts) == 0 {
		a.state = StateClear
		a.conflicts = nil
		return nil, nil
	}

	a.state = StateConflicted
	a.conflicts = append([]domain.CalendarConflict(nil), conflicts...)

	a.checker.logger.Warn("CheckWindow: %d conflict(s) in window [%s, %s)",
		len(conflicts), start.Format(time.RFC3339), end.Format(time.RFC3339))

	return append([]domain.CalendarConflict(nil), a.conflicts...), nil
}

// ForceBook подтверждает бронирование поверх зафиксированных конфликтов.
// Допустим только в состоянии Conflicted; возвращает подтверждённые
// конфликты и сбрасывает попытку в Idle (проверка не повторяется).
func (a *Attempt) ForceBook() ([]domain.CalendarConflict, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateConflicted {
		return nil, ErrNotConflicted
	}

	acknowledged := a.conflicts
	a.state = StateIdle
	a.conflicts = nil
	a.generation++

	return acknowledged, nil
}

// Cancel прекращает попытку: состояние сбрасывается в Idle, результат
// незавершённой проверки будет отброшен по generation-токену
func (a *Attempt) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = StateIdle
	a.conflicts = nil
	a.generation++
}
