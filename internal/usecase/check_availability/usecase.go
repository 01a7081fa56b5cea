package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
)

// UseCase use case одноразовой проверки занятости окна по календарю
type UseCase struct {
	conflictChecker ConflictChecker
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(conflictChecker ConflictChecker, logger Logger) *UseCase {
	return &UseCase{
		conflictChecker: conflictChecker,
		logger:          logger,
	}
}

// Execute проверяет окно по календарю и возвращает найденные пересечения.
// Проверка рекомендательная: результат нигде не сохраняется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	start, end, err := resolveWindow(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("CheckAvailability: window=[%s, %s)",
		start.Format(time.RFC3339), end.Format(time.RFC3339))

	attempt := uc.conflictChecker.NewAttempt()
	conflicts, err := attempt.CheckWindow(ctx, start, end)
	if err != nil {
		if errors.Is(err, bookingengine.ErrInvalidWindow) {
			return nil, fmt.Errorf("%w: window end must be after start", ErrInvalidInput)
		}
		uc.logger.Error("CheckAvailability: conflict check failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		Clear:     len(conflicts) == 0,
		Conflicts: make([]Conflict, 0, len(conflicts)),
	}
	for _, c := range conflicts {
		resp.Conflicts = append(resp.Conflicts, Conflict{
			Title: c.Title,
			Start: c.Start,
			End:   c.End,
		})
	}

	uc.logger.Info("CheckAvailability: clear=%v, conflicts=%d", resp.Clear, len(resp.Conflicts))
	return resp, nil
}

// resolveWindow собирает окно [start, end) из запроса
func resolveWindow(req *Request) (time.Time, time.Time, error) {
	if req.Start.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: start is required", ErrInvalidInput)
	}

	if (req.End == nil) == (req.DurationMinutes == nil) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: exactly one of end or durationMinutes is required", ErrInvalidInput)
	}

	if req.End != nil {
		if !req.Start.Before(*req.End) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: end must be after start", ErrInvalidInput)
		}
		return req.Start, *req.End, nil
	}

	if *req.DurationMinutes <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: durationMinutes must be positive", ErrInvalidInput)
	}

	return req.Start, req.Start.Add(time.Duration(*req.DurationMinutes) * time.Minute), nil
}
