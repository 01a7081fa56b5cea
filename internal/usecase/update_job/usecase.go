package update_job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	jobRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/job"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// UseCase use case для изменения работы на доске
type UseCase struct {
	jobRepo         JobRepository
	serviceRepo     ServiceRepository
	priceResolver   PriceResolver
	conflictChecker ConflictChecker
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	jobRepo JobRepository,
	serviceRepo ServiceRepository,
	priceResolver PriceResolver,
	conflictChecker ConflictChecker,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		jobRepo:         jobRepo,
		serviceRepo:     serviceRepo,
		priceResolver:   priceResolver,
		conflictChecker: conflictChecker,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case изменения работы.
// Цена пересчитывается только при смене услуги, класса автомобиля
// или набора допуслуг; окно перепроверяется по календарю только
// когда изменились время или длительность.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateJob: job=%d, user=%d, force=%v", req.JobID, req.UserID, req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateJob: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем работу
	job, err := uc.jobRepo.GetByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			uc.logger.Warn("UpdateJob: job id=%d not found", req.JobID)
			return nil, ErrJobNotFound
		}
		uc.logger.Error("UpdateJob: repository error for job id=%d: %v", req.JobID, err)
		return nil, fmt.Errorf("%w: failed to get job: %v", ErrInternal, err)
	}

	// 3. Редактировать можно только запланированные работы
	if !job.CanBeUpdated() {
		uc.logger.Warn("UpdateJob: job id=%d cannot be edited, status=%s", req.JobID, job.Status)
		return nil, ErrCannotUpdate
	}

	now := uc.timeProvider.Now()

	// 4. Применяем изменения к копии и пересчитываем то, что затронуто
	updated := *job

	repriceNeeded := false

	if req.ServiceID != nil && *req.ServiceID != job.ServiceID {
		service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("UpdateJob: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("UpdateJob: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.RequiresQuote {
			uc.logger.Warn("UpdateJob: service id=%d requires a manual quote", *req.ServiceID)
			return nil, ErrQuoteRequired
		}

		updated.ServiceID = service.ID
		updated.ServiceName = service.Name
		repriceNeeded = true
	}

	if req.VehicleSize != nil {
		size, err := domain.ParseVehicleSize(*req.VehicleSize)
		if err != nil {
			uc.logger.Warn("UpdateJob: invalid vehicle size %q", *req.VehicleSize)
			return nil, fmt.Errorf("%w: %q", ErrInvalidVehicleSize, *req.VehicleSize)
		}
		if size != job.VehicleSize {
			updated.VehicleSize = size
			repriceNeeded = true
		}
	}

	if req.AddOnIDs != nil {
		updated.AddOnIDs = *req.AddOnIDs
		repriceNeeded = true
	}

	// 5. Пересчитываем ценовой снимок, если затронуты его входы
	if repriceNeeded {
		basePrice, err := uc.priceResolver.ResolveBasePrice(ctx, updated.CustomerID, updated.ServiceID, string(updated.VehicleSize), now)
		if err != nil {
			uc.logger.Error("UpdateJob: price resolution failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
		}
		if basePrice == nil {
			uc.logger.Warn("UpdateJob: no price configured for customer=%d, service=%d, size=%s",
				updated.CustomerID, updated.ServiceID, updated.VehicleSize)
			return nil, ErrQuoteRequired
		}

		addOnsPrice, err := uc.priceResolver.AddOnsTotal(ctx, updated.AddOnIDs)
		if err != nil {
			uc.logger.Error("UpdateJob: add-ons total failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
		}

		updated.BasePrice = *basePrice
		updated.AddOnsPrice = addOnsPrice
		updated.TotalPrice = *basePrice + addOnsPrice
	}

	// 6. Пересобираем окно бронирования
	windowChanged := false

	if req.BookingDatetime != nil && !req.BookingDatetime.Equal(job.BookingDatetime) {
		updated.BookingDatetime = *req.BookingDatetime
		windowChanged = true
	}

	if req.DurationValue != nil {
		unit, err := bookingengine.ParseUnit(*req.DurationUnit)
		if err != nil {
			return nil, fmt.Errorf("%w: durationUnit must be hours or days", ErrInvalidInput)
		}
		minutes := bookingengine.ToMinutes(*req.DurationValue, unit)
		if minutes != job.DurationMinutes {
			updated.DurationMinutes = minutes
			windowChanged = true
		}
	}

	// 7. Новое окно перепроверяем по календарю
	if windowChanged {
		if req.Force {
			updated.ForceBooked = true
			uc.logger.Info("UpdateJob: force rebooking, calendar check skipped")
		} else {
			start, end := updated.Window()
			attempt := uc.conflictChecker.NewAttempt()
			conflicts, err := attempt.CheckWindow(ctx, start, end)
			if err != nil {
				if errors.Is(err, bookingengine.ErrInvalidWindow) {
					return nil, fmt.Errorf("%w: booking window is empty", ErrInvalidInput)
				}
				uc.logger.Error("UpdateJob: conflict check failed: %v", err)
				return nil, fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
			}
			if len(conflicts) > 0 {
				uc.logger.Warn("UpdateJob: %d conflict(s) in window [%s, %s)",
					len(conflicts), start.Format(time.RFC3339), end.Format(time.RFC3339))
				return nil, &ConflictError{Conflicts: conflicts}
			}
		}
	}

	if req.DepositAmount != nil {
		updated.DepositAmount = types.Pence(*req.DepositAmount)
	}

	if req.Notes != nil {
		updated.Notes = req.Notes
	}

	// Переменная для хранения результата
	var result *domain.Job

	// 8. Сохраняем изменения в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		saved, err := uc.jobRepo.Update(txCtx, &updated)
		if err != nil {
			if errors.Is(err, jobRepo.ErrJobNotFound) {
				return ErrJobNotFound
			}
			uc.logger.Error("UpdateJob: failed to update job id=%d: %v", req.JobID, err)
			return fmt.Errorf("%w: failed to update job: %v", ErrInternal, err)
		}

		result = saved
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateJob: successfully updated job id=%d, total=%s", result.ID, result.TotalPrice)

	return &Response{
		ID:              result.ID,
		CustomerID:      result.CustomerID,
		CarID:           result.CarID,
		ServiceID:       result.ServiceID,
		VehicleSize:     string(result.VehicleSize),
		BookingDatetime: result.BookingDatetime,
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		BasePrice:       int64(result.BasePrice),
		AddOnsPrice:     int64(result.AddOnsPrice),
		TotalPrice:      int64(result.TotalPrice),
		DepositAmount:   int64(result.DepositAmount),
		ForceBooked:     result.ForceBooked,
		ServiceName:     result.ServiceName,
		AddOnIDs:        result.AddOnIDs,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.JobID <= 0 {
		return fmt.Errorf("%w: jobID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if (req.DurationValue == nil) != (req.DurationUnit == nil) {
		return fmt.Errorf("%w: durationValue and durationUnit must be set together", ErrInvalidInput)
	}

	if req.BookingDatetime != nil && req.BookingDatetime.IsZero() {
		return fmt.Errorf("%w: bookingDatetime must not be zero", ErrInvalidInput)
	}

	if req.DepositAmount != nil && *req.DepositAmount < 0 {
		return fmt.Errorf("%w: depositAmount must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
