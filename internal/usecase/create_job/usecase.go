package create_job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// UseCase use case для создания работы на доске
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

// Execute выполняет use case создания работы.
// Цена и длительность фиксируются снимком до проверки календаря;
// работа никогда не создаётся с неразрешённой ценой или
// неподтверждённым конфликтом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateJob: user=%d, customer=%d, service=%d, size=%s, datetime=%s, force=%v",
		req.UserID, req.CustomerID, req.ServiceID, req.VehicleSize,
		req.BookingDatetime.Format(time.RFC3339), req.Force)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateJob: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateJob: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateJob: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Услуги с индивидуальной оценкой не бронируются автоматически
	if service.RequiresQuote {
		uc.logger.Warn("CreateJob: service id=%d requires a manual quote", req.ServiceID)
		return nil, ErrQuoteRequired
	}

	// 5. Разрешаем базовую цену (клиентская цена > тариф > quote required)
	basePrice, err := uc.priceResolver.ResolveBasePrice(ctx, req.CustomerID, req.ServiceID, req.VehicleSize, now)
	if err != nil {
		if errors.Is(err, bookingengine.ErrUnknownVehicleSize) {
			uc.logger.Warn("CreateJob: invalid vehicle size %q", req.VehicleSize)
			return nil, fmt.Errorf("%w: %q", ErrInvalidVehicleSize, req.VehicleSize)
		}
		uc.logger.Error("CreateJob: price resolution failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	if basePrice == nil {
		uc.logger.Warn("CreateJob: no price configured for customer=%d, service=%d, size=%s",
			req.CustomerID, req.ServiceID, req.VehicleSize)
		return nil, ErrQuoteRequired
	}

	// 6. Считаем сумму дополнительных услуг
	addOnsPrice, err := uc.priceResolver.AddOnsTotal(ctx, req.AddOnIDs)
	if err != nil {
		uc.logger.Error("CreateJob: add-ons total failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	totalPrice := *basePrice + addOnsPrice

	// 7. Определяем длительность работы
	durationMinutes, err := uc.resolveDuration(req, service)
	if err != nil {
		uc.logger.Warn("CreateJob: duration resolution failed: %v", err)
		return nil, err
	}

	start := req.BookingDatetime
	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	// 8. Проверяем пересечения с календарём (если не force)
	forceBooked := false
	if req.Force {
		// Конфликты явно подтверждены вызывающей стороной
		forceBooked = true
		uc.logger.Info("CreateJob: force booking, calendar check skipped")
	} else {
		attempt := uc.conflictChecker.NewAttempt()
		conflicts, err := attempt.CheckWindow(ctx, start, end)
		if err != nil {
			if errors.Is(err, bookingengine.ErrInvalidWindow) {
				return nil, fmt.Errorf("%w: booking window is empty", ErrInvalidInput)
			}
			uc.logger.Error("CreateJob: conflict check failed: %v", err)
			return nil, fmt.Errorf("%w: conflict check: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("CreateJob: %d conflict(s) in window [%s, %s)",
				len(conflicts), start.Format(time.RFC3339), end.Format(time.RFC3339))
			return nil, &ConflictError{Conflicts: conflicts}
		}
	}

	var deposit types.Pence
	if req.DepositAmount != nil {
		deposit = types.Pence(*req.DepositAmount)
	}

	size, _ := domain.ParseVehicleSize(req.VehicleSize)

	// Переменная для хранения результата
	var result *domain.Job

	// 9. Сохраняем работу в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		job := &domain.Job{
			CustomerID:      req.CustomerID,
			CarID:           req.CarID,
			ServiceID:       req.ServiceID,
			VehicleSize:     size,
			BookingDatetime: start,
			DurationMinutes: durationMinutes,
			Status:          domain.StatusScheduled,
			BasePrice:       *basePrice,
			AddOnsPrice:     addOnsPrice,
			TotalPrice:      totalPrice,
			DepositAmount:   deposit,
			ForceBooked:     forceBooked,
			ServiceName:     service.Name,
			AddOnIDs:        req.AddOnIDs,
			Notes:           req.Notes,
		}

		created, err := uc.jobRepo.Create(txCtx, job)
		if err != nil {
			uc.logger.Error("CreateJob: failed to create job: %v", err)
			return fmt.Errorf("%w: failed to create job: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateJob: successfully created job id=%d, total=%s", result.ID, result.TotalPrice)

	breakdown := uc.priceResolver.Decompose(result.TotalPrice)

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
		ExVATPrice:      int64(breakdown.ExVAT),
		VATAmount:       int64(breakdown.VAT),
		DepositAmount:   int64(result.DepositAmount),
		ForceBooked:     result.ForceBooked,
		ServiceName:     result.ServiceName,
		AddOnIDs:        result.AddOnIDs,
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// resolveDuration возвращает длительность работы в минутах:
// явное значение из запроса либо дефолт услуги
func (uc *UseCase) resolveDuration(req *Request, service *domain.Service) (int, error) {
	if req.DurationValue == nil {
		return service.DurationMinutes, nil
	}

	unit, err := bookingengine.ParseUnit(*req.DurationUnit)
	if err != nil {
		return 0, fmt.Errorf("%w: durationUnit must be hours or days", ErrInvalidInput)
	}

	return bookingengine.ToMinutes(*req.DurationValue, unit), nil
}
