package quote_price

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
)

// UseCase use case предварительного расчёта цены (без создания работы)
type UseCase struct {
	serviceRepo   ServiceRepository
	priceResolver PriceResolver
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	priceResolver PriceResolver,
	logger Logger,
) *UseCase {
	return &UseCase{
		serviceRepo:   serviceRepo,
		priceResolver: priceResolver,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет расчёт цены для (клиент, услуга, класс автомобиля)
// плюс выбранных допуслуг, с разложением итога по НДС
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: customer=%d, service=%d, size=%s, addons=%d",
		req.CustomerID, req.ServiceID, req.VehicleSize, len(req.AddOnIDs))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	// 2. Определяем момент расчёта
	asOf := uc.timeProvider.Now()
	if req.AsOf != nil {
		asOf = *req.AsOf
	}

	// 3. Получаем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("QuotePrice: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("QuotePrice: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Услуга с индивидуальной оценкой — сразу quote required
	if service.RequiresQuote {
		uc.logger.Info("QuotePrice: service id=%d requires a manual quote", req.ServiceID)
		return &Response{
			ServiceID:     service.ID,
			ServiceName:   service.Name,
			VehicleSize:   req.VehicleSize,
			QuoteRequired: true,
			VATRate:       uc.priceResolver.VATRate(),
		}, nil
	}

	// 5. Разрешаем базовую цену
	basePrice, err := uc.priceResolver.ResolveBasePrice(ctx, req.CustomerID, req.ServiceID, req.VehicleSize, asOf)
	if err != nil {
		if errors.Is(err, bookingengine.ErrUnknownVehicleSize) {
			uc.logger.Warn("QuotePrice: invalid vehicle size %q", req.VehicleSize)
			return nil, fmt.Errorf("%w: %q", ErrInvalidVehicleSize, req.VehicleSize)
		}
		uc.logger.Error("QuotePrice: price resolution failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	if basePrice == nil {
		uc.logger.Info("QuotePrice: no price configured for customer=%d, service=%d, size=%s",
			req.CustomerID, req.ServiceID, req.VehicleSize)
		return &Response{
			ServiceID:     service.ID,
			ServiceName:   service.Name,
			VehicleSize:   req.VehicleSize,
			QuoteRequired: true,
			VATRate:       uc.priceResolver.VATRate(),
		}, nil
	}

	// 6. Считаем допуслуги и раскладываем итог по НДС
	addOnsPrice, err := uc.priceResolver.AddOnsTotal(ctx, req.AddOnIDs)
	if err != nil {
		uc.logger.Error("QuotePrice: add-ons total failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrPricingUnavailable, err)
	}

	total := *basePrice + addOnsPrice
	breakdown := uc.priceResolver.Decompose(total)

	uc.logger.Info("QuotePrice: resolved total=%s for customer=%d, service=%d", total, req.CustomerID, req.ServiceID)

	return &Response{
		ServiceID:   service.ID,
		ServiceName: service.Name,
		VehicleSize: req.VehicleSize,
		BasePrice:   int64(*basePrice),
		AddOnsPrice: int64(addOnsPrice),
		TotalPrice:  int64(total),
		ExVATPrice:  int64(breakdown.ExVAT),
		VATAmount:   int64(breakdown.VAT),
		VATRate:     uc.priceResolver.VATRate(),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.VehicleSize == "" {
		return fmt.Errorf("%w: vehicleSize is required", ErrInvalidInput)
	}

	return nil
}
