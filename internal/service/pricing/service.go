package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	pricingRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/pricing"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing/models"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// Service сервис управления ценами (стандартные тарифы и клиентские цены)
type Service struct {
	pricingRepo PricingRepository
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса цен
func NewService(pricingRepo PricingRepository, serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		pricingRepo: pricingRepo,
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// SetStandardPrice устанавливает стандартный тариф для (услуга, класс).
// Нулевая или отрицательная цена запрещена: отсутствие тарифа
// выражается отсутствием строки, а не нулём.
func (s *Service) SetStandardPrice(ctx context.Context, serviceID int64, req *models.SetStandardPriceRequest) error {
	s.logger.Info("SetStandardPrice: setting price for service id=%d, size=%s, price=%d",
		serviceID, req.VehicleSize, req.PricePence)

	size, err := domain.ParseVehicleSize(req.VehicleSize)
	if err != nil {
		s.logger.Warn("SetStandardPrice: invalid vehicle size=%s", req.VehicleSize)
		return fmt.Errorf("%w: invalid vehicle size", ErrInvalidInput)
	}

	if req.PricePence <= 0 {
		s.logger.Warn("SetStandardPrice: non-positive price=%d for service id=%d", req.PricePence, serviceID)
		return fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	if _, err := s.serviceRepo.GetByID(ctx, serviceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("SetStandardPrice: service id=%d not found", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("SetStandardPrice: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: SetStandardPrice - repository error: %v", ErrInternal, err)
	}

	if err := s.pricingRepo.UpsertStandardPrice(ctx, serviceID, size, types.Pence(req.PricePence)); err != nil {
		s.logger.Error("SetStandardPrice: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: SetStandardPrice - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetStandardPrice: price set for service id=%d, size=%s", serviceID, size)
	return nil
}

// CreateOverride создает клиентскую цену, которая перекрывает
// стандартный тариф для конкретного клиента
func (s *Service) CreateOverride(ctx context.Context, customerID int64, req *models.CreateOverrideRequest) (*models.OverrideResponse, error) {
	s.logger.Info("CreateOverride: creating override for customer=%d, service=%d, size=%s, price=%d",
		customerID, req.ServiceID, req.VehicleSize, req.PricePence)

	size, err := domain.ParseVehicleSize(req.VehicleSize)
	if err != nil {
		s.logger.Warn("CreateOverride: invalid vehicle size=%s", req.VehicleSize)
		return nil, fmt.Errorf("%w: invalid vehicle size", ErrInvalidInput)
	}

	if req.PricePence <= 0 {
		s.logger.Warn("CreateOverride: non-positive price=%d for customer=%d", req.PricePence, customerID)
		return nil, fmt.Errorf("%w: price must be positive", ErrInvalidInput)
	}

	if _, err := s.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("CreateOverride: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("CreateOverride: repository error for service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	override := &domain.PriceOverride{
		CustomerID:  customerID,
		ServiceID:   req.ServiceID,
		VehicleSize: size,
		PriceIncVAT: types.Pence(req.PricePence),
		ValidUntil:  req.ValidUntil,
	}

	created, err := s.pricingRepo.CreateOverride(ctx, override)
	if err != nil {
		s.logger.Error("CreateOverride: repository error for customer=%d: %v", customerID, err)
		return nil, fmt.Errorf("%w: CreateOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateOverride: override id=%d created for customer=%d", created.ID, customerID)
	return models.FromDomainOverride(created), nil
}

// DeleteOverride удаляет клиентскую цену; клиент возвращается
// на стандартный тариф
func (s *Service) DeleteOverride(ctx context.Context, overrideID int64) error {
	s.logger.Info("DeleteOverride: deleting override id=%d", overrideID)

	if err := s.pricingRepo.DeleteOverride(ctx, overrideID); err != nil {
		if errors.Is(err, pricingRepo.ErrOverrideNotFound) {
			s.logger.Warn("DeleteOverride: override id=%d not found", overrideID)
			return ErrOverrideNotFound
		}
		s.logger.Error("DeleteOverride: repository error for override id=%d: %v", overrideID, err)
		return fmt.Errorf("%w: DeleteOverride - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteOverride: override id=%d deleted", overrideID)
	return nil
}
