package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	serviceRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/service"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/catalog/models"
)

// Service сервис каталога услуг (редактор длительности)
type Service struct {
	serviceRepo ServiceRepository
	logger      Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(serviceRepo ServiceRepository, logger Logger) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		logger:      logger,
	}
}

// GetDuration возвращает длительность услуги в минутах
// плюс представление для редактора в подходящей единице
func (s *Service) GetDuration(ctx context.Context, serviceID int64) (*models.DurationResponse, error) {
	s.logger.Info("GetDuration: fetching duration for service id=%d", serviceID)

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetDuration: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetDuration: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: GetDuration - repository error: %v", ErrInternal, err)
	}

	unit := bookingengine.InferDefaultUnit(svc.DurationMinutes)

	return &models.DurationResponse{
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		DurationMinutes: svc.DurationMinutes,
		DisplayValue:    bookingengine.ToDisplay(svc.DurationMinutes, unit),
		DisplayUnit:     string(unit),
	}, nil
}

// UpdateDuration нормализует {value, unit} в минуты и сохраняет
func (s *Service) UpdateDuration(ctx context.Context, serviceID int64, req *models.UpdateDurationRequest) (*models.DurationResponse, error) {
	s.logger.Info("UpdateDuration: updating service id=%d to value=%v unit=%s", serviceID, req.Value, req.Unit)

	unit, err := bookingengine.ParseUnit(req.Unit)
	if err != nil {
		s.logger.Warn("UpdateDuration: invalid unit=%s for service id=%d", req.Unit, serviceID)
		return nil, fmt.Errorf("%w: unit must be hours or days", ErrInvalidInput)
	}

	minutes := bookingengine.ToMinutes(req.Value, unit)

	if err := s.serviceRepo.UpdateDurationMinutes(ctx, serviceID, minutes); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateDuration: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateDuration: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateDuration - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateDuration: service id=%d duration set to %d minutes", serviceID, minutes)

	return &models.DurationResponse{
		ServiceID:       serviceID,
		DurationMinutes: minutes,
		DisplayValue:    bookingengine.ToDisplay(minutes, unit),
		DisplayUnit:     string(unit),
	}, nil
}
