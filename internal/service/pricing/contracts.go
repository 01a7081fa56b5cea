package pricing

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// PricingRepository интерфейс репозитория цен
type PricingRepository interface {
	UpsertStandardPrice(ctx context.Context, serviceID int64, size domain.VehicleSize, price types.Pence) error
	CreateOverride(ctx context.Context, override *domain.PriceOverride) (*domain.PriceOverride, error)
	DeleteOverride(ctx context.Context, id int64) error
}

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
