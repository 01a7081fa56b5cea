package create_price_override

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing/models"
)

type PricingService interface {
	CreateOverride(ctx context.Context, customerID int64, req *models.CreateOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
