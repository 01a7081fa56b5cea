package set_standard_price

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing/models"
)

type PricingService interface {
	SetStandardPrice(ctx context.Context, serviceID int64, req *models.SetStandardPriceRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
