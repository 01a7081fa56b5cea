package delete_price_override

import (
	"context"
)

type PricingService interface {
	DeleteOverride(ctx context.Context, overrideID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
