package get_service_duration

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/catalog/models"
)

type CatalogService interface {
	GetDuration(ctx context.Context, serviceID int64) (*models.DurationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
