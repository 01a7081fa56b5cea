package update_service_duration

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateDuration(ctx context.Context, serviceID int64, req *models.UpdateDurationRequest) (*models.DurationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
