package cancel_job

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs/models"
)

type JobService interface {
	Cancel(ctx context.Context, jobID int64, req *models.CancelJobRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
