package update_job

import (
	"context"

	updateJob "github.com/m04kA/SMC-DetailingCRM/internal/usecase/update_job"
)

type UpdateJobUseCase interface {
	Execute(ctx context.Context, req *updateJob.Request) (*updateJob.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
