package list_jobs

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs/models"
)

type JobService interface {
	GetJobs(ctx context.Context, req *models.GetJobsRequest) (*models.JobListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
