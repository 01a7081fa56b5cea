package jobs

import (
	"context"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// JobRepository интерфейс репозитория работ
type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Job, error)
	GetWithFilter(ctx context.Context, filter domain.JobsFilter) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, id int64, status domain.JobStatus) error
	Cancel(ctx context.Context, id int64, status domain.JobStatus, reason string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
