package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	jobRepo "github.com/m04kA/SMC-DetailingCRM/internal/infra/storage/job"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs/models"
)

// Service сервис для работы с доской работ
type Service struct {
	jobRepo JobRepository
	logger  Logger
}

// NewService создает новый экземпляр сервиса работ
func NewService(jobRepo JobRepository, logger Logger) *Service {
	return &Service{
		jobRepo: jobRepo,
		logger:  logger,
	}
}

// GetByID получает работу по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.JobResponse, error) {
	s.logger.Info("GetByID: fetching job id=%d", id)

	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("GetByID: job id=%d not found", id)
			return nil, ErrJobNotFound
		}
		s.logger.Error("GetByID: repository error for job id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByID: successfully fetched job id=%d", id)
	return models.FromDomainJob(job), nil
}

// GetJobs получает работы для доски с гибкой фильтрацией
// Поддерживает фильтрацию по клиенту, услуге, периоду и статусу.
// По умолчанию отменённые и no-show работы скрыты (IncludeInactive = false).
func (s *Service) GetJobs(ctx context.Context, req *models.GetJobsRequest) (*models.JobListResponse, error) {
	logMsg := "GetJobs: fetching jobs"
	if req.CustomerID != nil {
		logMsg += fmt.Sprintf(", customer=%d", *req.CustomerID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetJobs: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	found, err := s.jobRepo.GetWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetJobs: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetJobs - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetJobs: successfully fetched %d jobs", len(found))
	return models.FromDomainJobList(found), nil
}

// Cancel отменяет работу (soft delete)
// Если отменяет сам клиент - статус cancelled_by_customer,
// если сотрудник - cancelled_by_staff
func (s *Service) Cancel(ctx context.Context, jobID int64, req *models.CancelJobRequest) error {
	s.logger.Info("Cancel: cancelling job id=%d by user=%d", jobID, req.UserID)

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("Cancel: job id=%d not found", jobID)
			return ErrJobNotFound
		}
		s.logger.Error("Cancel: repository error for job id=%d: %v", jobID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !job.CanBeCancelled() {
		s.logger.Warn("Cancel: job id=%d cannot be cancelled, status=%s", jobID, job.Status)
		return ErrCannotCancel
	}

	if len([]rune(req.CancellationReason)) > domain.MaxCancellationReasonLength {
		s.logger.Warn("Cancel: cancellation reason too long for job id=%d", jobID)
		return fmt.Errorf("%w: cancellation reason must not exceed %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	cancelStatus := domain.StatusCancelledByStaff
	if job.CustomerID == req.UserID {
		cancelStatus = domain.StatusCancelledByUser
	}

	if err := s.jobRepo.Cancel(ctx, jobID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("Cancel: job id=%d not found during cancellation", jobID)
			return ErrJobNotFound
		}
		s.logger.Error("Cancel: repository error for job id=%d: %v", jobID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled job id=%d with status=%s", jobID, cancelStatus)
	return nil
}

// UpdateStatus переводит работу в другой этап конвейера
func (s *Service) UpdateStatus(ctx context.Context, jobID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating job id=%d to status=%s by user=%d",
		jobID, req.Status, req.UserID)

	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("UpdateStatus: job id=%d not found", jobID)
			return ErrJobNotFound
		}
		s.logger.Error("UpdateStatus: repository error for job id=%d: %v", jobID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	newStatus, err := models.ToDomainJobStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for job id=%d", req.Status, jobID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if err := s.jobRepo.UpdateStatus(ctx, jobID, newStatus); err != nil {
		if errors.Is(err, jobRepo.ErrJobNotFound) {
			s.logger.Warn("UpdateStatus: job id=%d not found during update", jobID)
			return ErrJobNotFound
		}
		s.logger.Error("UpdateStatus: repository error for job id=%d: %v", jobID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully updated job id=%d to status=%s", jobID, newStatus)
	return nil
}
