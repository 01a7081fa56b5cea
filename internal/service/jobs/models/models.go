package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid job status")
)

// Request модели

// CancelJobRequest запрос на отмену работы
type CancelJobRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на обновление статуса работы
type UpdateStatusRequest struct {
	UserID int64  `json:"userId"`
	Status string `json:"status"`
}

// GetJobsRequest запрос на получение работ для доски
type GetJobsRequest struct {
	CustomerID      *int64     `json:"customerId,omitempty"`      // Фильтр по клиенту (опционально)
	ServiceID       *int64     `json:"serviceId,omitempty"`       // Фильтр по услуге (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и no-show
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetJobsRequest) ToDomainFilter() (domain.JobsFilter, error) {
	filter := domain.JobsFilter{
		CustomerID:      r.CustomerID,
		ServiceID:       r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainJobStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// JobResponse ответ с данными работы
type JobResponse struct {
	ID              int64  `json:"id"`
	CustomerID      int64  `json:"customerId"`
	CarID           int64  `json:"carId"`
	ServiceID       int64  `json:"serviceId"`
	VehicleSize     string `json:"vehicleSize"`
	BookingDatetime string `json:"bookingDatetime"` // ISO 8601
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`

	// Ценовой снимок в пенсах
	BasePrice     int64 `json:"basePrice"`
	AddOnsPrice   int64 `json:"addOnsPrice"`
	TotalPrice    int64 `json:"totalPrice"`
	DepositAmount int64 `json:"depositAmount"`

	ForceBooked bool `json:"forceBooked"`

	// Денормализованные данные
	ServiceName string  `json:"serviceName"`
	AddOnIDs    []int64 `json:"addOnIds,omitempty"`
	Notes       *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// JobListResponse ответ со списком работ
type JobListResponse struct {
	Jobs []JobResponse `json:"jobs"`
}

// Методы конвертации

// ToDomainJobStatus конвертирует строку в domain.JobStatus
func ToDomainJobStatus(s string) (domain.JobStatus, error) {
	status := domain.JobStatus(s)
	switch status {
	case domain.StatusScheduled,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelledByUser,
		domain.StatusCancelledByStaff,
		domain.StatusNoShow:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// FromDomainJob конвертирует domain модель в DTO
func FromDomainJob(j *domain.Job) *JobResponse {
	if j == nil {
		return nil
	}

	resp := &JobResponse{
		ID:                 j.ID,
		CustomerID:         j.CustomerID,
		CarID:              j.CarID,
		ServiceID:          j.ServiceID,
		VehicleSize:        string(j.VehicleSize),
		BookingDatetime:    j.BookingDatetime.Format(time.RFC3339),
		DurationMinutes:    j.DurationMinutes,
		Status:             string(j.Status),
		BasePrice:          int64(j.BasePrice),
		AddOnsPrice:        int64(j.AddOnsPrice),
		TotalPrice:         int64(j.TotalPrice),
		DepositAmount:      int64(j.DepositAmount),
		ForceBooked:        j.ForceBooked,
		ServiceName:        j.ServiceName,
		AddOnIDs:           j.AddOnIDs,
		Notes:              j.Notes,
		CancellationReason: j.CancellationReason,
		CreatedAt:          j.CreatedAt,
		UpdatedAt:          j.UpdatedAt,
	}

	if j.CancelledAt != nil {
		cancelledStr := j.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainJobList конвертирует список domain моделей в DTO
func FromDomainJobList(jobs []*domain.Job) *JobListResponse {
	if jobs == nil {
		return &JobListResponse{
			Jobs: []JobResponse{},
		}
	}

	resp := &JobListResponse{
		Jobs: make([]JobResponse, len(jobs)),
	}

	for i, job := range jobs {
		if jobResp := FromDomainJob(job); jobResp != nil {
			resp.Jobs[i] = *jobResp
		}
	}

	return resp
}
