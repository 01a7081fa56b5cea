package domain

import (
	"time"

	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// JobStatus represents the pipeline stage of a detailing job
type JobStatus string

const (
	StatusScheduled          JobStatus = "scheduled"
	StatusInProgress         JobStatus = "in_progress"
	StatusCompleted          JobStatus = "completed"
	StatusCancelledByUser    JobStatus = "cancelled_by_customer"
	StatusCancelledByStaff   JobStatus = "cancelled_by_staff"
	StatusNoShow             JobStatus = "no_show"
)

// Job represents a booked detailing job on the board
type Job struct {
	ID              int64
	CustomerID      int64
	CarID           int64
	ServiceID       int64
	VehicleSize     VehicleSize
	BookingDatetime time.Time
	DurationMinutes int
	Status          JobStatus

	// Pricing snapshot taken at booking time.
	// total = base + sum of selected add-ons (invariant, pence arithmetic)
	BasePrice     types.Pence
	AddOnsPrice   types.Pence
	TotalPrice    types.Pence
	DepositAmount types.Pence

	// ForceBooked marks jobs persisted after an explicitly acknowledged
	// calendar conflict.
	ForceBooked bool

	// Denormalized data for history
	ServiceName string
	AddOnIDs    []int64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Window returns the booking window [start, end) occupied by the job
func (j *Job) Window() (time.Time, time.Time) {
	return j.BookingDatetime, j.BookingDatetime.Add(time.Duration(j.DurationMinutes) * time.Minute)
}

// IsActive returns true if the job still occupies its booking window
func (j *Job) IsActive() bool {
	return j.Status != StatusCancelledByUser &&
		j.Status != StatusCancelledByStaff &&
		j.Status != StatusNoShow
}

// CanBeCancelled returns true if the job can be cancelled
func (j *Job) CanBeCancelled() bool {
	return j.Status == StatusScheduled || j.Status == StatusInProgress
}

// CanBeUpdated returns true if the job can still be edited
func (j *Job) CanBeUpdated() bool {
	return j.Status == StatusScheduled
}

// IsCancelled returns true if the job has been cancelled
func (j *Job) IsCancelled() bool {
	return j.Status == StatusCancelledByUser || j.Status == StatusCancelledByStaff
}

// JobsFilter фильтр для выборки работ (доска/календарь)
type JobsFilter struct {
	CustomerID      *int64     // Фильтр по клиенту (опционально)
	ServiceID       *int64     // Фильтр по услуге (опционально)
	StartDate       *time.Time // Начало периода (опционально)
	EndDate         *time.Time // Конец периода (опционально)
	Status          *JobStatus // Фильтр по статусу (опционально)
	IncludeInactive bool       // Включать ли отменённые и no-show
}
