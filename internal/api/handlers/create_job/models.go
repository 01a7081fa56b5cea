package create_job

import (
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	createJob "github.com/m04kA/SMC-DetailingCRM/internal/usecase/create_job"
)

// CreateJobRequest HTTP request model
type CreateJobRequest struct {
	CustomerID      int64    `json:"customerId"`
	CarID           int64    `json:"carId"`
	ServiceID       int64    `json:"serviceId"`
	VehicleSize     string   `json:"vehicleSize"`
	BookingDatetime string   `json:"bookingDatetime"` // RFC 3339
	DurationValue   *float64 `json:"durationValue,omitempty"`
	DurationUnit    *string  `json:"durationUnit,omitempty"` // "hours" | "days"
	AddOnIDs        []int64  `json:"addOnIds,omitempty"`
	DepositAmount   *int64   `json:"depositAmount,omitempty"` // пенсы
	Notes           *string  `json:"notes,omitempty"`
	Force           bool     `json:"force,omitempty"`
}

// JobResponse HTTP response model
type JobResponse struct {
	ID              int64   `json:"id"`
	CustomerID      int64   `json:"customerId"`
	CarID           int64   `json:"carId"`
	ServiceID       int64   `json:"serviceId"`
	VehicleSize     string  `json:"vehicleSize"`
	BookingDatetime string  `json:"bookingDatetime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	BasePrice       int64   `json:"basePrice"`
	AddOnsPrice     int64   `json:"addOnsPrice"`
	TotalPrice      int64   `json:"totalPrice"`
	ExVATPrice      int64   `json:"exVatPrice"`
	VATAmount       int64   `json:"vatAmount"`
	DepositAmount   int64   `json:"depositAmount"`
	ForceBooked     bool    `json:"forceBooked"`
	ServiceName     string  `json:"serviceName"`
	AddOnIDs        []int64 `json:"addOnIds,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ConflictItem пересечение с событием календаря
type ConflictItem struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ConflictResponse ответ 409 со списком пересечений
type ConflictResponse struct {
	Error     string         `json:"error"`
	Conflicts []ConflictItem `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateJobRequest) ToUseCaseRequest(userID int64) (*createJob.Request, error) {
	bookingDatetime, err := time.Parse(time.RFC3339, r.BookingDatetime)
	if err != nil {
		return nil, err
	}

	return &createJob.Request{
		UserID:          userID,
		CustomerID:      r.CustomerID,
		CarID:           r.CarID,
		ServiceID:       r.ServiceID,
		VehicleSize:     r.VehicleSize,
		BookingDatetime: bookingDatetime,
		DurationValue:   r.DurationValue,
		DurationUnit:    r.DurationUnit,
		AddOnIDs:        r.AddOnIDs,
		DepositAmount:   r.DepositAmount,
		Notes:           r.Notes,
		Force:           r.Force,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *createJob.Response) *JobResponse {
	return &JobResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		CarID:           resp.CarID,
		ServiceID:       resp.ServiceID,
		VehicleSize:     resp.VehicleSize,
		BookingDatetime: resp.BookingDatetime.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		BasePrice:       resp.BasePrice,
		AddOnsPrice:     resp.AddOnsPrice,
		TotalPrice:      resp.TotalPrice,
		ExVATPrice:      resp.ExVATPrice,
		VATAmount:       resp.VATAmount,
		DepositAmount:   resp.DepositAmount,
		ForceBooked:     resp.ForceBooked,
		ServiceName:     resp.ServiceName,
		AddOnIDs:        resp.AddOnIDs,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}

// conflictItems конвертирует domain конфликты в HTTP модель
func conflictItems(conflicts []domain.CalendarConflict) []ConflictItem {
	items := make([]ConflictItem, 0, len(conflicts))
	for _, c := range conflicts {
		items = append(items, ConflictItem{
			Title: c.Title,
			Start: c.Start.Format(time.RFC3339),
			End:   c.End.Format(time.RFC3339),
		})
	}
	return items
}
