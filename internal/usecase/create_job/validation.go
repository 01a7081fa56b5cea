package create_job

import (
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.CarID <= 0 {
		return fmt.Errorf("%w: carID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.VehicleSize == "" {
		return fmt.Errorf("%w: vehicleSize is required", ErrInvalidInput)
	}

	if req.BookingDatetime.IsZero() {
		return fmt.Errorf("%w: bookingDatetime is required", ErrInvalidInput)
	}

	// Значение и единица длительности идут только в паре
	if (req.DurationValue == nil) != (req.DurationUnit == nil) {
		return fmt.Errorf("%w: durationValue and durationUnit must be set together", ErrInvalidInput)
	}

	if req.DepositAmount != nil && *req.DepositAmount < 0 {
		return fmt.Errorf("%w: depositAmount must not be negative", ErrInvalidInput)
	}

	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
