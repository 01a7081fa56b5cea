package update_job

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

var (
	// ErrJobNotFound возвращается, когда работа не найдена
	ErrJobNotFound = errors.New("update_job: job not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("update_job: service not found")

	// ErrCannotUpdate возвращается, когда работа уже ушла со статуса scheduled
	ErrCannotUpdate = errors.New("update_job: job can no longer be edited")

	// ErrQuoteRequired возвращается, когда пересчитанная цена не
	// определяется автоматически. Прежний снимок цены не затирается.
	ErrQuoteRequired = errors.New("update_job: manual quote required")

	// ErrBookingConflict возвращается, когда новое окно пересекается
	// с календарём и изменение не подтверждено флагом force
	ErrBookingConflict = errors.New("update_job: booking window conflicts with calendar")

	// ErrInvalidVehicleSize возвращается при неизвестном классе автомобиля
	ErrInvalidVehicleSize = errors.New("update_job: invalid vehicle size")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_job: invalid input data")

	// ErrPricingUnavailable возвращается, когда источник цен недоступен
	ErrPricingUnavailable = errors.New("update_job: pricing source unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_job: internal error")
)

// ConflictError несёт список пересечений для ответа 409.
// Разворачивается в ErrBookingConflict через errors.Is.
type ConflictError struct {
	Conflicts []domain.CalendarConflict
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %d conflict(s)", ErrBookingConflict, len(e.Conflicts))
}

func (e *ConflictError) Unwrap() error {
	return ErrBookingConflict
}
