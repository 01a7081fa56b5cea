package create_job

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_job: service not found")

	// ErrQuoteRequired возвращается, когда цена не может быть определена
	// автоматически (нет тарифа для класса автомобиля или услуга требует
	// индивидуальной оценки). Работа не создаётся.
	ErrQuoteRequired = errors.New("create_job: manual quote required")

	// ErrBookingConflict возвращается при пересечении с календарём,
	// когда бронирование не подтверждено флагом force
	ErrBookingConflict = errors.New("create_job: booking window conflicts with calendar")

	// ErrInvalidVehicleSize возвращается при неизвестном классе автомобиля
	ErrInvalidVehicleSize = errors.New("create_job: invalid vehicle size")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_job: invalid input data")

	// ErrPricingUnavailable возвращается, когда источник цен недоступен.
	// Запрос можно повторить; работа без цены не создаётся.
	ErrPricingUnavailable = errors.New("create_job: pricing source unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_job: internal error")
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
