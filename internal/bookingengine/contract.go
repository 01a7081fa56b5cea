package bookingengine

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// PricingStore источник стандартных цен и клиентских переопределений.
// Реализуется слоем хранения; движок не знает, откуда берутся цены.
type PricingStore interface {
	// GetStandardPrice возвращает стандартную цену услуги для размера
	// автомобиля (inc VAT) или nil, если тариф не настроен
	GetStandardPrice(ctx context.Context, serviceID int64, size domain.VehicleSize) (*types.Pence, error)

	// GetCustomerOverrides возвращает клиентские цены для
	// (customer, service, size), включая истёкшие; фильтрация по
	// сроку действия выполняется резолвером
	GetCustomerOverrides(ctx context.Context, customerID, serviceID int64, size domain.VehicleSize) ([]*domain.PriceOverride, error)
}

// AddOnCatalog каталог дополнительных услуг
type AddOnCatalog interface {
	// GetByIDs возвращает найденные позиции; отсутствующие id просто
	// не попадают в результат
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.AddOn, error)
}

// CalendarProvider провайдер календаря (read-only).
// Движок не предполагает конкретный календарь за этим интерфейсом.
type CalendarProvider interface {
	// FindOverlapping возвращает существующие события, пересекающие
	// окно [start, end)
	FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.CalendarConflict, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
