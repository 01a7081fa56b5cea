package quote_price

import (
	"context"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/pkg/types"
)

// ServiceRepository интерфейс репозитория каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// PriceResolver интерфейс ценового ядра
type PriceResolver interface {
	ResolveBasePrice(ctx context.Context, customerID, serviceID int64, sizeCategory string, asOf time.Time) (*types.Pence, error)
	AddOnsTotal(ctx context.Context, ids []int64) (types.Pence, error)
	Decompose(total types.Pence) bookingengine.VATBreakdown
	VATRate() float64
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
