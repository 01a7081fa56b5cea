package models

import (
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// SetStandardPriceRequest запрос на установку стандартного тарифа
type SetStandardPriceRequest struct {
	VehicleSize string `json:"vehicleSize"`
	PricePence  int64  `json:"pricePence"`
}

// CreateOverrideRequest запрос на создание клиентской цены
type CreateOverrideRequest struct {
	ServiceID   int64      `json:"serviceId"`
	VehicleSize string     `json:"vehicleSize"`
	PricePence  int64      `json:"pricePence"`
	ValidUntil  *time.Time `json:"validUntil,omitempty"` // nil - бессрочная
}

// OverrideResponse ответ с созданной клиентской ценой
type OverrideResponse struct {
	ID          int64   `json:"id"`
	CustomerID  int64   `json:"customerId"`
	ServiceID   int64   `json:"serviceId"`
	VehicleSize string  `json:"vehicleSize"`
	PricePence  int64   `json:"pricePence"`
	ValidUntil  *string `json:"validUntil,omitempty"` // ISO 8601
	CreatedAt   string  `json:"createdAt"`            // ISO 8601
}

// FromDomainOverride конвертирует domain модель в response
func FromDomainOverride(o *domain.PriceOverride) *OverrideResponse {
	resp := &OverrideResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ServiceID:   o.ServiceID,
		VehicleSize: string(o.VehicleSize),
		PricePence:  int64(o.PriceIncVAT),
		CreatedAt:   o.CreatedAt.Format(time.RFC3339),
	}

	if o.ValidUntil != nil {
		validUntil := o.ValidUntil.Format(time.RFC3339)
		resp.ValidUntil = &validUntil
	}

	return resp
}
