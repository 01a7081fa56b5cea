package create_price_override

import (
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing/models"
)

// CreateOverrideRequest HTTP request model
type CreateOverrideRequest struct {
	ServiceID   int64   `json:"serviceId"`
	VehicleSize string  `json:"vehicleSize"`
	PricePence  int64   `json:"pricePence"`
	ValidUntil  *string `json:"validUntil,omitempty"` // RFC 3339, nil - бессрочная
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateOverrideRequest) ToServiceRequest() (*models.CreateOverrideRequest, error) {
	req := &models.CreateOverrideRequest{
		ServiceID:   r.ServiceID,
		VehicleSize: r.VehicleSize,
		PricePence:  r.PricePence,
	}

	if r.ValidUntil != nil {
		validUntil, err := time.Parse(time.RFC3339, *r.ValidUntil)
		if err != nil {
			return nil, err
		}
		req.ValidUntil = &validUntil
	}

	return req, nil
}
