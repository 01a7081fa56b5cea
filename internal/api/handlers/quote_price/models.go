package quote_price

import (
	"time"

	quotePrice "github.com/m04kA/SMC-DetailingCRM/internal/usecase/quote_price"
)

// QuotePriceRequest HTTP request model
type QuotePriceRequest struct {
	CustomerID  int64   `json:"customerId"`
	ServiceID   int64   `json:"serviceId"`
	VehicleSize string  `json:"vehicleSize"`
	AddOnIDs    []int64 `json:"addOnIds,omitempty"`
	AsOf        *string `json:"asOf,omitempty"` // RFC 3339, по умолчанию текущее время
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	ServiceID     int64   `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	VehicleSize   string  `json:"vehicleSize"`
	QuoteRequired bool    `json:"quoteRequired"`
	BasePrice     int64   `json:"basePrice"`
	AddOnsPrice   int64   `json:"addOnsPrice"`
	TotalPrice    int64   `json:"totalPrice"`
	ExVATPrice    int64   `json:"exVatPrice"`
	VATAmount     int64   `json:"vatAmount"`
	VATRate       float64 `json:"vatRate"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuotePriceRequest) ToUseCaseRequest() (*quotePrice.Request, error) {
	req := &quotePrice.Request{
		CustomerID:  r.CustomerID,
		ServiceID:   r.ServiceID,
		VehicleSize: r.VehicleSize,
		AddOnIDs:    r.AddOnIDs,
	}

	if r.AsOf != nil {
		asOf, err := time.Parse(time.RFC3339, *r.AsOf)
		if err != nil {
			return nil, err
		}
		req.AsOf = &asOf
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		VehicleSize:   resp.VehicleSize,
		QuoteRequired: resp.QuoteRequired,
		BasePrice:     resp.BasePrice,
		AddOnsPrice:   resp.AddOnsPrice,
		TotalPrice:    resp.TotalPrice,
		ExVATPrice:    resp.ExVATPrice,
		VATAmount:     resp.VATAmount,
		VATRate:       resp.VATRate,
	}
}
