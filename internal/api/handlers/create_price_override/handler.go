package create_price_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing"
)

const (
	msgInvalidCustomerID  = "некорректный ID клиента"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidValidUntil  = "некорректный формат validUntil, ожидается RFC 3339"
	msgInvalidInput       = "некорректные параметры цены, ожидается serviceId, vehicleSize (small/medium/large/xl) и положительная pricePence"
	msgServiceNotFound    = "услуга не найдена"
)

type Handler struct {
	service PricingService
	logger  Logger
}

func NewHandler(service PricingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/customers/{customerId}/pricing
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /customers/{id}/pricing - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	var req CreateOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /customers/{id}/pricing - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		h.logger.Warn("POST /customers/{id}/pricing - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidValidUntil)
		return
	}

	result, err := h.service.CreateOverride(r.Context(), customerID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrServiceNotFound):
			h.logger.Warn("POST /customers/{id}/pricing - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, pricing.ErrInvalidInput):
			h.logger.Warn("POST /customers/{id}/pricing - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /customers/{id}/pricing - Failed to create override: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /customers/{id}/pricing - Override created: id=%d, customer_id=%d", result.ID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
