package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-DetailingCRM/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidAsOf        = "некорректный формат asOf, ожидается RFC 3339"
	msgServiceNotFound    = "услуга не найдена"
	msgInvalidVehicleSize = "некорректный класс автомобиля, ожидается small/medium/large/xl"
	msgPricingUnavailable = "источник цен временно недоступен, повторите запрос"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuotePriceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /quotes - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAsOf)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrServiceNotFound):
			h.logger.Warn("POST /quotes - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quotePrice.ErrInvalidVehicleSize):
			h.logger.Warn("POST /quotes - Invalid vehicle size: %s", req.VehicleSize)
			handlers.RespondBadRequest(w, msgInvalidVehicleSize)

		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, quotePrice.ErrPricingUnavailable):
			h.logger.Error("POST /quotes - Pricing unavailable: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPricingUnavailable)

		default:
			h.logger.Error("POST /quotes - Failed to quote price: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote calculated: customer_id=%d, service_id=%d, quote_required=%v",
		req.CustomerID, req.ServiceID, result.QuoteRequired)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
