package create_job

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/api/middleware"
	createJob "github.com/m04kA/SMC-DetailingCRM/internal/usecase/create_job"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат bookingDatetime, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgQuoteRequired      = "цена не может быть определена автоматически, требуется ручная оценка"
	msgBookingConflict    = "окно бронирования пересекается с событиями календаря"
	msgInvalidVehicleSize = "некорректный класс автомобиля, ожидается small/medium/large/xl"
	msgPricingUnavailable = "источник цен временно недоступен, повторите запрос"
)

type Handler struct {
	useCase CreateJobUseCase
	logger  Logger
}

func NewHandler(useCase CreateJobUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/jobs
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /jobs - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /jobs - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /jobs - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *createJob.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("POST /jobs - Booking conflict: customer_id=%d, conflicts=%d",
				req.CustomerID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgBookingConflict,
				Conflicts: conflictItems(conflictErr.Conflicts),
			})

		case errors.Is(err, createJob.ErrQuoteRequired):
			h.logger.Warn("POST /jobs - Quote required: customer_id=%d, service_id=%d",
				req.CustomerID, req.ServiceID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgQuoteRequired)

		case errors.Is(err, createJob.ErrServiceNotFound):
			h.logger.Warn("POST /jobs - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createJob.ErrInvalidVehicleSize):
			h.logger.Warn("POST /jobs - Invalid vehicle size: %s", req.VehicleSize)
			handlers.RespondBadRequest(w, msgInvalidVehicleSize)

		case errors.Is(err, createJob.ErrInvalidInput):
			h.logger.Warn("POST /jobs - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createJob.ErrPricingUnavailable):
			h.logger.Error("POST /jobs - Pricing unavailable: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPricingUnavailable)

		default:
			h.logger.Error("POST /jobs - Failed to create job: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /jobs - Job created successfully: job_id=%d, customer_id=%d, total=%d",
		result.ID, req.CustomerID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
