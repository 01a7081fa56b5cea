package update_job

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/api/middleware"
	updateJob "github.com/m04kA/SMC-DetailingCRM/internal/usecase/update_job"
)

const (
	msgInvalidJobID       = "некорректный ID работы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDatetime    = "некорректный формат bookingDatetime, ожидается RFC 3339"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgJobNotFound        = "работа не найдена"
	msgServiceNotFound    = "услуга не найдена"
	msgCannotUpdate       = "работа уже в производстве и не может быть изменена"
	msgQuoteRequired      = "цена не может быть определена автоматически, требуется ручная оценка"
	msgBookingConflict    = "новое окно бронирования пересекается с событиями календаря"
	msgInvalidVehicleSize = "некорректный класс автомобиля, ожидается small/medium/large/xl"
	msgPricingUnavailable = "источник цен временно недоступен, повторите запрос"
)

type Handler struct {
	useCase UpdateJobUseCase
	logger  Logger
}

func NewHandler(useCase UpdateJobUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/jobs/{jobId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobIDStr := vars["jobId"]

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id} - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /jobs/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /jobs/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(jobID, userID)
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDatetime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflictErr *updateJob.ConflictError

		switch {
		case errors.As(err, &conflictErr):
			h.logger.Warn("PATCH /jobs/{id} - Booking conflict: job_id=%d, conflicts=%d",
				jobID, len(conflictErr.Conflicts))
			handlers.RespondJSON(w, http.StatusConflict, ConflictResponse{
				Error:     msgBookingConflict,
				Conflicts: conflictItems(conflictErr.Conflicts),
			})

		case errors.Is(err, updateJob.ErrJobNotFound):
			h.logger.Warn("PATCH /jobs/{id} - Job not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgJobNotFound)

		case errors.Is(err, updateJob.ErrServiceNotFound):
			h.logger.Warn("PATCH /jobs/{id} - Service not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, updateJob.ErrCannotUpdate):
			h.logger.Warn("PATCH /jobs/{id} - Cannot update: job_id=%d", jobID)
			handlers.RespondError(w, http.StatusConflict, msgCannotUpdate)

		case errors.Is(err, updateJob.ErrQuoteRequired):
			h.logger.Warn("PATCH /jobs/{id} - Quote required: job_id=%d", jobID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgQuoteRequired)

		case errors.Is(err, updateJob.ErrInvalidVehicleSize):
			h.logger.Warn("PATCH /jobs/{id} - Invalid vehicle size: job_id=%d", jobID)
			handlers.RespondBadRequest(w, msgInvalidVehicleSize)

		case errors.Is(err, updateJob.ErrInvalidInput):
			h.logger.Warn("PATCH /jobs/{id} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, updateJob.ErrPricingUnavailable):
			h.logger.Error("PATCH /jobs/{id} - Pricing unavailable: job_id=%d, error=%v", jobID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPricingUnavailable)

		default:
			h.logger.Error("PATCH /jobs/{id} - Failed to update job: job_id=%d, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /jobs/{id} - Job updated successfully: job_id=%d, total=%d", jobID, result.TotalPrice)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
