package cancel_job

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/api/middleware"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs"
)

const (
	msgInvalidJobID       = "некорректный ID работы"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "работа не найдена"
	msgCannotCancel       = "работа не может быть отменена в текущем статусе"
)

type Handler struct {
	service JobService
	logger  Logger
}

func NewHandler(service JobService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/jobs/{jobId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobIDStr := vars["jobId"]

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CancelJobRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err = h.service.Cancel(r.Context(), jobID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Job not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, jobs.ErrCannotCancel):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Cannot cancel: job_id=%d", jobID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("PATCH /jobs/{id}/cancel - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /jobs/{id}/cancel - Failed to cancel job: job_id=%d, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /jobs/{id}/cancel - Job cancelled successfully: job_id=%d, user_id=%d", jobID, userID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}
