package get_job

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs"
)

const (
	msgInvalidJobID = "некорректный ID работы"
	msgNotFound     = "работа не найдена"
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

// Handle GET /api/v1/jobs/{jobId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jobIDStr := vars["jobId"]

	jobID, err := strconv.ParseInt(jobIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /jobs/{id} - Invalid job ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidJobID)
		return
	}

	job, err := h.service.GetByID(r.Context(), jobID)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrJobNotFound):
			h.logger.Warn("GET /jobs/{id} - Job not found: job_id=%d", jobID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /jobs/{id} - Failed to get job: job_id=%d, error=%v", jobID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /jobs/{id} - Job retrieved successfully: job_id=%d", jobID)
	handlers.RespondJSON(w, http.StatusOK, job)
}
