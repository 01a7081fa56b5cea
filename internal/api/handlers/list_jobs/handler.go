package list_jobs

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs"
)

const (
	msgInvalidParams = "некорректные параметры запроса"
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

// Handle GET /api/v1/jobs
// Query params: customerId, serviceId, status, startDate, endDate,
// includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	serviceReq, err := ToServiceRequest(
		q.Get("customerId"),
		q.Get("serviceId"),
		q.Get("status"),
		q.Get("startDate"),
		q.Get("endDate"),
		q.Get("includeInactive"),
	)
	if err != nil {
		h.logger.Warn("GET /jobs - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetJobs(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, jobs.ErrInvalidInput):
			h.logger.Warn("GET /jobs - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /jobs - Failed to get jobs: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /jobs - Jobs retrieved successfully: count=%d", len(result.Jobs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
