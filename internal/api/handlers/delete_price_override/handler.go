package delete_price_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-DetailingCRM/internal/api/handlers"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/pricing"
)

const (
	msgInvalidOverrideID = "некорректный ID клиентской цены"
	msgNotFound          = "клиентская цена не найдена"
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

// Handle DELETE /api/v1/pricing/overrides/{overrideId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	overrideIDStr := vars["overrideId"]

	overrideID, err := strconv.ParseInt(overrideIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /pricing/overrides/{id} - Invalid override ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOverrideID)
		return
	}

	err = h.service.DeleteOverride(r.Context(), overrideID)
	if err != nil {
		switch {
		case errors.Is(err, pricing.ErrOverrideNotFound):
			h.logger.Warn("DELETE /pricing/overrides/{id} - Override not found: override_id=%d", overrideID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("DELETE /pricing/overrides/{id} - Failed to delete override: override_id=%d, error=%v",
				overrideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /pricing/overrides/{id} - Override deleted: override_id=%d", overrideID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
