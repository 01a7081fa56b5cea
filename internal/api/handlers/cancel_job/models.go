package cancel_job

import (
	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs/models"
)

// CancelJobRequest HTTP request model
type CancelJobRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelJobRequest) ToServiceRequest(userID int64) *models.CancelJobRequest {
	return &models.CancelJobRequest{
		UserID:             userID,
		CancellationReason: r.CancellationReason,
	}
}
