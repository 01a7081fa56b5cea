package check_availability

import (
	"time"

	checkAvailability "github.com/m04kA/SMC-DetailingCRM/internal/usecase/check_availability"
)

// CheckAvailabilityRequest HTTP request model.
// Окно задаётся началом плюс либо концом, либо длительностью.
type CheckAvailabilityRequest struct {
	Start           string  `json:"start"`                     // RFC 3339
	End             *string `json:"end,omitempty"`             // RFC 3339
	DurationMinutes *int    `json:"durationMinutes,omitempty"` // Минуты
}

// ConflictItem пересечение с событием календаря
type ConflictItem struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Clear     bool           `json:"clear"`
	Conflicts []ConflictItem `json:"conflicts"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		Start:           start,
		DurationMinutes: r.DurationMinutes,
	}

	if r.End != nil {
		end, err := time.Parse(time.RFC3339, *r.End)
		if err != nil {
			return nil, err
		}
		req.End = &end
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP модель
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Clear:     resp.Clear,
		Conflicts: make([]ConflictItem, 0, len(resp.Conflicts)),
	}
	for _, c := range resp.Conflicts {
		out.Conflicts = append(out.Conflicts, ConflictItem{
			Title: c.Title,
			Start: c.Start.Format(time.RFC3339),
			End:   c.End.Format(time.RFC3339),
		})
	}
	return out
}
