package list_jobs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
	"github.com/m04kA/SMC-DetailingCRM/internal/service/jobs/models"
)

// ToServiceRequest собирает запрос к сервису из query параметров
func ToServiceRequest(customerIDStr, serviceIDStr, statusStr, startDateStr, endDateStr, includeInactiveStr string) (*models.GetJobsRequest, error) {
	req := &models.GetJobsRequest{}

	if customerIDStr != "" {
		customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid customerId: %w", err)
		}
		req.CustomerID = &customerID
	}

	if serviceIDStr != "" {
		serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid serviceId: %w", err)
		}
		req.ServiceID = &serviceID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		req.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		req.EndDate = &endDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
