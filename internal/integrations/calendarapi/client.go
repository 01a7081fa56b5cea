package calendarapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// Logger интерфейс логгера для клиента
type Logger interface {
	Info(format string, args ...interface{})
	Error(format string, args ...interface{})
}

// Client клиент для работы с внешним календарём мастерской
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента календаря
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// FindOverlapping возвращает события календаря, пересекающиеся с интервалом [start, end).
// События, только касающиеся границ интервала, пересечением не считаются.
func (c *Client) FindOverlapping(ctx context.Context, start, end time.Time) ([]domain.CalendarConflict, error) {
	events, err := c.getEvents(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var conflicts []domain.CalendarConflict
	for _, e := range events {
		conflict := domain.CalendarConflict{
			Title: e.Title,
			Start: e.Start,
			End:   e.End,
		}
		// Календарь может вернуть события шире запрошенного интервала,
		// поэтому пересечение перепроверяем локально
		if conflict.Overlaps(start, end) {
			conflicts = append(conflicts, conflict)
		}
	}

	return conflicts, nil
}

// getEvents запрашивает события календаря за интервал времени
func (c *Client) getEvents(ctx context.Context, start, end time.Time) ([]Event, error) {
	q := url.Values{}
	q.Set("start", start.UTC().Format(time.RFC3339))
	q.Set("end", end.UTC().Format(time.RFC3339))

	reqURL := fmt.Sprintf("%s/api/v1/events?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("Calendar request failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid time range", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var parsed eventsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return parsed.Events, nil
}
