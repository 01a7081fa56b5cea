package calendarapi

import "time"

// Event модель события из календаря
type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// eventsResponse ответ календаря на запрос событий за интервал
type eventsResponse struct {
	Events []Event `json:"events"`
}

// ErrorResponse модель ошибки от календаря
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
