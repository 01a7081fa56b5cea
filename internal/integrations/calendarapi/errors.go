package calendarapi

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendarapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от календаря
	ErrInvalidResponse = errors.New("calendarapi client: invalid response")

	// ErrUnavailable возвращается, когда календарь недоступен или не ответил вовремя.
	// Проверка конфликтов обязана трактовать эту ошибку как fail-open.
	ErrUnavailable = errors.New("calendarapi client: calendar unavailable")
)
