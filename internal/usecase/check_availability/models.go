package check_availability

import "time"

// Request модель запроса на проверку занятости окна.
// Окно задаётся началом и либо концом, либо длительностью в минутах.
type Request struct {
	Start           time.Time  // Начало окна
	End             *time.Time // Конец окна (опционально)
	DurationMinutes *int       // Длительность в минутах (опционально)
}

// Conflict пересечение с событием календаря
type Conflict struct {
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Response результат рекомендательной проверки занятости.
// Clear=true означает, что пересечений не найдено (или календарь
// был недоступен и проверка прошла fail-open).
type Response struct {
	Clear     bool       `json:"clear"`
	Conflicts []Conflict `json:"conflicts"`
}
