package models

// UpdateDurationRequest запрос на изменение длительности услуги
// Value задаётся в часах или сменах (unit: "hours" | "days")
type UpdateDurationRequest struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// DurationResponse ответ с длительностью услуги
// DurationMinutes - каноничное хранимое значение,
// DisplayValue/DisplayUnit - представление для редактора
type DurationResponse struct {
	ServiceID       int64   `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	DisplayValue    float64 `json:"displayValue"`
	DisplayUnit     string  `json:"displayUnit"`
}
