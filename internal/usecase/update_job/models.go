package update_job

import (
	"time"
)

// Request модель запроса на изменение работы.
// Nil-поля не меняются; ценовой снимок пересчитывается только
// когда изменились услуга, класс автомобиля или допуслуги.
type Request struct {
	JobID  int64 // ID работы
	UserID int64 // ID сотрудника, вносящего изменения

	ServiceID       *int64     // Новая услуга (опционально)
	VehicleSize     *string    // Новый класс автомобиля (опционально)
	BookingDatetime *time.Time // Новое начало окна (опционально)

	DurationValue *float64 // Новая длительность (вместе с DurationUnit)
	DurationUnit  *string  // "hours" | "days"

	AddOnIDs      *[]int64 // Новый набор допуслуг (опционально, заменяет целиком)
	DepositAmount *int64   // Новая предоплата в пенсах (опционально)
	Notes         *string  // Новые заметки (опционально)

	// Force подтверждает новое окно поверх конфликтов календаря
	Force bool
}

// Response модель ответа с обновлённой работой
type Response struct {
	ID              int64
	CustomerID      int64
	CarID           int64
	ServiceID       int64
	VehicleSize     string
	BookingDatetime time.Time
	DurationMinutes int
	Status          string

	BasePrice     int64
	AddOnsPrice   int64
	TotalPrice    int64
	DepositAmount int64

	ForceBooked bool

	ServiceName string
	AddOnIDs    []int64
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
