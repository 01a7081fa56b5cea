package create_job

import (
	"time"
)

// Request модель запроса на создание работы
type Request struct {
	UserID     int64 // ID сотрудника, создающего работу
	CustomerID int64 // ID клиента
	CarID      int64 // ID автомобиля клиента
	ServiceID  int64 // ID услуги

	VehicleSize     string    // Класс автомобиля (small/medium/large/xl, без учёта регистра)
	BookingDatetime time.Time // Начало окна бронирования

	// Длительность работы (опционально). Если не указана,
	// берётся дефолтная длительность услуги.
	DurationValue *float64 // Значение в часах или сменах
	DurationUnit  *string  // "hours" | "days"

	AddOnIDs      []int64 // Выбранные дополнительные услуги
	DepositAmount *int64  // Предоплата в пенсах (опционально)
	Notes         *string // Заметки (опционально)

	// Force подтверждает бронирование поверх конфликтов календаря
	Force bool
}

// Response модель ответа с созданной работой
type Response struct {
	ID              int64     // ID созданной работы
	CustomerID      int64     // ID клиента
	CarID           int64     // ID автомобиля
	ServiceID       int64     // ID услуги
	VehicleSize     string    // Класс автомобиля
	BookingDatetime time.Time // Начало окна
	DurationMinutes int       // Длительность в минутах
	Status          string    // Статус работы

	// Ценовой снимок в пенсах
	BasePrice     int64 // Базовая цена услуги
	AddOnsPrice   int64 // Сумма допуслуг
	TotalPrice    int64 // Итог (base + add-ons)
	ExVATPrice    int64 // Итог без НДС
	VATAmount     int64 // НДС
	DepositAmount int64 // Предоплата

	ForceBooked bool // Работа сохранена поверх конфликтов

	// Денормализованные данные
	ServiceName string
	AddOnIDs    []int64
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
