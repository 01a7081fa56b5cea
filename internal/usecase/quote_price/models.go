package quote_price

import "time"

// Request модель запроса на предварительный расчёт цены
type Request struct {
	CustomerID  int64   // ID клиента
	ServiceID   int64   // ID услуги
	VehicleSize string  // Класс автомобиля (small/medium/large/xl)
	AddOnIDs    []int64 // Выбранные дополнительные услуги

	// AsOf момент, на который разрешается цена (опционально,
	// по умолчанию текущее время)
	AsOf *time.Time
}

// Response модель ответа с расчётом цены.
// При QuoteRequired=true ценовые поля не заполняются:
// цена согласуется вручную и никогда не подставляется нулём.
type Response struct {
	ServiceID   int64
	ServiceName string
	VehicleSize string

	QuoteRequired bool

	BasePrice   int64 // Базовая цена услуги (пенсы)
	AddOnsPrice int64 // Сумма допуслуг
	TotalPrice  int64 // Итог (base + add-ons)

	// Разложение итога по НДС: ExVATPrice + VATAmount == TotalPrice
	ExVATPrice int64
	VATAmount  int64
	VATRate    float64
}
