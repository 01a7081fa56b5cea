package bookingengine

import "errors"

var (
	// ErrInvalidUnit возвращается при неизвестной единице длительности
	ErrInvalidUnit = errors.New("bookingengine: invalid duration unit")

	// ErrUnknownVehicleSize возвращается, когда размер автомобиля не
	// приводится ни к одному тарифному классу
	ErrUnknownVehicleSize = errors.New("bookingengine: unknown vehicle size")

	// ErrPricingStore возвращается при недоступности источника цен.
	// Ошибка восстановимая: вызывающий может повторить запрос, но не
	// должен трактовать её как нулевую цену
	ErrPricingStore = errors.New("bookingengine: pricing store unavailable")

	// ErrAddOnCatalog возвращается при недоступности каталога допуслуг
	ErrAddOnCatalog = errors.New("bookingengine: add-on catalog unavailable")

	// ErrInvalidWindow возвращается при некорректном окне бронирования
	ErrInvalidWindow = errors.New("bookingengine: invalid booking window")

	// ErrNotConflicted возвращается при попытке force-book без
	// зафиксированного конфликта
	ErrNotConflicted = errors.New("bookingengine: attempt is not in conflicted state")

	// ErrAttemptCancelled возвращается, когда результат проверки пришёл
	// после отмены попытки и был отброшен
	ErrAttemptCancelled = errors.New("bookingengine: booking attempt cancelled")
)
