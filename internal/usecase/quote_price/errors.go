package quote_price

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("quote_price: service not found")

	// ErrInvalidVehicleSize возвращается при неизвестном классе автомобиля
	ErrInvalidVehicleSize = errors.New("quote_price: invalid vehicle size")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrPricingUnavailable возвращается, когда источник цен недоступен
	ErrPricingUnavailable = errors.New("quote_price: pricing source unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
