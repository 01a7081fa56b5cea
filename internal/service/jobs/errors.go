package jobs

import "errors"

var (
	// ErrJobNotFound возвращается, когда работа не найдена
	ErrJobNotFound = errors.New("job not found")

	// ErrCannotCancel возвращается, когда работу нельзя отменить в текущем статусе
	ErrCannotCancel = errors.New("job cannot be cancelled")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
