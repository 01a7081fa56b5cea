package check_availability

import (
	"github.com/m04kA/SMC-DetailingCRM/internal/bookingengine"
)

// ConflictChecker интерфейс проверки пересечений с календарём
type ConflictChecker interface {
	NewAttempt() *bookingengine.Attempt
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
