package domain

// Business validation constants
const (
	// Duration bounds for any job: 30 minutes to 7 days
	MinJobDurationMinutes = 30
	MaxJobDurationMinutes = 10080

	// MinutesPerWorkday working day used for day-based duration display.
	// A "day" on the board is an 8-hour shop day, not a calendar day.
	MinutesPerWorkday = 480

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Default values
const (
	// DefaultDurationValue fallback for missing or unparseable duration
	// input: half an hour, so the editor never shows zero
	DefaultDurationValue = 0.5

	// DefaultVATRate UK standard VAT rate
	DefaultVATRate = 0.20
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, не занимающих окно в календаре.
// Используется при фильтрации работ для проверки занятости.
var InactiveStatuses = []JobStatus{
	StatusCancelledByUser,
	StatusCancelledByStaff,
	StatusNoShow,
}
