package bookingengine

import (
	"fmt"
	"math"
	"strings"

	"github.com/m04kA/SMC-DetailingCRM/internal/domain"
)

// Unit user-facing duration unit. Days are 8-hour shop days
// (domain.MinutesPerWorkday), not calendar days.
type Unit string

const (
	UnitHours Unit = "hours"
	UnitDays  Unit = "days"
)

// ParseUnit validates a user-supplied unit string
func ParseUnit(s string) (Unit, error) {
	switch Unit(strings.ToLower(strings.TrimSpace(s))) {
	case UnitHours:
		return UnitHours, nil
	case UnitDays:
		return UnitDays, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
}

func minutesPerUnit(unit Unit) float64 {
	if unit == UnitDays {
		return domain.MinutesPerWorkday
	}
	return 60
}

// ToMinutes converts a user-facing (value, unit) pair to canonical
// minutes. The result is rounded to the nearest whole minute and
// clamped to [MinJobDurationMinutes, MaxJobDurationMinutes].
// Non-finite or non-positive values fall back to half an hour so the
// editor never ends up with a zero or negative duration.
func ToMinutes(value float64, unit Unit) int {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		value = domain.DefaultDurationValue
	}

	minutes := int(math.Round(value * minutesPerUnit(unit)))
	return ClampMinutes(minutes)
}

// ToDisplay converts canonical minutes back to a display value in the
// given unit. No rounding: fractional values (1.5 hours, 1.25 days)
// are expected and legal.
func ToDisplay(minutes int, unit Unit) float64 {
	return float64(minutes) / minutesPerUnit(unit)
}

// InferDefaultUnit picks the display unit for a stored duration:
// anything longer than one shop day reads better in days
// (a 10-hour job displays as 1.25 days, not 10 hours).
// Boundary: exactly 480 minutes is still hours.
func InferDefaultUnit(minutes int) Unit {
	if minutes > domain.MinutesPerWorkday {
		return UnitDays
	}
	return UnitHours
}

// ClampMinutes clamps a duration to the valid job range
func ClampMinutes(minutes int) int {
	if minutes < domain.MinJobDurationMinutes {
		return domain.MinJobDurationMinutes
	}
	if minutes > domain.MaxJobDurationMinutes {
		return domain.MaxJobDurationMinutes
	}
	return minutes
}
