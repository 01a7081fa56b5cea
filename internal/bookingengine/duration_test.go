package bookingengine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		input   string
		want    Unit
		wantErr bool
	}{
		{"hours", UnitHours, false},
		{"days", UnitDays, false},
		{"HOURS", UnitHours, false},
		{" Days ", UnitDays, false},
		{"weeks", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseUnit(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidUnit)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		unit  Unit
		want  int
	}{
		{"one hour", 1, UnitHours, 60},
		{"fractional hours", 1.5, UnitHours, 90},
		{"one day is a shop day", 1, UnitDays, 480},
		{"quarter day", 0.25, UnitDays, 120},
		{"rounds to nearest minute", 1.333, UnitHours, 80}, // 79.98 -> 80
		{"clamps below to 30", 0.1, UnitHours, 30},
		{"clamps above to 7 days", 100, UnitDays, 10080},
		{"zero defaults to half an hour", 0, UnitHours, 30},
		{"negative defaults to half an hour", -3, UnitHours, 30},
		{"default applies before day conversion", 0, UnitDays, 240},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinutes(tt.value, tt.unit))
		})
	}
}

func TestToMinutes_NonFiniteInput(t *testing.T) {
	// NaN и Inf приводятся к дефолтным 0.5 единицы
	assert.Equal(t, 30, ToMinutes(math.NaN(), UnitHours))
	assert.Equal(t, 240, ToMinutes(math.NaN(), UnitDays))
	assert.Equal(t, 30, ToMinutes(math.Inf(1), UnitHours))
	assert.Equal(t, 30, ToMinutes(math.Inf(-1), UnitHours))
}

func TestToMinutes_NeverOutsideRange(t *testing.T) {
	values := []float64{-1000, -1, 0, 0.0001, 0.5, 1, 7.3, 24, 10000, 1e12}
	units := []Unit{UnitHours, UnitDays}

	for _, u := range units {
		for _, v := range values {
			got := ToMinutes(v, u)
			assert.GreaterOrEqual(t, got, 30, "value=%v unit=%s", v, u)
			assert.LessOrEqual(t, got, 10080, "value=%v unit=%s", v, u)
		}
	}
}

func TestToDisplay(t *testing.T) {
	assert.Equal(t, 1.5, ToDisplay(90, UnitHours))
	assert.Equal(t, 1.25, ToDisplay(600, UnitDays))
	// Дробные значения не округляются
	assert.InDelta(t, 0.5833333, ToDisplay(35, UnitHours), 1e-6)
}

func TestToMinutesToDisplay_Inverse(t *testing.T) {
	// Для всех валидных минут конвертация туда-обратно сходится
	// с точностью до минуты округления
	for _, unit := range []Unit{UnitHours, UnitDays} {
		for minutes := 30; minutes <= 10080; minutes += 7 {
			display := ToDisplay(minutes, unit)
			back := ToMinutes(display, unit)
			assert.InDelta(t, minutes, back, 1, "minutes=%d unit=%s", minutes, unit)
		}
	}
}

func TestInferDefaultUnit(t *testing.T) {
	assert.Equal(t, UnitHours, InferDefaultUnit(30))
	assert.Equal(t, UnitHours, InferDefaultUnit(480)) // ровно один день — ещё часы
	assert.Equal(t, UnitDays, InferDefaultUnit(481))
	assert.Equal(t, UnitDays, InferDefaultUnit(600)) // 10-часовая работа — 1.25 дня
}
