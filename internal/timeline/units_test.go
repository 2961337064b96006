package timeline

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{"ms", Millisecond},
		{"s", Second},
		{"m", Minute},
		{"h", Hour},
		{"d", Day},
		{"w", Week},
		{"M", Month},
		{"y", Year},
		{"minutes", Minute},
		{"Hour", Hour},
		{"days", Day},
		{"months", Month},
		{" years ", Year},
		{"H", Hour},
		{"MS", Millisecond},
		{"D", Day},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnit(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnit_Unknown(t *testing.T) {
	_, err := ParseUnit("fortnight")
	require.ErrorIs(t, err, ErrUnknownUnit)
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		in         string
		wantAmount int
		wantUnit   Unit
	}{
		{"3h", 3, Hour},
		{"+1d", 1, Day},
		{"-15m", -15, Minute},
		{"2M", 2, Month},
		{"10 minutes", 10, Minute},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			amount, unit, err := ParseStep(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.wantAmount, amount)
			require.Equal(t, tt.wantUnit, unit)
		})
	}
}

func TestParseStep_Invalid(t *testing.T) {
	for _, in := range []string{"", "h", "-", "3", "3x"} {
		t.Run(in, func(t *testing.T) {
			_, _, err := ParseStep(in)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrInvalidStep))
		})
	}
}

func TestUnitShift(t *testing.T) {
	base := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)

	require.Equal(t, base.Add(1500*time.Millisecond), Millisecond.Shift(base, 1500))
	require.Equal(t, base.Add(-30*time.Second), Second.Shift(base, -30))
	require.Equal(t, base.Add(2*time.Hour), Hour.Shift(base, 2))
	require.Equal(t, time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC), Day.Shift(base, 1))
	require.Equal(t, time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC), Week.Shift(base, 2))
	require.Equal(t, time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC), Month.Shift(base, 1))
	require.Equal(t, time.Date(2023, 1, 31, 12, 0, 0, 0, time.UTC), Year.Shift(base, -1))
}

func TestUnitShift_Saturates(t *testing.T) {
	base := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	farFuture := base.AddDate(maxShiftYears, 0, 0)
	farPast := base.AddDate(-maxShiftYears, 0, 0)

	for _, u := range []Unit{Millisecond, Second, Minute, Hour, Day, Week, Month, Year} {
		t.Run(u.String(), func(t *testing.T) {
			require.False(t, u.Shift(base, math.MaxInt).Before(base))
			require.False(t, u.Shift(base, math.MinInt).After(base))
			require.False(t, u.Shift(base, math.MaxInt).After(farFuture.AddDate(1, 0, 0)))
			require.False(t, u.Shift(base, math.MinInt).Before(farPast.AddDate(-1, 0, 0)))
		})
	}
}

func TestUnitString(t *testing.T) {
	require.Equal(t, "h", Hour.String())
	require.Equal(t, "M", Month.String())
	require.Equal(t, "Unit(42)", Unit(42).String())
}
