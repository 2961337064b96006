package timeline

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Unit is a step size for Add and Sub.
type Unit int

const (
	Millisecond Unit = iota
	Second
	Minute
	Hour
	Day
	Week
	Month
	Year
)

// Unit parsing errors.
var (
	ErrUnknownUnit = errors.New("unknown time unit")
	ErrInvalidStep = errors.New("invalid step")
)

var unitNames = map[Unit]string{
	Millisecond: "ms",
	Second:      "s",
	Minute:      "m",
	Hour:        "h",
	Day:         "d",
	Week:        "w",
	Month:       "M",
	Year:        "y",
}

// String returns the short unit symbol.
func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// maxShiftYears bounds every shift so calendar and duration arithmetic cannot
// overflow. It is far outside any real data range.
const maxShiftYears = 1 << 20

// Shift moves ts by amount units. Day and larger units follow the calendar
// (time.AddDate), so a month step from Jan 31 normalizes the way AddDate does.
// Amounts beyond maxShiftYears saturate at that distance.
func (u Unit) Shift(ts time.Time, amount int) time.Time {
	switch u {
	case Millisecond:
		return shiftDuration(ts, amount, time.Millisecond)
	case Second:
		return shiftDuration(ts, amount, time.Second)
	case Minute:
		return shiftDuration(ts, amount, time.Minute)
	case Hour:
		return shiftDuration(ts, amount, time.Hour)
	case Day:
		return ts.AddDate(0, 0, clampAmount(amount, 365*maxShiftYears))
	case Week:
		return ts.AddDate(0, 0, 7*clampAmount(amount, 52*maxShiftYears))
	case Month:
		return ts.AddDate(0, clampAmount(amount, 12*maxShiftYears), 0)
	case Year:
		return ts.AddDate(clampAmount(amount, maxShiftYears), 0, 0)
	default:
		return ts
	}
}

func shiftDuration(ts time.Time, amount int, unit time.Duration) time.Time {
	limit := math.MaxInt64 / int64(unit)
	switch {
	case int64(amount) > limit:
		return ts.AddDate(maxShiftYears, 0, 0)
	case int64(amount) < -limit:
		return ts.AddDate(-maxShiftYears, 0, 0)
	}
	return ts.Add(time.Duration(amount) * unit)
}

func clampAmount(amount, limit int) int {
	return max(-limit, min(amount, limit))
}

// ParseUnit accepts short symbols (ms s m h d w M y) and long names such as
// "hour" or "months". Only m (minute) and M (month) are case-sensitive; every
// other symbol and name matches in any case.
func ParseUnit(s string) (Unit, error) {
	s = strings.TrimSpace(s)
	for u, name := range unitNames {
		if s == name {
			return u, nil
		}
	}
	lower := strings.ToLower(s)
	switch lower {
	case "ms":
		return Millisecond, nil
	case "s":
		return Second, nil
	case "h":
		return Hour, nil
	case "d":
		return Day, nil
	case "w":
		return Week, nil
	case "y":
		return Year, nil
	}
	switch strings.TrimSuffix(lower, "s") {
	case "millisecond", "msec":
		return Millisecond, nil
	case "second", "sec":
		return Second, nil
	case "minute", "min":
		return Minute, nil
	case "hour", "hr":
		return Hour, nil
	case "day":
		return Day, nil
	case "week", "wk":
		return Week, nil
	case "month", "mon":
		return Month, nil
	case "year", "yr":
		return Year, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// ParseStep parses a signed amount followed by a unit, e.g. "3h", "+1d", "-15m".
func ParseStep(s string) (int, Unit, error) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	numPart, unitPart := s[:i], s[i:]
	if numPart == "" || numPart == "+" || numPart == "-" {
		return 0, 0, fmt.Errorf("%w: %q has no amount", ErrInvalidStep, s)
	}
	amount, err := strconv.Atoi(numPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %v", ErrInvalidStep, s, err)
	}
	unit, err := ParseUnit(unitPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrInvalidStep, s, err)
	}
	return amount, unit, nil
}
