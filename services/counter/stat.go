package counter

import (
	"fmt"
	"math"
	"strconv"
)

// Formatter renders a statistic value for display. Formatters are pure and
// never change the underlying value.
type Formatter func(value float64) string

// Named formatters usable from content configuration.
const (
	FormatFloorPlus        = "floor_plus"
	FormatCurrencyMillions = "currency_millions"
	FormatRoundPlus        = "round_plus"
	FormatPercent          = "percent"
)

var formatters = map[string]Formatter{
	FormatFloorPlus:        FloorPlus,
	FormatCurrencyMillions: CurrencyMillions,
	FormatRoundPlus:        RoundPlus,
	FormatPercent:          Percent,
}

// LookupFormatter returns the formatter registered under name.
func LookupFormatter(name string) (Formatter, bool) {
	f, ok := formatters[name]
	return f, ok
}

// FloorPlus truncates to an integer and appends "+" (1200 -> "1200+").
func FloorPlus(v float64) string {
	return fmt.Sprintf("%d+", int64(math.Floor(v)))
}

// CurrencyMillions renders millions with one decimal (25 -> "$25.0M+").
func CurrencyMillions(v float64) string {
	return fmt.Sprintf("$%.1fM+", v)
}

// RoundPlus rounds half away from zero and appends "+" (4.5 -> "5+").
func RoundPlus(v float64) string {
	return fmt.Sprintf("%d+", int64(math.Round(v)))
}

// Percent rounds half away from zero to an integer percentage (98 -> "98%").
func Percent(v float64) string {
	return fmt.Sprintf("%d%%", int64(math.Round(v)))
}

// StatEntry is one animated statistic. Its current value starts at zero and
// moves toward Target by Step per tick, pinned at Target once reached.
type StatEntry struct {
	Key    string
	Label  string
	Target float64
	Step   float64
	Format Formatter

	current float64
}

// Value returns the current value.
func (s *StatEntry) Value() float64 {
	return s.current
}

// Saturated reports whether the entry has reached its target.
func (s *StatEntry) Saturated() bool {
	return s.current >= s.Target
}

// Display formats the current value without changing it.
func (s *StatEntry) Display() string {
	if s.Format == nil {
		return strconv.FormatFloat(s.current, 'f', -1, 64)
	}
	return s.Format(s.current)
}

// advance sets the value reached after ticks steps: min(Target, ticks*Step).
// Deriving the value from the tick count keeps float error from piling up
// across ticks.
func (s *StatEntry) advance(ticks int) {
	if s.Saturated() {
		return
	}
	s.current = math.Min(s.Target, float64(ticks)*s.Step)
}
