// Package timegrid defines the fixed axes of the weekly timetable grid: the
// seven-day week in canonical order and the selectable time-of-day slots.
package timegrid

import "fmt"

// Day identifies one of the seven weekdays used across the timetable domain.
type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// days holds the canonical ordering, Monday first and Sunday last. Iteration
// and conflict reporting depend on this order.
var days = [7]Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var dayLabels = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// Days returns the seven weekdays in canonical grid order.
func Days() []Day {
	out := make([]Day, len(days))
	copy(out, days[:])
	return out
}

// Label returns the display label for the day, or the raw identifier when the
// day is not one of the seven known values.
func (d Day) Label() string {
	if label, ok := dayLabels[d]; ok {
		return label
	}
	return string(d)
}

// Valid reports whether the day is one of the seven known identifiers.
func (d Day) Valid() bool {
	_, ok := dayLabels[d]
	return ok
}

// ErrDayIndexOutOfRange indicates a weekday index outside 0..6 was supplied.
var ErrDayIndexOutOfRange = fmt.Errorf("timegrid: weekday index out of range")

// DayFromWeekdayIndex maps a 0=Sunday..6=Saturday weekday index to a Day.
// Out-of-range input is a programming or data error upstream and is reported
// explicitly rather than defaulted.
func DayFromWeekdayIndex(index int) (Day, error) {
	switch index {
	case 0:
		return Sunday, nil
	case 1:
		return Monday, nil
	case 2:
		return Tuesday, nil
	case 3:
		return Wednesday, nil
	case 4:
		return Thursday, nil
	case 5:
		return Friday, nil
	case 6:
		return Saturday, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrDayIndexOutOfRange, index)
	}
}

const (
	gridFirstSlotMinutes = 7 * 60            // 07:00
	gridLastSlotMinutes  = 21*60 + 30        // 21:30 inclusive
	gridSlotStep         = 30                // minutes per grid cell
)

// TimeSlots returns the selectable grid times as zero-padded "HH:MM" strings,
// 07:00 through 21:30 inclusive in 30 minute steps. The slice is freshly
// allocated on each call so callers may reorder or truncate it.
func TimeSlots() []string {
	slots := make([]string, 0, (gridLastSlotMinutes-gridFirstSlotMinutes)/gridSlotStep+1)
	for m := gridFirstSlotMinutes; m <= gridLastSlotMinutes; m += gridSlotStep {
		slots = append(slots, FormatClock(m))
	}
	return slots
}
