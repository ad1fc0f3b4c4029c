package timegrid

import (
	"errors"
	"fmt"
)

const minutesPerDay = 24 * 60

// ErrInvalidClock indicates a time-of-day string is not in zero-padded
// "HH:MM" form.
var ErrInvalidClock = errors.New("timegrid: invalid clock value")

// ParseClock converts a zero-padded "HH:MM" string into minutes since
// midnight. Manually entered schedules must pass through here before any
// comparison or arithmetic; lexicographic string comparison is never safe for
// unconstrained input.
func ParseClock(value string) (int, error) {
	if len(value) != 5 || value[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	hours, ok := parseTwoDigits(value[0], value[1])
	if !ok || hours > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	minutes, ok := parseTwoDigits(value[3], value[4])
	if !ok || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, value)
	}
	return hours*60 + minutes, nil
}

func parseTwoDigits(hi, lo byte) (int, bool) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, false
	}
	return int(hi-'0')*10 + int(lo-'0'), true
}

// FormatClock renders minutes since midnight as a zero-padded "HH:MM" string.
// Values are normalized modulo 24 hours.
func FormatClock(minutes int) string {
	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// AddClock adds a minute offset to a "HH:MM" time and returns the resulting
// "HH:MM" time, wrapping around midnight.
func AddClock(start string, minutes int) (string, error) {
	base, err := ParseClock(start)
	if err != nil {
		return "", err
	}
	return FormatClock(base + minutes), nil
}

// Range is a half-open [Start, End) time-of-day interval in minutes since
// midnight. The half-open convention means back-to-back ranges never overlap.
type Range struct {
	Start int
	End   int
}

// NewRange builds a Range from a "HH:MM" start and a positive duration.
func NewRange(start string, duration int) (Range, error) {
	if duration <= 0 {
		return Range{}, fmt.Errorf("timegrid: duration must be positive, got %d", duration)
	}
	base, err := ParseClock(start)
	if err != nil {
		return Range{}, err
	}
	return Range{Start: base, End: base + duration}, nil
}

// Overlaps reports whether two half-open ranges intersect.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// String renders the range as "HH:MM-HH:MM" for conflict messages.
func (r Range) String() string {
	return FormatClock(r.Start) + "-" + FormatClock(r.End)
}
