package occupancy

import "time"

// WeekWindow computes the Monday-through-Sunday calendar range of the week
// offsetWeeks away from today (0 = current week, -1 = previous week). The
// returned bounds are inclusive at day granularity: Monday 00:00:00 through
// Sunday 23:59:59 in today's location.
func WeekWindow(today time.Time, offsetWeeks int) (start, end time.Time) {
	mondayOffset := 1 - int(today.Weekday())
	if today.Weekday() == time.Sunday {
		mondayOffset = -6
	}

	year, month, day := today.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, today.Location())

	start = midnight.AddDate(0, 0, mondayOffset+offsetWeeks*7)
	end = start.AddDate(0, 0, 6)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())
	return start, end
}
