package slotset

import (
	"fmt"

	"github.com/example/center-timetable/internal/timegrid"
)

// Result reports the outcome of validating a slot set. Errors are keyed by
// slot id so a host UI can attach each message to the offending slot.
// Submission must stay blocked while Valid is false.
type Result struct {
	Valid  bool
	Errors map[string]string
}

// Validate checks every slot for required fields and every same-day pair for
// half-open interval overlap. An overlapping pair flags both slots; a slot
// keeps only its first conflict message even when it collides with several
// others, which avoids noisy duplicate feedback while the user untangles the
// schedule.
func Validate(set []Slot) Result {
	errs := make(map[string]string)

	ranges := make(map[string]timegrid.Range, len(set))
	for _, slot := range set {
		if !slot.Day.Valid() {
			errs[slot.ID] = "day is required"
			continue
		}
		if slot.StartTime == "" {
			errs[slot.ID] = "start time is required"
			continue
		}
		if slot.Duration <= 0 {
			errs[slot.ID] = "duration must be positive"
			continue
		}
		r, err := timegrid.NewRange(slot.StartTime, slot.Duration)
		if err != nil {
			errs[slot.ID] = "start time must be in HH:MM form"
			continue
		}
		ranges[slot.ID] = r
	}

	for i := 0; i < len(set); i++ {
		for j := i + 1; j < len(set); j++ {
			a, b := set[i], set[j]
			if a.Day != b.Day {
				continue
			}
			ra, okA := ranges[a.ID]
			rb, okB := ranges[b.ID]
			if !okA || !okB || !ra.Overlaps(rb) {
				continue
			}
			if _, taken := errs[a.ID]; !taken {
				errs[a.ID] = fmt.Sprintf("overlaps another %s slot (%s)", a.Day.Label(), rb)
			}
			if _, taken := errs[b.ID]; !taken {
				errs[b.ID] = fmt.Sprintf("overlaps another %s slot (%s)", b.Day.Label(), ra)
			}
		}
	}

	if len(errs) == 0 {
		return Result{Valid: true, Errors: map[string]string{}}
	}
	return Result{Valid: false, Errors: errs}
}
