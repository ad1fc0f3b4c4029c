// Package slotset holds the interactive state machine for assembling a
// class's weekly recurring time slots and validating the result before it is
// handed to persistence. All operations follow an immutable-update
// discipline: they return a new slice and never mutate the input, so callers
// can treat each return value as the next authoritative state.
package slotset

import (
	"fmt"

	"github.com/example/center-timetable/internal/occupancy"
	"github.com/example/center-timetable/internal/timegrid"
)

// Slot is one weekly recurring time commitment. EndTime is always derived
// from StartTime and Duration and is recomputed whenever either changes.
type Slot struct {
	ID        string
	Day       timegrid.Day
	StartTime string
	EndTime   string
	Duration  int
	RoomID    string
	RoomName  string
}

// ErrNonPositiveDuration is returned when a duration change would make a
// slot zero or negative length. The value is rejected, never clamped.
var ErrNonPositiveDuration = fmt.Errorf("slotset: duration must be positive")

// ErrSlotNotFound is returned by mutations that target a slot id absent from
// the set.
var ErrSlotNotFound = fmt.Errorf("slotset: slot not found")

// ToggleCell applies a grid cell click to the set. Clicks on occupied cells
// are hard no-ops: the input set is returned unchanged. A click matching an
// existing slot's (day, start, room) removes that slot; any other click on a
// free cell appends a new slot with the end time derived from duration.
func ToggleCell(set []Slot, idx *occupancy.Index, day timegrid.Day, timeSlot, roomID, roomName string, duration int, newID func() string) ([]Slot, error) {
	if idx.Occupied(day, timeSlot, roomName) {
		return set, nil
	}
	if duration <= 0 {
		return set, ErrNonPositiveDuration
	}

	for i, slot := range set {
		if slot.Day == day && slot.StartTime == timeSlot && slot.RoomID == roomID {
			out := make([]Slot, 0, len(set)-1)
			out = append(out, set[:i]...)
			out = append(out, set[i+1:]...)
			return out, nil
		}
	}

	end, err := timegrid.AddClock(timeSlot, duration)
	if err != nil {
		return set, err
	}

	id := ""
	if newID != nil {
		id = newID()
	}

	out := make([]Slot, len(set), len(set)+1)
	copy(out, set)
	out = append(out, Slot{
		ID:        id,
		Day:       day,
		StartTime: timeSlot,
		EndTime:   end,
		Duration:  duration,
		RoomID:    roomID,
		RoomName:  roomName,
	})
	return out, nil
}

// ChangeDuration replaces a slot's duration and recomputes its end time from
// the unchanged start time. Non-positive durations are rejected.
func ChangeDuration(set []Slot, slotID string, newDuration int) ([]Slot, error) {
	if newDuration <= 0 {
		return set, ErrNonPositiveDuration
	}
	return updateSlot(set, slotID, func(slot Slot) (Slot, error) {
		end, err := timegrid.AddClock(slot.StartTime, newDuration)
		if err != nil {
			return slot, err
		}
		slot.Duration = newDuration
		slot.EndTime = end
		return slot, nil
	})
}

// ChangeStartTime replaces a slot's start time and recomputes its end time
// from the unchanged duration.
func ChangeStartTime(set []Slot, slotID, newStart string) ([]Slot, error) {
	return updateSlot(set, slotID, func(slot Slot) (Slot, error) {
		end, err := timegrid.AddClock(newStart, slot.Duration)
		if err != nil {
			return slot, err
		}
		slot.StartTime = newStart
		slot.EndTime = end
		return slot, nil
	})
}

// Remove drops the slot with the given id. Removing an absent id is not an
// error; the set is returned unchanged.
func Remove(set []Slot, slotID string) []Slot {
	for i, slot := range set {
		if slot.ID == slotID {
			out := make([]Slot, 0, len(set)-1)
			out = append(out, set[:i]...)
			out = append(out, set[i+1:]...)
			return out
		}
	}
	return set
}

func updateSlot(set []Slot, slotID string, apply func(Slot) (Slot, error)) ([]Slot, error) {
	for i, slot := range set {
		if slot.ID != slotID {
			continue
		}
		updated, err := apply(slot)
		if err != nil {
			return set, err
		}
		out := make([]Slot, len(set))
		copy(out, set)
		out[i] = updated
		return out, nil
	}
	return set, fmt.Errorf("%w: %s", ErrSlotNotFound, slotID)
}
