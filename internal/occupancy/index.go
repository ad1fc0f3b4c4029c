// Package occupancy derives, for one displayed week, which timetable grid
// cells are already taken by concrete class sessions.
package occupancy

import (
	"log/slog"
	"sort"
	"time"

	"github.com/example/center-timetable/internal/timegrid"
)

// Session is a calendar-dated class occurrence supplied by the external
// schedule query. Descriptive fields are carried for rendering only and play
// no part in conflict logic.
type Session struct {
	ID          string
	ClassName   string
	TeacherName string
	Date        time.Time
	StartTime   string
	EndTime     string
	RoomName    string
}

// Key addresses one grid cell of one room. Using a struct key keeps room
// names with arbitrary characters from colliding, which concatenated string
// keys cannot guarantee.
type Key struct {
	Day      timegrid.Day
	TimeSlot string
	RoomName string
}

// Index answers point queries about which cells of the displayed week are
// occupied. It is rebuilt in full whenever the session list or week window
// changes; rebuilds are idempotent.
type Index struct {
	cells map[Key]Session
}

// BuildIndex constructs an Index from sessions already scoped to the
// displayed week. Sessions with a zero date, an unparseable start or end
// time, or no assigned room are skipped; occupancy is a rendering aid, so
// malformed rows are logged and dropped rather than failing the build.
// When two sessions land on the same cell the later one wins.
func BuildIndex(sessions []Session, logger *slog.Logger) *Index {
	idx := &Index{cells: make(map[Key]Session)}

	slots := timegrid.TimeSlots()
	slotMinutes := make([]int, len(slots))
	for i, slot := range slots {
		minutes, err := timegrid.ParseClock(slot)
		if err != nil {
			continue
		}
		slotMinutes[i] = minutes
	}

	for _, session := range sessions {
		if session.Date.IsZero() || session.RoomName == "" {
			logSkip(logger, session, "missing date or room")
			continue
		}

		start, err := timegrid.ParseClock(session.StartTime)
		if err != nil {
			logSkip(logger, session, "unparseable start time")
			continue
		}
		end, err := timegrid.ParseClock(session.EndTime)
		if err != nil {
			logSkip(logger, session, "unparseable end time")
			continue
		}

		day, err := timegrid.DayFromWeekdayIndex(int(session.Date.Weekday()))
		if err != nil {
			// Unreachable for a valid time.Time; skip defensively.
			logSkip(logger, session, "weekday out of range")
			continue
		}

		for i, slot := range slots {
			if slotMinutes[i] >= start && slotMinutes[i] < end {
				key := Key{Day: day, TimeSlot: slot, RoomName: session.RoomName}
				if _, taken := idx.cells[key]; taken && logger != nil {
					logger.Debug("occupancy cell overwritten",
						"day", day, "slot", slot, "room", session.RoomName)
				}
				idx.cells[key] = session
			}
		}
	}

	return idx
}

// Lookup returns the session occupying the cell, if any.
func (idx *Index) Lookup(day timegrid.Day, timeSlot, roomName string) (Session, bool) {
	if idx == nil {
		return Session{}, false
	}
	session, ok := idx.cells[Key{Day: day, TimeSlot: timeSlot, RoomName: roomName}]
	return session, ok
}

// Occupied reports whether the cell is taken.
func (idx *Index) Occupied(day timegrid.Day, timeSlot, roomName string) bool {
	_, ok := idx.Lookup(day, timeSlot, roomName)
	return ok
}

// RoomNames returns the distinct room names appearing in the index, sorted.
func (idx *Index) RoomNames() []string {
	if idx == nil {
		return nil
	}
	seen := make(map[string]struct{})
	rooms := make([]string, 0)
	for key := range idx.cells {
		if _, ok := seen[key.RoomName]; !ok {
			seen[key.RoomName] = struct{}{}
			rooms = append(rooms, key.RoomName)
		}
	}
	sort.Strings(rooms)
	return rooms
}

// Len returns the number of occupied cells.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.cells)
}

func logSkip(logger *slog.Logger, session Session, reason string) {
	if logger == nil {
		return
	}
	logger.Warn("skipping session during occupancy build",
		"session_id", session.ID, "reason", reason)
}
