// Package importer loads room catalogs and session rosters from CSV files,
// the center's bulk data-entry path. Rows that fail validation are collected
// into a report instead of aborting the whole import.
package importer

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/example/center-timetable/internal/persistence"
	"github.com/example/center-timetable/internal/timegrid"
)

const dateLayout = "2006-01-02"

// RoomRow is the CSV shape of one room catalog entry.
type RoomRow struct {
	Name     string `csv:"name"`
	Location string `csv:"location"`
	Capacity int    `csv:"capacity"`
}

// SessionRow is the CSV shape of one dated class session.
type SessionRow struct {
	ClassName   string `csv:"class_name"`
	TeacherName string `csv:"teacher_name"`
	Date        string `csv:"date"`
	StartTime   string `csv:"start_time"`
	EndTime     string `csv:"end_time"`
	RoomName    string `csv:"room_name"`
}

// Report accumulates per-row problems encountered during an import.
type Report struct {
	RowErrors []string
}

// Flag records a problem for one row.
func (r *Report) Flag(row int, message string) {
	r.RowErrors = append(r.RowErrors, fmt.Sprintf("row %d: %s", row, message))
}

// HasErrors reports whether any rows were rejected.
func (r *Report) HasErrors() bool {
	return len(r.RowErrors) > 0
}

// LoadRooms parses a room catalog CSV. Invalid rows are flagged and skipped;
// valid rows are returned without ids, which the caller assigns.
func LoadRooms(path string) ([]persistence.Room, *Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer file.Close()

	var rows []*RoomRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, nil, fmt.Errorf("importer: parse %s: %w", path, err)
	}

	report := &Report{}
	rooms := make([]persistence.Room, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.Name) == "" {
			report.Flag(i+1, "room name is required")
			continue
		}
		if row.Capacity <= 0 {
			report.Flag(i+1, fmt.Sprintf("capacity must be positive, got %d", row.Capacity))
			continue
		}
		rooms = append(rooms, persistence.Room{
			Name:     strings.TrimSpace(row.Name),
			Location: strings.TrimSpace(row.Location),
			Capacity: row.Capacity,
		})
	}
	return rooms, report, nil
}

// LoadSessions parses a session roster CSV. Rows with a malformed date or
// clock are flagged and skipped. Rows without a room are kept (they are
// legal sessions) but flagged, since they will never appear in room
// occupancy and usually indicate incomplete data entry.
func LoadSessions(path string) ([]persistence.ClassSession, *Report, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("importer: open %s: %w", path, err)
	}
	defer file.Close()

	var rows []*SessionRow
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, nil, fmt.Errorf("importer: parse %s: %w", path, err)
	}

	report := &Report{}
	sessions := make([]persistence.ClassSession, 0, len(rows))
	for i, row := range rows {
		if strings.TrimSpace(row.ClassName) == "" {
			report.Flag(i+1, "class name is required")
			continue
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(row.Date))
		if err != nil {
			report.Flag(i+1, fmt.Sprintf("invalid date %q", row.Date))
			continue
		}

		start, err := timegrid.ParseClock(strings.TrimSpace(row.StartTime))
		if err != nil {
			report.Flag(i+1, fmt.Sprintf("invalid start time %q", row.StartTime))
			continue
		}
		end, err := timegrid.ParseClock(strings.TrimSpace(row.EndTime))
		if err != nil {
			report.Flag(i+1, fmt.Sprintf("invalid end time %q", row.EndTime))
			continue
		}
		if start >= end {
			report.Flag(i+1, "start time must be before end time")
			continue
		}

		session := persistence.ClassSession{
			ClassName:   strings.TrimSpace(row.ClassName),
			TeacherName: strings.TrimSpace(row.TeacherName),
			Date:        date,
			StartTime:   timegrid.FormatClock(start),
			EndTime:     timegrid.FormatClock(end),
		}

		roomName := strings.TrimSpace(row.RoomName)
		if roomName == "" {
			report.Flag(i+1, "session has no room and will not appear in room occupancy")
		} else {
			session.RoomName = &roomName
		}

		sessions = append(sessions, session)
	}
	return sessions, report, nil
}
