package application

import (
	"time"

	"github.com/example/center-timetable/internal/slotset"
)

// Room represents a classroom exposed by the room directory.
type Room struct {
	ID        string
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RoomInput captures caller provided room fields.
type RoomInput struct {
	Name     string
	Location string
	Capacity int
}

// ClassSession represents one calendar-dated class occurrence.
type ClassSession struct {
	ID          string
	ClassName   string
	TeacherName string
	Date        time.Time
	StartTime   string
	EndTime     string
	RoomID      string
	RoomName    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionInput captures caller provided session fields.
type SessionInput struct {
	ClassName   string
	TeacherName string
	Date        time.Time
	StartTime   string
	EndTime     string
	RoomID      string
	RoomName    string
}

// WeeklySchedule is the saved slot set for one class in one academic year.
type WeeklySchedule struct {
	ID           string
	ClassID      string
	TeacherID    string
	AcademicYear string
	Slots        []slotset.Slot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SaveScheduleParams wraps a slot set submission for one class.
type SaveScheduleParams struct {
	ClassID      string
	TeacherID    string
	AcademicYear string
	Slots        []slotset.Slot
}
