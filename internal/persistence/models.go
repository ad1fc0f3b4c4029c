package persistence

import "time"

// Room represents a physical classroom in the center's catalog.
type Room struct {
	ID        string
	Name      string
	Location  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ClassSession represents one concrete, calendar-dated class occurrence.
// RoomName is denormalized alongside RoomID because the occupancy grid is
// keyed by room name; sessions without an assigned room carry nil values.
type ClassSession struct {
	ID          string
	ClassName   string
	TeacherName string
	Date        time.Time
	StartTime   string
	EndTime     string
	RoomID      *string
	RoomName    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// WeeklySlot is the stored form of one weekly recurring slot belonging to a
// class schedule.
type WeeklySlot struct {
	ID        string
	Day       string
	StartTime string
	EndTime   string
	Duration  int
	RoomID    *string
	RoomName  *string
}

// WeeklySchedule groups the weekly slots saved for one class in one academic
// year.
type WeeklySchedule struct {
	ID           string
	ClassID      string
	TeacherID    string
	AcademicYear string
	Slots        []WeeklySlot
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
