package persistence

import (
	"context"
	"time"
)

// RoomRepository exposes CRUD operations for the room catalog.
type RoomRepository interface {
	CreateRoom(ctx context.Context, room Room) error
	UpdateRoom(ctx context.Context, room Room) error
	GetRoom(ctx context.Context, id string) (Room, error)
	ListRooms(ctx context.Context) ([]Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

// SessionFilter narrows class session queries. Bounds are inclusive at day
// granularity, matching the schedule-query contract of "all sessions whose
// date falls within [start, end]".
type SessionFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	RoomName *string
}

// SessionRepository stores calendar-dated class sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session ClassSession) error
	UpdateSession(ctx context.Context, session ClassSession) error
	GetSession(ctx context.Context, id string) (ClassSession, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]ClassSession, error)
	DeleteSession(ctx context.Context, id string) error
}

// ScheduleRepository stores weekly schedules and their slots.
type ScheduleRepository interface {
	SaveSchedule(ctx context.Context, schedule WeeklySchedule) error
	GetSchedule(ctx context.Context, id string) (WeeklySchedule, error)
	GetScheduleForClass(ctx context.Context, classID, academicYear string) (WeeklySchedule, error)
	DeleteSchedule(ctx context.Context, id string) error
}
