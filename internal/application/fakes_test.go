package application

import (
	"context"
	"sort"
	"strings"

	"github.com/example/center-timetable/internal/persistence"
)

// fakeRoomRepo is an in-memory persistence.RoomRepository.
type fakeRoomRepo struct {
	rooms map[string]persistence.Room
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[string]persistence.Room)}
}

func (f *fakeRoomRepo) CreateRoom(_ context.Context, room persistence.Room) error {
	if _, ok := f.rooms[room.ID]; ok {
		return persistence.ErrDuplicate
	}
	for _, existing := range f.rooms {
		if strings.EqualFold(existing.Name, room.Name) {
			return persistence.ErrDuplicate
		}
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) UpdateRoom(_ context.Context, room persistence.Room) error {
	if _, ok := f.rooms[room.ID]; !ok {
		return persistence.ErrNotFound
	}
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) GetRoom(_ context.Context, id string) (persistence.Room, error) {
	room, ok := f.rooms[id]
	if !ok {
		return persistence.Room{}, persistence.ErrNotFound
	}
	return room, nil
}

func (f *fakeRoomRepo) ListRooms(_ context.Context) ([]persistence.Room, error) {
	out := make([]persistence.Room, 0, len(f.rooms))
	for _, room := range f.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeRoomRepo) DeleteRoom(_ context.Context, id string) error {
	if _, ok := f.rooms[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(f.rooms, id)
	return nil
}

// fakeSessionRepo is an in-memory persistence.SessionRepository.
type fakeSessionRepo struct {
	sessions map[string]persistence.ClassSession
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]persistence.ClassSession)}
}

func (f *fakeSessionRepo) CreateSession(_ context.Context, session persistence.ClassSession) error {
	if _, ok := f.sessions[session.ID]; ok {
		return persistence.ErrDuplicate
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) UpdateSession(_ context.Context, session persistence.ClassSession) error {
	if _, ok := f.sessions[session.ID]; !ok {
		return persistence.ErrNotFound
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetSession(_ context.Context, id string) (persistence.ClassSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return persistence.ClassSession{}, persistence.ErrNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) ListSessions(_ context.Context, filter persistence.SessionFilter) ([]persistence.ClassSession, error) {
	out := make([]persistence.ClassSession, 0, len(f.sessions))
	for _, session := range f.sessions {
		if filter.DateFrom != nil && session.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && session.Date.After(*filter.DateTo) {
			continue
		}
		if filter.RoomName != nil && (session.RoomName == nil || *session.RoomName != *filter.RoomName) {
			continue
		}
		out = append(out, session)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

func (f *fakeSessionRepo) DeleteSession(_ context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(f.sessions, id)
	return nil
}

// fakeScheduleRepo is an in-memory persistence.ScheduleRepository.
type fakeScheduleRepo struct {
	schedules map[string]persistence.WeeklySchedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]persistence.WeeklySchedule)}
}

func (f *fakeScheduleRepo) SaveSchedule(_ context.Context, schedule persistence.WeeklySchedule) error {
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) GetSchedule(_ context.Context, id string) (persistence.WeeklySchedule, error) {
	schedule, ok := f.schedules[id]
	if !ok {
		return persistence.WeeklySchedule{}, persistence.ErrNotFound
	}
	return schedule, nil
}

func (f *fakeScheduleRepo) GetScheduleForClass(_ context.Context, classID, academicYear string) (persistence.WeeklySchedule, error) {
	for _, schedule := range f.schedules {
		if schedule.ClassID == classID && schedule.AcademicYear == academicYear {
			return schedule, nil
		}
	}
	return persistence.WeeklySchedule{}, persistence.ErrNotFound
}

func (f *fakeScheduleRepo) DeleteSchedule(_ context.Context, id string) error {
	if _, ok := f.schedules[id]; !ok {
		return persistence.ErrNotFound
	}
	delete(f.schedules, id)
	return nil
}
