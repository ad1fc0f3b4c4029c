package application

import (
	"context"
	"errors"
	"testing"

	"github.com/example/center-timetable/internal/persistence"
	"github.com/example/center-timetable/internal/slotset"
	"github.com/example/center-timetable/internal/testfixtures"
	"github.com/example/center-timetable/internal/timegrid"
)

func newTimetableService(schedules *fakeScheduleRepo, rooms *fakeRoomRepo) *TimetableService {
	ids := testfixtures.NewIDGenerator("sched")
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())
	return NewTimetableService(schedules, rooms, ids.NextFunc(), clock.NowFunc(), nil)
}

func seedRoom(t *testing.T, rooms *fakeRoomRepo, id, name string) {
	t.Helper()
	if err := rooms.CreateRoom(context.Background(), persistence.Room{ID: id, Name: name, Capacity: 10}); err != nil {
		t.Fatalf("seed room %s failed: %v", id, err)
	}
}

func TestTimetableServiceSaveWeeklySchedule(t *testing.T) {
	t.Run("persists a conflict-free slot set", func(t *testing.T) {
		schedules := newFakeScheduleRepo()
		rooms := newFakeRoomRepo()
		seedRoom(t, rooms, "room-1", "Room A")
		service := newTimetableService(schedules, rooms)

		saved, err := service.SaveWeeklySchedule(context.Background(), SaveScheduleParams{
			ClassID:      "class-1",
			TeacherID:    "teacher-1",
			AcademicYear: "2025",
			Slots: []slotset.Slot{
				{Day: timegrid.Monday, StartTime: "09:00", Duration: 90, RoomID: "room-1", RoomName: "Room A"},
				{Day: timegrid.Wednesday, StartTime: "13:00", Duration: 60, RoomID: "room-1", RoomName: "Room A"},
			},
		})
		if err != nil {
			t.Fatalf("SaveWeeklySchedule returned error: %v", err)
		}
		if saved.ID == "" {
			t.Fatal("expected a generated schedule id")
		}
		if len(saved.Slots) != 2 {
			t.Fatalf("expected 2 stored slots, got %d", len(saved.Slots))
		}
		for _, slot := range saved.Slots {
			if slot.ID == "" {
				t.Fatal("expected every slot to receive an id")
			}
		}
		if saved.Slots[0].EndTime != "10:30" {
			t.Fatalf("expected end time derived from start + duration, got %q", saved.Slots[0].EndTime)
		}
	})

	t.Run("requires a class id", func(t *testing.T) {
		service := newTimetableService(newFakeScheduleRepo(), newFakeRoomRepo())

		_, err := service.SaveWeeklySchedule(context.Background(), SaveScheduleParams{AcademicYear: "2025"})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["class_id"]; !ok {
			t.Fatal("expected class_id error")
		}
	})

	t.Run("rejects overlapping slots and flags both", func(t *testing.T) {
		schedules := newFakeScheduleRepo()
		rooms := newFakeRoomRepo()
		seedRoom(t, rooms, "room-1", "Room A")
		service := newTimetableService(schedules, rooms)

		_, err := service.SaveWeeklySchedule(context.Background(), SaveScheduleParams{
			ClassID:      "class-1",
			AcademicYear: "2025",
			Slots: []slotset.Slot{
				{ID: "slot-a", Day: timegrid.Monday, StartTime: "09:00", Duration: 90, RoomID: "room-1"},
				{ID: "slot-b", Day: timegrid.Monday, StartTime: "10:00", Duration: 60, RoomID: "room-1"},
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if _, ok := vErr.FieldErrors["slot-a"]; !ok {
			t.Error("expected slot-a to be flagged")
		}
		if _, ok := vErr.FieldErrors["slot-b"]; !ok {
			t.Error("expected slot-b to be flagged")
		}
		if len(schedules.schedules) != 0 {
			t.Fatal("conflicting schedule must not be persisted")
		}
	})

	t.Run("rejects slots pointing at unknown rooms", func(t *testing.T) {
		service := newTimetableService(newFakeScheduleRepo(), newFakeRoomRepo())

		_, err := service.SaveWeeklySchedule(context.Background(), SaveScheduleParams{
			ClassID:      "class-1",
			AcademicYear: "2025",
			Slots: []slotset.Slot{
				{ID: "slot-a", Day: timegrid.Monday, StartTime: "09:00", Duration: 60, RoomID: "ghost"},
			},
		})

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if vErr.FieldErrors["slot-a"] == "" {
			t.Fatalf("expected unknown-room error keyed by slot id, got %+v", vErr.FieldErrors)
		}
	})

	t.Run("resaving reuses the existing schedule id", func(t *testing.T) {
		schedules := newFakeScheduleRepo()
		rooms := newFakeRoomRepo()
		seedRoom(t, rooms, "room-1", "Room A")
		service := newTimetableService(schedules, rooms)

		params := SaveScheduleParams{
			ClassID:      "class-1",
			AcademicYear: "2025",
			Slots: []slotset.Slot{
				{Day: timegrid.Monday, StartTime: "09:00", Duration: 60, RoomID: "room-1"},
			},
		}

		first, err := service.SaveWeeklySchedule(context.Background(), params)
		if err != nil {
			t.Fatalf("first save failed: %v", err)
		}

		params.Slots = []slotset.Slot{
			{Day: timegrid.Friday, StartTime: "15:00", Duration: 90, RoomID: "room-1"},
		}
		second, err := service.SaveWeeklySchedule(context.Background(), params)
		if err != nil {
			t.Fatalf("second save failed: %v", err)
		}
		if second.ID != first.ID {
			t.Fatalf("expected reused schedule id %s, got %s", first.ID, second.ID)
		}
		if len(second.Slots) != 1 || second.Slots[0].Day != timegrid.Friday {
			t.Fatalf("expected slot set replaced, got %+v", second.Slots)
		}
	})
}

func TestTimetableServiceGetWeeklySchedule(t *testing.T) {
	schedules := newFakeScheduleRepo()
	rooms := newFakeRoomRepo()
	seedRoom(t, rooms, "room-1", "Room A")
	service := newTimetableService(schedules, rooms)

	if _, err := service.SaveWeeklySchedule(context.Background(), SaveScheduleParams{
		ClassID:      "class-1",
		AcademicYear: "2025",
		Slots: []slotset.Slot{
			{Day: timegrid.Monday, StartTime: "09:00", Duration: 60, RoomID: "room-1"},
		},
	}); err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	schedule, err := service.GetWeeklySchedule(context.Background(), "class-1", "2025")
	if err != nil {
		t.Fatalf("GetWeeklySchedule returned error: %v", err)
	}
	if schedule.ClassID != "class-1" || len(schedule.Slots) != 1 {
		t.Fatalf("unexpected schedule: %+v", schedule)
	}

	if _, err := service.GetWeeklySchedule(context.Background(), "class-1", "2026"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for another year, got %v", err)
	}
}

func TestTimetableServiceDeleteWeeklySchedule(t *testing.T) {
	schedules := newFakeScheduleRepo()
	rooms := newFakeRoomRepo()
	seedRoom(t, rooms, "room-1", "Room A")
	service := newTimetableService(schedules, rooms)

	saved, err := service.SaveWeeklySchedule(context.Background(), SaveScheduleParams{
		ClassID:      "class-1",
		AcademicYear: "2025",
		Slots: []slotset.Slot{
			{Day: timegrid.Monday, StartTime: "09:00", Duration: 60, RoomID: "room-1"},
		},
	})
	if err != nil {
		t.Fatalf("seed save failed: %v", err)
	}

	if err := service.DeleteWeeklySchedule(context.Background(), saved.ID); err != nil {
		t.Fatalf("DeleteWeeklySchedule returned error: %v", err)
	}
	if err := service.DeleteWeeklySchedule(context.Background(), saved.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
