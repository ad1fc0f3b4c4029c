package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/center-timetable/internal/persistence"
	"github.com/example/center-timetable/internal/slotset"
	"github.com/example/center-timetable/internal/timegrid"
)

// TimetableService is the submission boundary for weekly schedules. It
// re-validates every slot set server side so only internally conflict-free
// schedules reach persistence, regardless of what the client claims to have
// checked.
type TimetableService struct {
	schedules   persistence.ScheduleRepository
	rooms       persistence.RoomRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTimetableService wires dependencies for schedule submission.
func NewTimetableService(schedules persistence.ScheduleRepository, rooms persistence.RoomRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *TimetableService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TimetableService{
		schedules:   schedules,
		rooms:       rooms,
		idGenerator: idGenerator,
		now:         now,
		logger:      defaultLogger(logger),
	}
}

func (s *TimetableService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TimetableService", operation, attrs...)
}

// SaveWeeklySchedule validates and persists the slot set for a class. Slot
// level problems (missing day, non-positive duration, same-day overlaps)
// come back as a ValidationError keyed by slot id; the set is only stored
// when every check passes.
func (s *TimetableService) SaveWeeklySchedule(ctx context.Context, params SaveScheduleParams) (schedule WeeklySchedule, err error) {
	if s == nil || s.schedules == nil {
		return WeeklySchedule{}, fmt.Errorf("schedule repository not configured")
	}

	logger := s.loggerWith(ctx, "SaveWeeklySchedule", "class_id", params.ClassID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to save weekly schedule", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "weekly schedule saved", "schedule_id", schedule.ID, "slots", len(schedule.Slots))
	}()

	if strings.TrimSpace(params.ClassID) == "" {
		vErr := &ValidationError{}
		vErr.add("class_id", "class id is required")
		return WeeklySchedule{}, vErr
	}

	slots := normalizeSlots(params.Slots, s.idGenerator)

	if result := slotset.Validate(slots); !result.Valid {
		return WeeklySchedule{}, &ValidationError{FieldErrors: result.Errors}
	}

	if err = s.ensureRoomsExist(ctx, slots); err != nil {
		return WeeklySchedule{}, err
	}

	existingID := ""
	if existing, getErr := s.schedules.GetScheduleForClass(ctx, params.ClassID, params.AcademicYear); getErr == nil {
		existingID = existing.ID
	}

	scheduleID := existingID
	if scheduleID == "" {
		scheduleID = s.idGenerator()
	}

	record := persistence.WeeklySchedule{
		ID:           scheduleID,
		ClassID:      params.ClassID,
		TeacherID:    params.TeacherID,
		AcademicYear: params.AcademicYear,
		Slots:        toPersistenceSlots(slots),
	}

	if err = mapRepoError(s.schedules.SaveSchedule(ctx, record)); err != nil {
		return WeeklySchedule{}, err
	}

	stored, err := s.schedules.GetSchedule(ctx, scheduleID)
	if err != nil {
		return WeeklySchedule{}, mapRepoError(err)
	}
	return toApplicationSchedule(stored), nil
}

// GetWeeklySchedule returns the stored slot set for a class and academic year.
func (s *TimetableService) GetWeeklySchedule(ctx context.Context, classID, academicYear string) (WeeklySchedule, error) {
	if s == nil || s.schedules == nil {
		return WeeklySchedule{}, fmt.Errorf("schedule repository not configured")
	}
	stored, err := s.schedules.GetScheduleForClass(ctx, classID, academicYear)
	if err != nil {
		return WeeklySchedule{}, mapRepoError(err)
	}
	return toApplicationSchedule(stored), nil
}

// DeleteWeeklySchedule removes a stored schedule by id.
func (s *TimetableService) DeleteWeeklySchedule(ctx context.Context, scheduleID string) error {
	if s == nil || s.schedules == nil {
		return fmt.Errorf("schedule repository not configured")
	}
	return mapRepoError(s.schedules.DeleteSchedule(ctx, scheduleID))
}

// normalizeSlots assigns ids to hand-entered slots that lack one and
// recomputes every derived end time so stored values never drift from
// start + duration.
func normalizeSlots(slots []slotset.Slot, newID func() string) []slotset.Slot {
	out := make([]slotset.Slot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = newID()
		}
		if out[i].Duration > 0 {
			if end, err := timegrid.AddClock(out[i].StartTime, out[i].Duration); err == nil {
				out[i].EndTime = end
			}
		}
	}
	return out
}

func (s *TimetableService) ensureRoomsExist(ctx context.Context, slots []slotset.Slot) error {
	if s.rooms == nil {
		return nil
	}

	checked := make(map[string]struct{}, len(slots))
	vErr := &ValidationError{}
	for _, slot := range slots {
		if slot.RoomID == "" {
			continue
		}
		if _, done := checked[slot.RoomID]; done {
			continue
		}
		checked[slot.RoomID] = struct{}{}

		if _, err := s.rooms.GetRoom(ctx, slot.RoomID); err != nil {
			if mapRepoError(err) == ErrNotFound {
				vErr.add(slot.ID, fmt.Sprintf("room %s does not exist", slot.RoomID))
				continue
			}
			return mapRepoError(err)
		}
	}

	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

func toPersistenceSlots(slots []slotset.Slot) []persistence.WeeklySlot {
	out := make([]persistence.WeeklySlot, 0, len(slots))
	for _, slot := range slots {
		record := persistence.WeeklySlot{
			ID:        slot.ID,
			Day:       string(slot.Day),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Duration:  slot.Duration,
		}
		if slot.RoomID != "" {
			roomID := slot.RoomID
			record.RoomID = &roomID
		}
		if slot.RoomName != "" {
			roomName := slot.RoomName
			record.RoomName = &roomName
		}
		out = append(out, record)
	}
	return out
}

func toApplicationSchedule(model persistence.WeeklySchedule) WeeklySchedule {
	schedule := WeeklySchedule{
		ID:           model.ID,
		ClassID:      model.ClassID,
		TeacherID:    model.TeacherID,
		AcademicYear: model.AcademicYear,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
	for _, record := range model.Slots {
		slot := slotset.Slot{
			ID:        record.ID,
			Day:       timegrid.Day(record.Day),
			StartTime: record.StartTime,
			EndTime:   record.EndTime,
			Duration:  record.Duration,
		}
		if record.RoomID != nil {
			slot.RoomID = *record.RoomID
		}
		if record.RoomName != nil {
			slot.RoomName = *record.RoomName
		}
		schedule.Slots = append(schedule.Slots, slot)
	}
	return schedule
}
