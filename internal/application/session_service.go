package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/center-timetable/internal/occupancy"
	"github.com/example/center-timetable/internal/persistence"
	"github.com/example/center-timetable/internal/timegrid"
)

// SessionService manages calendar-dated class sessions and answers the
// schedule-query contract: all sessions whose date falls within a requested
// week window.
type SessionService struct {
	sessions    persistence.SessionRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewSessionService constructs a session service with the provided dependencies.
func NewSessionService(sessions persistence.SessionRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *SessionService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &SessionService{sessions: sessions, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *SessionService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "SessionService", operation, attrs...)
}

// CreateSession validates input and persists a new class session.
func (s *SessionService) CreateSession(ctx context.Context, input SessionInput) (session ClassSession, err error) {
	if s == nil || s.sessions == nil {
		return ClassSession{}, fmt.Errorf("session repository not configured")
	}

	logger := s.loggerWith(ctx, "CreateSession")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create session", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "session created", "session_id", session.ID)
	}()

	if vErr := validateSessionInput(input); vErr.HasErrors() {
		return ClassSession{}, vErr
	}

	session = ClassSession{
		ID:          s.idGenerator(),
		ClassName:   strings.TrimSpace(input.ClassName),
		TeacherName: strings.TrimSpace(input.TeacherName),
		Date:        input.Date,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		RoomID:      input.RoomID,
		RoomName:    strings.TrimSpace(input.RoomName),
	}

	if err = mapRepoError(s.sessions.CreateSession(ctx, toPersistenceSession(session))); err != nil {
		return ClassSession{}, err
	}

	stored, err := s.sessions.GetSession(ctx, session.ID)
	if err != nil {
		return ClassSession{}, mapRepoError(err)
	}
	return toApplicationSession(stored), nil
}

// UpdateSession validates input and updates an existing session.
func (s *SessionService) UpdateSession(ctx context.Context, sessionID string, input SessionInput) (ClassSession, error) {
	if s == nil || s.sessions == nil {
		return ClassSession{}, fmt.Errorf("session repository not configured")
	}

	if vErr := validateSessionInput(input); vErr.HasErrors() {
		return ClassSession{}, vErr
	}

	existing, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return ClassSession{}, mapRepoError(err)
	}

	updated := toApplicationSession(existing)
	updated.ClassName = strings.TrimSpace(input.ClassName)
	updated.TeacherName = strings.TrimSpace(input.TeacherName)
	updated.Date = input.Date
	updated.StartTime = input.StartTime
	updated.EndTime = input.EndTime
	updated.RoomID = input.RoomID
	updated.RoomName = strings.TrimSpace(input.RoomName)

	if err := mapRepoError(s.sessions.UpdateSession(ctx, toPersistenceSession(updated))); err != nil {
		return ClassSession{}, err
	}

	stored, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return ClassSession{}, mapRepoError(err)
	}
	return toApplicationSession(stored), nil
}

// GetSession retrieves a session by id.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (ClassSession, error) {
	if s == nil || s.sessions == nil {
		return ClassSession{}, fmt.Errorf("session repository not configured")
	}
	stored, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return ClassSession{}, mapRepoError(err)
	}
	return toApplicationSession(stored), nil
}

// DeleteSession removes a session by id.
func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if s == nil || s.sessions == nil {
		return fmt.Errorf("session repository not configured")
	}
	return mapRepoError(s.sessions.DeleteSession(ctx, sessionID))
}

// ListWeek returns the sessions of the week offsetWeeks away from the
// service clock, pre-scoped to the Monday-through-Sunday window the
// occupancy index expects.
func (s *SessionService) ListWeek(ctx context.Context, offsetWeeks int) ([]ClassSession, error) {
	if s == nil || s.sessions == nil {
		return nil, fmt.Errorf("session repository not configured")
	}

	start, end := occupancy.WeekWindow(s.now(), offsetWeeks)
	models, err := s.sessions.ListSessions(ctx, persistence.SessionFilter{
		DateFrom: &start,
		DateTo:   &end,
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	sessions := make([]ClassSession, 0, len(models))
	for _, model := range models {
		sessions = append(sessions, toApplicationSession(model))
	}
	return sessions, nil
}

// BuildWeekOccupancy loads one week of sessions and derives the occupancy
// index the grid UI queries. The rebuild is a full recomputation and safe to
// repeat on every week change.
func (s *SessionService) BuildWeekOccupancy(ctx context.Context, offsetWeeks int) (*occupancy.Index, []ClassSession, error) {
	sessions, err := s.ListWeek(ctx, offsetWeeks)
	if err != nil {
		return nil, nil, err
	}
	idx := occupancy.BuildIndex(toOccupancySessions(sessions), s.loggerWith(ctx, "BuildWeekOccupancy"))
	return idx, sessions, nil
}

func validateSessionInput(input SessionInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.ClassName) == "" {
		vErr.add("class_name", "class name is required")
	}
	if input.Date.IsZero() {
		vErr.add("date", "date is required")
	}
	start, startErr := timegrid.ParseClock(input.StartTime)
	if startErr != nil {
		vErr.add("start_time", "start time must be in HH:MM form")
	}
	end, endErr := timegrid.ParseClock(input.EndTime)
	if endErr != nil {
		vErr.add("end_time", "end time must be in HH:MM form")
	}
	if startErr == nil && endErr == nil && start >= end {
		vErr.add("time", "start time must be before end time")
	}
	return vErr
}

func toApplicationSession(model persistence.ClassSession) ClassSession {
	session := ClassSession{
		ID:          model.ID,
		ClassName:   model.ClassName,
		TeacherName: model.TeacherName,
		Date:        model.Date,
		StartTime:   model.StartTime,
		EndTime:     model.EndTime,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
	if model.RoomID != nil {
		session.RoomID = *model.RoomID
	}
	if model.RoomName != nil {
		session.RoomName = *model.RoomName
	}
	return session
}

func toPersistenceSession(session ClassSession) persistence.ClassSession {
	model := persistence.ClassSession{
		ID:          session.ID,
		ClassName:   session.ClassName,
		TeacherName: session.TeacherName,
		Date:        session.Date,
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
	if session.RoomID != "" {
		model.RoomID = &session.RoomID
	}
	if session.RoomName != "" {
		model.RoomName = &session.RoomName
	}
	return model
}

func toOccupancySessions(sessions []ClassSession) []occupancy.Session {
	out := make([]occupancy.Session, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, occupancy.Session{
			ID:          session.ID,
			ClassName:   session.ClassName,
			TeacherName: session.TeacherName,
			Date:        session.Date,
			StartTime:   session.StartTime,
			EndTime:     session.EndTime,
			RoomName:    session.RoomName,
		})
	}
	return out
}
