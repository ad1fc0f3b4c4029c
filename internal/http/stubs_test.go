package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/example/center-timetable/internal/application"
	"github.com/example/center-timetable/internal/occupancy"
)

type stubRoomService struct {
	createFunc func(ctx context.Context, input application.RoomInput) (application.Room, error)
	updateFunc func(ctx context.Context, roomID string, input application.RoomInput) (application.Room, error)
	getFunc    func(ctx context.Context, roomID string) (application.Room, error)
	listFunc   func(ctx context.Context) ([]application.Room, error)
	deleteFunc func(ctx context.Context, roomID string) error
}

func (s *stubRoomService) CreateRoom(ctx context.Context, input application.RoomInput) (application.Room, error) {
	return s.createFunc(ctx, input)
}

func (s *stubRoomService) UpdateRoom(ctx context.Context, roomID string, input application.RoomInput) (application.Room, error) {
	return s.updateFunc(ctx, roomID, input)
}

func (s *stubRoomService) GetRoom(ctx context.Context, roomID string) (application.Room, error) {
	return s.getFunc(ctx, roomID)
}

func (s *stubRoomService) ListRooms(ctx context.Context) ([]application.Room, error) {
	return s.listFunc(ctx)
}

func (s *stubRoomService) DeleteRoom(ctx context.Context, roomID string) error {
	return s.deleteFunc(ctx, roomID)
}

type stubSessionService struct {
	createFunc   func(ctx context.Context, input application.SessionInput) (application.ClassSession, error)
	updateFunc   func(ctx context.Context, sessionID string, input application.SessionInput) (application.ClassSession, error)
	getFunc      func(ctx context.Context, sessionID string) (application.ClassSession, error)
	deleteFunc   func(ctx context.Context, sessionID string) error
	listWeekFunc func(ctx context.Context, offsetWeeks int) ([]application.ClassSession, error)
}

func (s *stubSessionService) CreateSession(ctx context.Context, input application.SessionInput) (application.ClassSession, error) {
	return s.createFunc(ctx, input)
}

func (s *stubSessionService) UpdateSession(ctx context.Context, sessionID string, input application.SessionInput) (application.ClassSession, error) {
	return s.updateFunc(ctx, sessionID, input)
}

func (s *stubSessionService) GetSession(ctx context.Context, sessionID string) (application.ClassSession, error) {
	return s.getFunc(ctx, sessionID)
}

func (s *stubSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return s.deleteFunc(ctx, sessionID)
}

func (s *stubSessionService) ListWeek(ctx context.Context, offsetWeeks int) ([]application.ClassSession, error) {
	return s.listWeekFunc(ctx, offsetWeeks)
}

type stubOccupancyService struct {
	buildFunc func(ctx context.Context, offsetWeeks int) (*occupancy.Index, []application.ClassSession, error)
}

func (s *stubOccupancyService) BuildWeekOccupancy(ctx context.Context, offsetWeeks int) (*occupancy.Index, []application.ClassSession, error) {
	return s.buildFunc(ctx, offsetWeeks)
}

type stubTimetableService struct {
	saveFunc func(ctx context.Context, params application.SaveScheduleParams) (application.WeeklySchedule, error)
	getFunc  func(ctx context.Context, classID, academicYear string) (application.WeeklySchedule, error)
}

func (s *stubTimetableService) SaveWeeklySchedule(ctx context.Context, params application.SaveScheduleParams) (application.WeeklySchedule, error) {
	return s.saveFunc(ctx, params)
}

func (s *stubTimetableService) GetWeeklySchedule(ctx context.Context, classID, academicYear string) (application.WeeklySchedule, error) {
	return s.getFunc(ctx, classID, academicYear)
}

func doRequest(t *testing.T, handler http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(into); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}
