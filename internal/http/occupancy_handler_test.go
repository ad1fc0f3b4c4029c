package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/example/center-timetable/internal/application"
	"github.com/example/center-timetable/internal/occupancy"
)

func occupancyRouter(service occupancyService) http.Handler {
	return NewRouter(RouterConfig{Occupancy: NewOccupancyHandler(service, nil)})
}

func weekIndex(t *testing.T) *occupancy.Index {
	t.Helper()
	// 2025-03-10 is a Monday.
	return occupancy.BuildIndex([]occupancy.Session{
		{
			ID:        "session-1",
			ClassName: "Algebra II",
			Date:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "10:00",
			RoomName:  "Room A",
		},
		{
			ID:        "session-2",
			ClassName: "Piano",
			Date:      time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			StartTime: "09:00",
			EndTime:   "09:30",
			RoomName:  "Studio",
		},
	}, nil)
}

func TestOccupancyHandlerWeek(t *testing.T) {
	t.Run("lists occupied cells for the whole grid", func(t *testing.T) {
		service := &stubOccupancyService{
			buildFunc: func(_ context.Context, offsetWeeks int) (*occupancy.Index, []application.ClassSession, error) {
				if offsetWeeks != 0 {
					t.Fatalf("expected offset 0, got %d", offsetWeeks)
				}
				return weekIndex(t), nil, nil
			},
		}

		rec := doRequest(t, occupancyRouter(service), http.MethodGet, "/occupancy", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body occupancyResponse
		decodeBody(t, rec, &body)
		// Room A covers 09:00 and 09:30, Studio only 09:00.
		if len(body.Cells) != 3 {
			t.Fatalf("expected 3 occupied cells, got %d: %+v", len(body.Cells), body.Cells)
		}
		for _, cell := range body.Cells {
			if cell.Day != "monday" {
				t.Fatalf("expected all cells on monday, got %+v", cell)
			}
		}
	})

	t.Run("room filter narrows the grid", func(t *testing.T) {
		service := &stubOccupancyService{
			buildFunc: func(_ context.Context, _ int) (*occupancy.Index, []application.ClassSession, error) {
				return weekIndex(t), nil, nil
			},
		}

		rec := doRequest(t, occupancyRouter(service), http.MethodGet, "/occupancy?room=Studio", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body occupancyResponse
		decodeBody(t, rec, &body)
		if len(body.Cells) != 1 || body.Cells[0].RoomName != "Studio" {
			t.Fatalf("expected one Studio cell, got %+v", body.Cells)
		}
	})

	t.Run("forwards the requested week offset", func(t *testing.T) {
		service := &stubOccupancyService{
			buildFunc: func(_ context.Context, offsetWeeks int) (*occupancy.Index, []application.ClassSession, error) {
				if offsetWeeks != 3 {
					t.Fatalf("expected offset 3, got %d", offsetWeeks)
				}
				return occupancy.BuildIndex(nil, nil), nil, nil
			},
		}

		rec := doRequest(t, occupancyRouter(service), http.MethodGet, "/occupancy?week_offset=3", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var body occupancyResponse
		decodeBody(t, rec, &body)
		if body.WeekOffset != 3 || len(body.Cells) != 0 {
			t.Fatalf("unexpected body: %+v", body)
		}
	})

	t.Run("rejects non-GET methods", func(t *testing.T) {
		service := &stubOccupancyService{}

		rec := doRequest(t, occupancyRouter(service), http.MethodPost, "/occupancy", "")

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})
}
