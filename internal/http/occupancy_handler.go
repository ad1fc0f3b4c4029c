package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/center-timetable/internal/application"
	"github.com/example/center-timetable/internal/occupancy"
	"github.com/example/center-timetable/internal/timegrid"
)

type occupancyService interface {
	BuildWeekOccupancy(ctx context.Context, offsetWeeks int) (*occupancy.Index, []application.ClassSession, error)
}

// OccupancyHandler reports which grid cells of a displayed week are taken,
// optionally restricted to one room.
type OccupancyHandler struct {
	service   occupancyService
	responder responder
}

// NewOccupancyHandler constructs an occupancy handler.
func NewOccupancyHandler(service occupancyService, logger *slog.Logger) *OccupancyHandler {
	return &OccupancyHandler{service: service, responder: newResponder(logger)}
}

// Week renders the occupied cells of the requested week as a flat list the
// grid UI can key by (day, time_slot, room).
func (h *OccupancyHandler) Week(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	offset, err := weekOffsetParam(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}
	roomFilter := strings.TrimSpace(r.URL.Query().Get("room"))

	idx, _, err := h.service.BuildWeekOccupancy(r.Context(), offset)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	rooms := idx.RoomNames()
	if roomFilter != "" {
		rooms = []string{roomFilter}
	}

	cells := make([]occupiedCellDTO, 0, idx.Len())
	for _, day := range timegrid.Days() {
		for _, slot := range timegrid.TimeSlots() {
			for _, room := range rooms {
				if session, ok := idx.Lookup(day, slot, room); ok {
					cells = append(cells, toOccupiedCellDTO(day, slot, session))
				}
			}
		}
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, occupancyResponse{
		WeekOffset: offset,
		Cells:      cells,
	})
}

type occupiedCellDTO struct {
	Day         string `json:"day"`
	TimeSlot    string `json:"time_slot"`
	RoomName    string `json:"room_name"`
	SessionID   string `json:"session_id"`
	ClassName   string `json:"class_name"`
	TeacherName string `json:"teacher_name"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
}

func toOccupiedCellDTO(day timegrid.Day, slot string, session occupancy.Session) occupiedCellDTO {
	return occupiedCellDTO{
		Day:         string(day),
		TimeSlot:    slot,
		RoomName:    session.RoomName,
		SessionID:   session.ID,
		ClassName:   session.ClassName,
		TeacherName: session.TeacherName,
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
	}
}

type occupancyResponse struct {
	WeekOffset int               `json:"week_offset"`
	Cells      []occupiedCellDTO `json:"cells"`
}
