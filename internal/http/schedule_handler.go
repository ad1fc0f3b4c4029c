package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/example/center-timetable/internal/application"
	"github.com/example/center-timetable/internal/slotset"
	"github.com/example/center-timetable/internal/timegrid"
)

type timetableService interface {
	SaveWeeklySchedule(ctx context.Context, params application.SaveScheduleParams) (application.WeeklySchedule, error)
	GetWeeklySchedule(ctx context.Context, classID, academicYear string) (application.WeeklySchedule, error)
}

// ScheduleHandler serves the weekly schedule of a class: reading the stored
// slot set and submitting a replacement.
type ScheduleHandler struct {
	service   timetableService
	responder responder
}

// NewScheduleHandler constructs a schedule handler.
func NewScheduleHandler(service timetableService, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, responder: newResponder(logger)}
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	classID, ok := ClassIDFromContext(r.Context())
	if !ok || strings.TrimSpace(classID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidClassID)
		return
	}
	academicYear := strings.TrimSpace(r.URL.Query().Get("academic_year"))

	schedule, err := h.service.GetWeeklySchedule(r.Context(), classID, academicYear)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toScheduleDTO(schedule))
}

// Save replaces the weekly schedule of a class with the submitted slot set.
// The set is validated server side; conflicting or incomplete slots come
// back as a 422 with per-slot messages.
func (h *ScheduleHandler) Save(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	classID, ok := ClassIDFromContext(r.Context())
	if !ok || strings.TrimSpace(classID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidClassID)
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	schedule, err := h.service.SaveWeeklySchedule(r.Context(), req.toParams(classID))
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toScheduleDTO(schedule))
}

type scheduleRequest struct {
	TeacherID    string    `json:"teacher_id"`
	AcademicYear string    `json:"academic_year"`
	Slots        []slotDTO `json:"slots"`
}

func (r scheduleRequest) toParams(classID string) application.SaveScheduleParams {
	slots := make([]slotset.Slot, 0, len(r.Slots))
	for _, dto := range r.Slots {
		slots = append(slots, slotset.Slot{
			ID:        dto.ID,
			Day:       timegrid.Day(dto.Day),
			StartTime: dto.StartTime,
			EndTime:   dto.EndTime,
			Duration:  dto.Duration,
			RoomID:    dto.RoomID,
			RoomName:  dto.RoomName,
		})
	}
	return application.SaveScheduleParams{
		ClassID:      classID,
		TeacherID:    r.TeacherID,
		AcademicYear: r.AcademicYear,
		Slots:        slots,
	}
}

type slotDTO struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int    `json:"duration"`
	RoomID    string `json:"room_id,omitempty"`
	RoomName  string `json:"room_name,omitempty"`
}

type scheduleDTO struct {
	ID           string    `json:"id"`
	ClassID      string    `json:"class_id"`
	TeacherID    string    `json:"teacher_id"`
	AcademicYear string    `json:"academic_year"`
	Slots        []slotDTO `json:"slots"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toScheduleDTO(schedule application.WeeklySchedule) scheduleDTO {
	slots := make([]slotDTO, 0, len(schedule.Slots))
	for _, slot := range schedule.Slots {
		slots = append(slots, slotDTO{
			ID:        slot.ID,
			Day:       string(slot.Day),
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
			Duration:  slot.Duration,
			RoomID:    slot.RoomID,
			RoomName:  slot.RoomName,
		})
	}
	return scheduleDTO{
		ID:           schedule.ID,
		ClassID:      schedule.ClassID,
		TeacherID:    schedule.TeacherID,
		AcademicYear: schedule.AcademicYear,
		Slots:        slots,
		CreatedAt:    schedule.CreatedAt,
		UpdatedAt:    schedule.UpdatedAt,
	}
}
