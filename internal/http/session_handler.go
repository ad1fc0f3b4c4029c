package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/center-timetable/internal/application"
)

type sessionService interface {
	CreateSession(ctx context.Context, input application.SessionInput) (application.ClassSession, error)
	UpdateSession(ctx context.Context, sessionID string, input application.SessionInput) (application.ClassSession, error)
	GetSession(ctx context.Context, sessionID string) (application.ClassSession, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ListWeek(ctx context.Context, offsetWeeks int) ([]application.ClassSession, error)
}

// SessionHandler serves the class session endpoints, including the weekly
// listing the timetable grid is built from.
type SessionHandler struct {
	service   sessionService
	responder responder
}

// NewSessionHandler constructs a session handler.
func NewSessionHandler(service sessionService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{service: service, responder: newResponder(logger)}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	session, err := h.service.CreateSession(r.Context(), input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusCreated, toSessionDTO(session))
}

func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	session, err := h.service.GetSession(r.Context(), sessionID)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(session))
}

func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	input, err := req.toInput()
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	session, err := h.service.UpdateSession(r.Context(), sessionID, input)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, toSessionDTO(session))
}

func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	sessionID, ok := SessionIDFromContext(r.Context())
	if !ok || strings.TrimSpace(sessionID) == "" {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidSessionID)
		return
	}

	if err := h.service.DeleteSession(r.Context(), sessionID); err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusNoContent, nil)
}

// List returns the sessions of one displayed week, selected with the
// week_offset query parameter (0 = current week).
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	offset, err := weekOffsetParam(r)
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, err)
		return
	}

	sessions, err := h.service.ListWeek(r.Context(), offset)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	dtos := make([]sessionDTO, 0, len(sessions))
	for _, session := range sessions {
		dtos = append(dtos, toSessionDTO(session))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listSessionsResponse{Sessions: dtos})
}

func weekOffsetParam(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("week_offset"))
	if raw == "" {
		return 0, nil
	}
	offset, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errInvalidWeekOffset
	}
	return offset, nil
}

// sessionDateLayout is the wire format for session dates.
const sessionDateLayout = "2006-01-02"

type sessionRequest struct {
	ClassName   string `json:"class_name"`
	TeacherName string `json:"teacher_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	RoomID      string `json:"room_id"`
	RoomName    string `json:"room_name"`
}

func (r sessionRequest) toInput() (application.SessionInput, error) {
	input := application.SessionInput{
		ClassName:   r.ClassName,
		TeacherName: r.TeacherName,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		RoomID:      r.RoomID,
		RoomName:    r.RoomName,
	}
	if strings.TrimSpace(r.Date) != "" {
		date, err := time.Parse(sessionDateLayout, r.Date)
		if err != nil {
			return application.SessionInput{}, errBadRequestBody
		}
		input.Date = date
	}
	return input, nil
}

type sessionDTO struct {
	ID          string `json:"id"`
	ClassName   string `json:"class_name"`
	TeacherName string `json:"teacher_name"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	RoomID      string `json:"room_id,omitempty"`
	RoomName    string `json:"room_name,omitempty"`
}

func toSessionDTO(session application.ClassSession) sessionDTO {
	return sessionDTO{
		ID:          session.ID,
		ClassName:   session.ClassName,
		TeacherName: session.TeacherName,
		Date:        session.Date.Format(sessionDateLayout),
		StartTime:   session.StartTime,
		EndTime:     session.EndTime,
		RoomID:      session.RoomID,
		RoomName:    session.RoomName,
	}
}

type listSessionsResponse struct {
	Sessions []sessionDTO `json:"sessions"`
}
