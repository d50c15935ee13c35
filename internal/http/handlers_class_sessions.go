package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/codekids/academy-api/internal/data"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/service"
)

// ClassSessionHandlers serves the live-lesson scheduling endpoints.
type ClassSessionHandlers struct {
	sessions *service.ClassSessionService
	logger   *slog.Logger
}

// NewClassSessionHandlers constructs ClassSessionHandlers.
func NewClassSessionHandlers(sessions *service.ClassSessionService, logger *slog.Logger) *ClassSessionHandlers {
	return &ClassSessionHandlers{sessions: sessions, logger: logger}
}

// Create schedules a session. Instructors schedule themselves; admins may
// set instructor_id to schedule on someone's behalf.
func (h *ClassSessionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	var req model.CreateClassSessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	created, err := h.sessions.Create(r.Context(), session, &req)
	if err != nil {
		h.writeClassSessionError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// List returns upcoming sessions, soonest first. Filters: course_id,
// instructor_id, after (RFC 3339).
func (h *ClassSessionHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.ClassSessionsListOptions{}
	opts.Limit, opts.Offset = parsePagination(r)
	query := r.URL.Query()
	if courseID := query.Get("course_id"); courseID != "" {
		opts.CourseID = &courseID
	}
	if instructorID := query.Get("instructor_id"); instructorID != "" {
		opts.InstructorID = &instructorID
	}
	if raw := query.Get("after"); raw != "" {
		after, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_after", Err: errors.New("after must be an RFC 3339 timestamp")})
			return
		}
		opts.After = &after
	}

	sessions, err := h.sessions.ListUpcoming(r.Context(), opts)
	if err != nil {
		h.writeClassSessionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"class_sessions": sessions})
}

// Get returns one session by ID.
func (h *ClassSessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.sessions.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeClassSessionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, found)
}

// Update edits a session under instructor-or-admin ownership rules.
func (h *ClassSessionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	var req model.UpdateClassSessionRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	updated, err := h.sessions.Update(r.Context(), session, r.PathValue("id"), req)
	if err != nil {
		h.writeClassSessionError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, updated)
}

// Delete removes a session under the same ownership rules as Update.
func (h *ClassSessionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	deleted, err := h.sessions.Delete(r.Context(), session, r.PathValue("id"))
	if err != nil {
		h.writeClassSessionError(w, err)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("class session not found")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ClassSessionHandlers) writeClassSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, data.ErrClassSessionNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("class session not found")})
	case errors.Is(err, data.ErrCourseNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "course_not_found", Err: errors.New("course not found")})
	case errors.Is(err, service.ErrNotOwner):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "insufficient_permissions", Err: errors.New("insufficient permissions")})
	default:
		h.logger.Error("class session operation", slog.Any("error", err))
		writeInternalError(w)
	}
}
