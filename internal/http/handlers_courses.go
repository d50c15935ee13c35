package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/codekids/academy-api/internal/data"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/service"
)

// CourseHandlers serves the course catalog endpoints.
type CourseHandlers struct {
	courses *service.CourseService
	logger  *slog.Logger
}

// NewCourseHandlers constructs CourseHandlers.
func NewCourseHandlers(courses *service.CourseService, logger *slog.Logger) *CourseHandlers {
	return &CourseHandlers{courses: courses, logger: logger}
}

// List returns the catalog. Anonymous and non-staff callers see only
// enabled courses; staff sessions (picked up via optional auth) see all.
func (h *CourseHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.CoursesListOptions{}
	opts.Limit, opts.Offset = parsePagination(r)

	staff := false
	if session, ok := GetUserSessionFromContext(r.Context()); ok {
		staff = session.IsStaff()
	}

	courses, err := h.courses.List(r.Context(), opts, staff)
	if err != nil {
		h.logger.Error("list courses", slog.Any("error", err))
		writeInternalError(w)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

// Get returns one course by ID.
func (h *CourseHandlers) Get(w http.ResponseWriter, r *http.Request) {
	course, err := h.courses.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeCourseError(w, err)
		return
	}

	// Disabled courses are hidden from non-staff callers.
	if !course.Enabled {
		session, ok := GetUserSessionFromContext(r.Context())
		if !ok || !session.IsStaff() {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("course not found")})
			return
		}
	}

	WriteJSON(w, http.StatusOK, course)
}

// Create adds a course to the catalog. Admin only; routing enforces it.
func (h *CourseHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCourseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	course, err := h.courses.Create(r.Context(), &req)
	if err != nil {
		h.writeCourseError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, course)
}

// Update applies a partial update to a course. Admin only.
func (h *CourseHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateCourseRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	course, err := h.courses.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		h.writeCourseError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, course)
}

// Delete removes a course. Admin only.
func (h *CourseHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.courses.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("delete course", slog.Any("error", err))
		writeInternalError(w)
		return
	}
	if !deleted {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("course not found")})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CourseHandlers) writeCourseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, data.ErrCourseNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("course not found")})
	case errors.Is(err, data.ErrCourseNameExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "name_exists", Err: errors.New("a course with that name already exists")})
	default:
		h.logger.Error("course operation", slog.Any("error", err))
		writeInternalError(w)
	}
}

func writeInternalError(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("internal server error"),
	})
}

const (
	defaultPageLimit = 50
	maxPageLimit     = 200
)

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(r *http.Request) (limit, offset int) {
	limit = defaultPageLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = min(n, maxPageLimit)
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
