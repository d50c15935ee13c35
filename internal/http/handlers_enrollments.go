package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/codekids/academy-api/internal/data"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/service"
)

// EnrollmentHandlers serves the enrollment endpoints.
type EnrollmentHandlers struct {
	enrollments *service.EnrollmentService
	logger      *slog.Logger
}

// NewEnrollmentHandlers constructs EnrollmentHandlers.
func NewEnrollmentHandlers(enrollments *service.EnrollmentService, logger *slog.Logger) *EnrollmentHandlers {
	return &EnrollmentHandlers{enrollments: enrollments, logger: logger}
}

// Create enrolls a student into a course for the acting parent.
func (h *EnrollmentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	var req model.CreateEnrollmentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		return
	}

	enr, err := h.enrollments.Enroll(r.Context(), session, &req)
	if err != nil {
		h.writeEnrollmentError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, enr)
}

// List returns enrollments visible to the caller. Filters: course_id, status.
func (h *EnrollmentHandlers) List(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	opts := model.EnrollmentsListOptions{}
	opts.Limit, opts.Offset = parsePagination(r)
	query := r.URL.Query()
	if courseID := query.Get("course_id"); courseID != "" {
		opts.CourseID = &courseID
	}
	if raw := query.Get("status"); raw != "" {
		status := model.EnrollmentStatus(raw)
		if !status.Valid() {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_status", Err: errors.New("status must be active or cancelled")})
			return
		}
		opts.Status = &status
	}

	enrollments, err := h.enrollments.List(r.Context(), session, opts)
	if err != nil {
		h.writeEnrollmentError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"enrollments": enrollments})
}

// Get returns one enrollment, subject to ownership.
func (h *EnrollmentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	enr, err := h.enrollments.GetByID(r.Context(), session, r.PathValue("id"))
	if err != nil {
		h.writeEnrollmentError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, enr)
}

// Cancel marks an enrollment cancelled.
func (h *EnrollmentHandlers) Cancel(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())

	enr, err := h.enrollments.Cancel(r.Context(), session, r.PathValue("id"))
	if err != nil {
		h.writeEnrollmentError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, enr)
}

func (h *EnrollmentHandlers) writeEnrollmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, data.ErrEnrollmentNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("enrollment not found")})
	case errors.Is(err, data.ErrCourseNotFound):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "course_not_found", Err: errors.New("course not found")})
	case errors.Is(err, data.ErrEnrollmentExists):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "already_enrolled", Err: errors.New("this student is already enrolled in the course")})
	case errors.Is(err, service.ErrCourseDisabled):
		WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "course_disabled", Err: errors.New("course is not open for enrollment")})
	case errors.Is(err, service.ErrPaymentDeclined):
		WriteError(w, ErrorParams{Code: http.StatusPaymentRequired, ErrCode: "payment_declined", Err: errors.New("payment was declined")})
	case errors.Is(err, service.ErrNotOwner):
		WriteError(w, ErrorParams{Code: http.StatusForbidden, ErrCode: "insufficient_permissions", Err: errors.New("insufficient permissions")})
	default:
		h.logger.Error("enrollment operation", slog.Any("error", err))
		writeInternalError(w)
	}
}
