package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/codekids/academy-api/internal/data"
	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/mocks"
	"github.com/codekids/academy-api/internal/ports"
	"github.com/codekids/academy-api/internal/service"
)

type approvingPayments struct{ declined error }

func (p *approvingPayments) Charge(_ context.Context, in ports.ChargeInput) (ports.Charge, error) {
	if p.declined != nil {
		return ports.Charge{}, p.declined
	}
	return ports.Charge{Reference: "ref-test", AmountCents: in.AmountCents}, nil
}

func newTestEnrollmentHandlers(t *testing.T) (*mocks.MockEnrollmentRepository, *mocks.MockCourseRepository, *approvingPayments, *EnrollmentHandlers) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	enrollRepo := mocks.NewMockEnrollmentRepository(ctrl)
	courseRepo := mocks.NewMockCourseRepository(ctrl)
	payments := &approvingPayments{}
	svc := service.NewEnrollmentService(service.EnrollmentServiceOptions{
		EnrollmentRepo: enrollRepo,
		CourseRepo:     courseRepo,
		Payments:       payments,
	})
	return enrollRepo, courseRepo, payments, NewEnrollmentHandlers(svc, slog.New(slog.DiscardHandler))
}

func sessionRequest(method, target, body string, session *domainauth.Session) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return req.WithContext(SetSessionInContext(req.Context(), session))
}

func parentSessionCtx(userID string) *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-parent",
		UserID:    userID,
		Role:      domainauth.RoleParent,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestEnrollmentHandlers_Create_FreeCourse(t *testing.T) {
	t.Parallel()
	enrollRepo, courseRepo, _, h := newTestEnrollmentHandlers(t)

	courseRepo.EXPECT().GetByID(gomock.Any(), "c1").
		Return(&model.Course{ID: "c1", Name: "Scratch", Enabled: true}, nil)
	enrollRepo.EXPECT().
		Create(gomock.Any(), "parent-1", gomock.Cond(func(req *model.CreateEnrollmentRequest) bool {
			return req.CourseID == "c1" && req.StudentName == "Sam Jones"
		})).
		Return(&model.Enrollment{ID: "e1", CourseID: "c1", ParentID: "parent-1", Status: model.EnrollmentActive}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, sessionRequest(http.MethodPost, "/api/enrollments",
		`{"course_id":"c1","student_name":"Sam Jones"}`, parentSessionCtx("parent-1")))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"e1"`)
}

func TestEnrollmentHandlers_Create_ValidationFailure(t *testing.T) {
	t.Parallel()
	_, _, _, h := newTestEnrollmentHandlers(t)

	rec := httptest.NewRecorder()
	h.Create(rec, sessionRequest(http.MethodPost, "/api/enrollments",
		`{"course_id":"c1","student_name":""}`, parentSessionCtx("parent-1")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "validation_failed")
}

func TestEnrollmentHandlers_Create_PaymentDeclined(t *testing.T) {
	t.Parallel()
	_, courseRepo, payments, h := newTestEnrollmentHandlers(t)

	payments.declined = assert.AnError
	courseRepo.EXPECT().GetByID(gomock.Any(), "c1").
		Return(&model.Course{ID: "c1", Name: "Robotics", PriceCents: 9900, Enabled: true}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, sessionRequest(http.MethodPost, "/api/enrollments",
		`{"course_id":"c1","student_name":"Sam Jones"}`, parentSessionCtx("parent-1")))

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "payment_declined")
}

func TestEnrollmentHandlers_Create_CourseDisabled(t *testing.T) {
	t.Parallel()
	_, courseRepo, _, h := newTestEnrollmentHandlers(t)

	courseRepo.EXPECT().GetByID(gomock.Any(), "c1").
		Return(&model.Course{ID: "c1", Enabled: false}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, sessionRequest(http.MethodPost, "/api/enrollments",
		`{"course_id":"c1","student_name":"Sam Jones"}`, parentSessionCtx("parent-1")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "course_disabled")
}

func TestEnrollmentHandlers_Create_AlreadyEnrolled(t *testing.T) {
	t.Parallel()
	enrollRepo, courseRepo, _, h := newTestEnrollmentHandlers(t)

	courseRepo.EXPECT().GetByID(gomock.Any(), "c1").
		Return(&model.Course{ID: "c1", Enabled: true}, nil)
	enrollRepo.EXPECT().Create(gomock.Any(), "parent-1", gomock.Any()).
		Return(nil, data.ErrEnrollmentExists)

	rec := httptest.NewRecorder()
	h.Create(rec, sessionRequest(http.MethodPost, "/api/enrollments",
		`{"course_id":"c1","student_name":"Sam Jones"}`, parentSessionCtx("parent-1")))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "already_enrolled")
}

func TestEnrollmentHandlers_List_ParentScopedToOwnRows(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, h := newTestEnrollmentHandlers(t)

	enrollRepo.EXPECT().
		List(gomock.Any(), gomock.Cond(func(opts model.EnrollmentsListOptions) bool {
			return opts.ParentID != nil && *opts.ParentID == "parent-1"
		})).
		Return([]*model.Enrollment{{ID: "e1", ParentID: "parent-1"}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, sessionRequest(http.MethodGet, "/api/enrollments", "", parentSessionCtx("parent-1")))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enrollments"`)
}

func TestEnrollmentHandlers_List_InvalidStatus(t *testing.T) {
	t.Parallel()
	_, _, _, h := newTestEnrollmentHandlers(t)

	rec := httptest.NewRecorder()
	h.List(rec, sessionRequest(http.MethodGet, "/api/enrollments?status=paused", "", parentSessionCtx("parent-1")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_status")
}

func TestEnrollmentHandlers_Get_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, h := newTestEnrollmentHandlers(t)

	enrollRepo.EXPECT().GetByID(gomock.Any(), "e1").
		Return(&model.Enrollment{ID: "e1", ParentID: "someone-else"}, nil)

	req := sessionRequest(http.MethodGet, "/api/enrollments/e1", "", parentSessionCtx("parent-1"))
	req.SetPathValue("id", "e1")
	rec := httptest.NewRecorder()
	h.Get(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient_permissions")
}

func TestEnrollmentHandlers_Cancel(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, h := newTestEnrollmentHandlers(t)

	enrollRepo.EXPECT().GetByID(gomock.Any(), "e1").
		Return(&model.Enrollment{ID: "e1", ParentID: "parent-1", Status: model.EnrollmentActive}, nil)
	enrollRepo.EXPECT().Cancel(gomock.Any(), "e1").
		Return(&model.Enrollment{ID: "e1", ParentID: "parent-1", Status: model.EnrollmentCancelled}, nil)

	req := sessionRequest(http.MethodPost, "/api/enrollments/e1/cancel", "", parentSessionCtx("parent-1"))
	req.SetPathValue("id", "e1")
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"cancelled"`)
}

func TestEnrollmentHandlers_Cancel_NotFound(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, h := newTestEnrollmentHandlers(t)

	enrollRepo.EXPECT().GetByID(gomock.Any(), "missing").
		Return(nil, data.ErrEnrollmentNotFound)

	req := sessionRequest(http.MethodPost, "/api/enrollments/missing/cancel", "", parentSessionCtx("parent-1"))
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	h.Cancel(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
