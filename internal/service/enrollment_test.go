package service

import (
	"context"
	"errors"
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
)

const (
	testCourseID     = "course-123"
	testParentID     = "parent-123"
	testEnrollmentID = "enrollment-123"
)

type recordingPayments struct {
	charges []ports.ChargeInput
	err     error
}

func (p *recordingPayments) Charge(_ context.Context, in ports.ChargeInput) (ports.Charge, error) {
	if p.err != nil {
		return ports.Charge{}, p.err
	}
	p.charges = append(p.charges, in)
	return ports.Charge{Reference: "ref-1", AmountCents: in.AmountCents}, nil
}

func newEnrollmentService(t *testing.T) (*mocks.MockEnrollmentRepository, *mocks.MockCourseRepository, *recordingPayments, *EnrollmentService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	enrollRepo := mocks.NewMockEnrollmentRepository(ctrl)
	courseRepo := mocks.NewMockCourseRepository(ctrl)
	payments := &recordingPayments{}

	svc := NewEnrollmentService(EnrollmentServiceOptions{
		EnrollmentRepo: enrollRepo,
		CourseRepo:     courseRepo,
		Payments:       payments,
	})
	return enrollRepo, courseRepo, payments, svc
}

func parentSession() *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-1",
		UserID:    testParentID,
		Email:     "parent@example.com",
		Role:      domainauth.RoleParent,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func testCourse(priceCents int, enabled bool) *model.Course {
	return &model.Course{
		ID:         testCourseID,
		Name:       "Python Basics",
		PriceCents: priceCents,
		AgeMin:     8,
		AgeMax:     12,
		Enabled:    enabled,
	}
}

func TestEnrollmentService_Enroll_FreeCourse(t *testing.T) {
	t.Parallel()
	enrollRepo, courseRepo, payments, svc := newEnrollmentService(t)

	ctx := context.Background()
	req := &model.CreateEnrollmentRequest{CourseID: testCourseID, StudentName: "Ada"}

	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(testCourse(0, true), nil)
	enrollRepo.EXPECT().
		Create(ctx, testParentID, req).
		Return(&model.Enrollment{ID: testEnrollmentID, ParentID: testParentID}, nil)

	enr, err := svc.Enroll(ctx, parentSession(), req)
	require.NoError(t, err)
	assert.Equal(t, testEnrollmentID, enr.ID)
	assert.Empty(t, payments.charges, "free courses are never charged")
}

func TestEnrollmentService_Enroll_PaidCourseCharges(t *testing.T) {
	t.Parallel()
	enrollRepo, courseRepo, payments, svc := newEnrollmentService(t)

	ctx := context.Background()
	req := &model.CreateEnrollmentRequest{CourseID: testCourseID, StudentName: "Ada"}

	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(testCourse(4900, true), nil)
	enrollRepo.EXPECT().
		Create(ctx, testParentID, req).
		Return(&model.Enrollment{ID: testEnrollmentID}, nil)

	_, err := svc.Enroll(ctx, parentSession(), req)
	require.NoError(t, err)
	require.Len(t, payments.charges, 1)
	assert.Equal(t, 4900, payments.charges[0].AmountCents)
	assert.Equal(t, testParentID, payments.charges[0].ParentID)
}

func TestEnrollmentService_Enroll_PaymentDeclinedAborts(t *testing.T) {
	t.Parallel()
	_, courseRepo, payments, svc := newEnrollmentService(t)
	payments.err = errors.New("card declined")

	ctx := context.Background()
	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(testCourse(4900, true), nil)

	_, err := svc.Enroll(ctx, parentSession(), &model.CreateEnrollmentRequest{
		CourseID: testCourseID, StudentName: "Ada",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentDeclined)
	// No Create expectation was set: the mock controller fails the test if
	// the enrollment row is written anyway.
}

func TestEnrollmentService_Enroll_DisabledCourse(t *testing.T) {
	t.Parallel()
	_, courseRepo, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(testCourse(0, false), nil)

	_, err := svc.Enroll(ctx, parentSession(), &model.CreateEnrollmentRequest{
		CourseID: testCourseID, StudentName: "Ada",
	})
	assert.ErrorIs(t, err, ErrCourseDisabled)
}

func TestEnrollmentService_Enroll_UnknownCourse(t *testing.T) {
	t.Parallel()
	_, courseRepo, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(nil, data.ErrCourseNotFound)

	_, err := svc.Enroll(ctx, parentSession(), &model.CreateEnrollmentRequest{
		CourseID: testCourseID, StudentName: "Ada",
	})
	assert.ErrorIs(t, err, data.ErrCourseNotFound)
}

func TestEnrollmentService_List_ParentScopedToOwnRows(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	enrollRepo.EXPECT().
		List(ctx, gomock.Cond(func(opts model.EnrollmentsListOptions) bool {
			return opts.ParentID != nil && *opts.ParentID == testParentID
		})).
		Return([]*model.Enrollment{}, nil)

	_, err := svc.List(ctx, parentSession(), model.EnrollmentsListOptions{})
	require.NoError(t, err)
}

func TestEnrollmentService_List_StaffSeesAll(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, svc := newEnrollmentService(t)

	sess := parentSession()
	sess.Role = domainauth.RoleSupport

	ctx := context.Background()
	enrollRepo.EXPECT().
		List(ctx, gomock.Cond(func(opts model.EnrollmentsListOptions) bool {
			return opts.ParentID == nil
		})).
		Return([]*model.Enrollment{}, nil)

	_, err := svc.List(ctx, sess, model.EnrollmentsListOptions{})
	require.NoError(t, err)
}

func TestEnrollmentService_Cancel_Owner(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	existing := &model.Enrollment{ID: testEnrollmentID, ParentID: testParentID, Status: model.EnrollmentActive}
	enrollRepo.EXPECT().GetByID(ctx, testEnrollmentID).Return(existing, nil)
	enrollRepo.EXPECT().Cancel(ctx, testEnrollmentID).
		Return(&model.Enrollment{ID: testEnrollmentID, Status: model.EnrollmentCancelled}, nil)

	enr, err := svc.Cancel(ctx, parentSession(), testEnrollmentID)
	require.NoError(t, err)
	assert.Equal(t, model.EnrollmentCancelled, enr.Status)
}

func TestEnrollmentService_Cancel_OtherParentDenied(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	existing := &model.Enrollment{ID: testEnrollmentID, ParentID: "someone-else"}
	enrollRepo.EXPECT().GetByID(ctx, testEnrollmentID).Return(existing, nil)

	_, err := svc.Cancel(ctx, parentSession(), testEnrollmentID)
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestEnrollmentService_Cancel_SupportDenied_AdminAllowed(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	existing := &model.Enrollment{ID: testEnrollmentID, ParentID: "someone-else"}

	support := parentSession()
	support.Role = domainauth.RoleSupport
	enrollRepo.EXPECT().GetByID(ctx, testEnrollmentID).Return(existing, nil)
	_, err := svc.Cancel(ctx, support, testEnrollmentID)
	assert.ErrorIs(t, err, ErrNotOwner)

	admin := parentSession()
	admin.Role = domainauth.RoleAdmin
	enrollRepo.EXPECT().GetByID(ctx, testEnrollmentID).Return(existing, nil)
	enrollRepo.EXPECT().Cancel(ctx, testEnrollmentID).
		Return(&model.Enrollment{ID: testEnrollmentID, Status: model.EnrollmentCancelled}, nil)
	_, err = svc.Cancel(ctx, admin, testEnrollmentID)
	assert.NoError(t, err)
}

func TestEnrollmentService_GetByID_OwnershipForNonStaff(t *testing.T) {
	t.Parallel()
	enrollRepo, _, _, svc := newEnrollmentService(t)

	ctx := context.Background()
	existing := &model.Enrollment{ID: testEnrollmentID, ParentID: "someone-else"}
	enrollRepo.EXPECT().GetByID(ctx, testEnrollmentID).Return(existing, nil).Times(2)

	_, err := svc.GetByID(ctx, parentSession(), testEnrollmentID)
	assert.ErrorIs(t, err, ErrNotOwner)

	staff := parentSession()
	staff.Role = domainauth.RoleSupport
	got, err := svc.GetByID(ctx, staff, testEnrollmentID)
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}
