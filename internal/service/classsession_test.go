package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/codekids/academy-api/internal/data"
	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/mocks"
)

const (
	testClassSessionID = "class-session-123"
	testInstructorID   = "instructor-123"
)

func newClassSessionService(t *testing.T) (*mocks.MockClassSessionRepository, *mocks.MockCourseRepository, *ClassSessionService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	sessionRepo := mocks.NewMockClassSessionRepository(ctrl)
	courseRepo := mocks.NewMockCourseRepository(ctrl)

	svc := NewClassSessionService(ClassSessionServiceOptions{
		SessionRepo: sessionRepo,
		CourseRepo:  courseRepo,
	})
	return sessionRepo, courseRepo, svc
}

func instructorSession() *domainauth.Session {
	return &domainauth.Session{
		ID:        "sess-2",
		UserID:    testInstructorID,
		Email:     "instructor@example.com",
		Role:      domainauth.RoleInstructor,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func createSessionRequest() *model.CreateClassSessionRequest {
	return &model.CreateClassSessionRequest{
		CourseID:        testCourseID,
		Topic:           "Loops and turtles",
		StartsAt:        time.Now().Add(24 * time.Hour),
		DurationMinutes: 60,
		Capacity:        12,
	}
}

func TestClassSessionService_Create_InstructorSchedulesSelf(t *testing.T) {
	t.Parallel()
	sessionRepo, courseRepo, svc := newClassSessionService(t)

	ctx := context.Background()
	req := createSessionRequest()
	// Instructors cannot schedule on behalf of someone else.
	req.InstructorID = "other-instructor"

	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(testCourse(0, true), nil)
	sessionRepo.EXPECT().
		Create(ctx, gomock.Cond(func(r *model.CreateClassSessionRequest) bool {
			return r.InstructorID == testInstructorID
		})).
		Return(&model.ClassSession{ID: testClassSessionID, InstructorID: testInstructorID}, nil)

	cs, err := svc.Create(ctx, instructorSession(), req)
	require.NoError(t, err)
	assert.Equal(t, testInstructorID, cs.InstructorID)
}

func TestClassSessionService_Create_AdminSchedulesOther(t *testing.T) {
	t.Parallel()
	sessionRepo, courseRepo, svc := newClassSessionService(t)

	admin := instructorSession()
	admin.Role = domainauth.RoleAdmin
	admin.UserID = "admin-1"

	ctx := context.Background()
	req := createSessionRequest()
	req.InstructorID = testInstructorID

	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(testCourse(0, true), nil)
	sessionRepo.EXPECT().
		Create(ctx, gomock.Cond(func(r *model.CreateClassSessionRequest) bool {
			return r.InstructorID == testInstructorID
		})).
		Return(&model.ClassSession{ID: testClassSessionID, InstructorID: testInstructorID}, nil)

	_, err := svc.Create(ctx, admin, req)
	require.NoError(t, err)
}

func TestClassSessionService_Create_UnknownCourse(t *testing.T) {
	t.Parallel()
	_, courseRepo, svc := newClassSessionService(t)

	ctx := context.Background()
	courseRepo.EXPECT().GetByID(ctx, testCourseID).Return(nil, data.ErrCourseNotFound)

	_, err := svc.Create(ctx, instructorSession(), createSessionRequest())
	assert.ErrorIs(t, err, data.ErrCourseNotFound)
}

func TestClassSessionService_Update_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	sessionRepo, _, svc := newClassSessionService(t)

	ctx := context.Background()
	existing := &model.ClassSession{ID: testClassSessionID, InstructorID: "someone-else"}
	sessionRepo.EXPECT().GetByID(ctx, testClassSessionID).Return(existing, nil)

	topic := "New topic"
	_, err := svc.Update(ctx, instructorSession(), testClassSessionID, model.UpdateClassSessionRequest{Topic: &topic})
	assert.ErrorIs(t, err, ErrNotOwner)
}

func TestClassSessionService_Update_OwnerAndAdmin(t *testing.T) {
	t.Parallel()
	sessionRepo, _, svc := newClassSessionService(t)

	ctx := context.Background()
	existing := &model.ClassSession{ID: testClassSessionID, InstructorID: testInstructorID}
	topic := "New topic"
	req := model.UpdateClassSessionRequest{Topic: &topic}

	sessionRepo.EXPECT().GetByID(ctx, testClassSessionID).Return(existing, nil)
	sessionRepo.EXPECT().Update(ctx, testClassSessionID, req).Return(existing, nil)
	_, err := svc.Update(ctx, instructorSession(), testClassSessionID, req)
	require.NoError(t, err)

	admin := instructorSession()
	admin.Role = domainauth.RoleAdmin
	admin.UserID = "admin-1"
	sessionRepo.EXPECT().GetByID(ctx, testClassSessionID).Return(existing, nil)
	sessionRepo.EXPECT().Update(ctx, testClassSessionID, req).Return(existing, nil)
	_, err = svc.Update(ctx, admin, testClassSessionID, req)
	require.NoError(t, err)
}

func TestClassSessionService_Delete_OwnershipEnforced(t *testing.T) {
	t.Parallel()
	sessionRepo, _, svc := newClassSessionService(t)

	ctx := context.Background()
	existing := &model.ClassSession{ID: testClassSessionID, InstructorID: "someone-else"}
	sessionRepo.EXPECT().GetByID(ctx, testClassSessionID).Return(existing, nil)

	ok, err := svc.Delete(ctx, instructorSession(), testClassSessionID)
	assert.ErrorIs(t, err, ErrNotOwner)
	assert.False(t, ok)
}

func TestClassSessionService_ListUpcoming_DefaultsAfterToNow(t *testing.T) {
	t.Parallel()
	sessionRepo, _, svc := newClassSessionService(t)

	ctx := context.Background()
	before := time.Now().UTC()
	sessionRepo.EXPECT().
		List(ctx, gomock.Cond(func(opts model.ClassSessionsListOptions) bool {
			return opts.After != nil && !opts.After.Before(before)
		})).
		Return([]*model.ClassSession{}, nil)

	_, err := svc.ListUpcoming(ctx, model.ClassSessionsListOptions{})
	require.NoError(t, err)
}
