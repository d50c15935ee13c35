package service

import (
	"context"
	"errors"
	"time"

	"github.com/codekids/academy-api/internal/core"
	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/model"
)

// ClassSessionServiceOptions groups dependencies for ClassSessionService.
type ClassSessionServiceOptions struct {
	SessionRepo core.ClassSessionRepository
	CourseRepo  core.CourseRepository
}

// ClassSessionService orchestrates scheduling of live lessons. Instructors
// manage their own sessions; admins manage any.
type ClassSessionService struct {
	sessions core.ClassSessionRepository
	courses  core.CourseRepository
}

// NewClassSessionService constructs a new ClassSessionService.
func NewClassSessionService(opts ClassSessionServiceOptions) *ClassSessionService {
	return &ClassSessionService{sessions: opts.SessionRepo, courses: opts.CourseRepo}
}

// Create schedules a session. Instructors always schedule themselves; an
// admin may schedule on behalf of another instructor by setting
// InstructorID.
func (s *ClassSessionService) Create(
	ctx context.Context,
	sess *domainauth.Session,
	req *model.CreateClassSessionRequest,
) (*model.ClassSession, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if req == nil {
		return nil, errors.New("create class session request is required")
	}

	if sess.Role != domainauth.RoleAdmin || req.InstructorID == "" {
		req.InstructorID = sess.UserID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The course must exist; a dangling course ID would otherwise surface
	// as an opaque FK violation.
	if _, err := s.courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	return s.sessions.Create(ctx, req)
}

// GetByID retrieves a class session by ID.
func (s *ClassSessionService) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	return s.sessions.GetByID(ctx, id)
}

// ListUpcoming returns sessions starting at or after now, soonest first.
func (s *ClassSessionService) ListUpcoming(
	ctx context.Context,
	opts model.ClassSessionsListOptions,
) ([]*model.ClassSession, error) {
	if opts.After == nil {
		now := time.Now().UTC()
		opts.After = &now
	}
	return s.sessions.List(ctx, opts)
}

// Update edits a session. Instructors may only touch their own; admins any.
func (s *ClassSessionService) Update(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
	req model.UpdateClassSessionRequest,
) (*model.ClassSession, error) {
	if err := s.authorizeMutation(ctx, sess, id); err != nil {
		return nil, err
	}
	return s.sessions.Update(ctx, id, req)
}

// Delete removes a session under the same ownership rules as Update.
func (s *ClassSessionService) Delete(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
) (bool, error) {
	if err := s.authorizeMutation(ctx, sess, id); err != nil {
		return false, err
	}
	return s.sessions.Delete(ctx, id)
}

func (s *ClassSessionService) authorizeMutation(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
) error {
	if sess == nil {
		return errors.New("session is required")
	}
	existing, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sess.Role != domainauth.RoleAdmin && existing.InstructorID != sess.UserID {
		return ErrNotOwner
	}
	return nil
}
