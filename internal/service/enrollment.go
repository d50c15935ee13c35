package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/codekids/academy-api/internal/core"
	domainauth "github.com/codekids/academy-api/internal/domain/auth"
	"github.com/codekids/academy-api/internal/domain/model"
	"github.com/codekids/academy-api/internal/ports"
)

// EnrollmentServiceOptions groups dependencies for EnrollmentService.
type EnrollmentServiceOptions struct {
	EnrollmentRepo core.EnrollmentRepository
	CourseRepo     core.CourseRepository
	Payments       ports.PaymentProvider
}

// EnrollmentService orchestrates enrolling students into courses, including
// payment for paid courses and ownership rules on reads and cancels.
type EnrollmentService struct {
	enrollments core.EnrollmentRepository
	courses     core.CourseRepository
	payments    ports.PaymentProvider
}

// NewEnrollmentService constructs a new EnrollmentService.
func NewEnrollmentService(opts EnrollmentServiceOptions) *EnrollmentService {
	return &EnrollmentService{
		enrollments: opts.EnrollmentRepo,
		courses:     opts.CourseRepo,
		payments:    opts.Payments,
	}
}

// Enroll creates an active enrollment for the acting parent. Paid courses
// are charged before the row is written; a declined charge aborts the
// enrollment entirely.
func (s *EnrollmentService) Enroll(
	ctx context.Context,
	sess *domainauth.Session,
	req *model.CreateEnrollmentRequest,
) (*model.Enrollment, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if req == nil {
		return nil, errors.New("create enrollment request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.Enabled {
		return nil, ErrCourseDisabled
	}

	if !course.Free() {
		if _, chargeErr := s.payments.Charge(ctx, ports.ChargeInput{
			ParentID:    sess.UserID,
			CourseID:    course.ID,
			AmountCents: course.PriceCents,
			Description: fmt.Sprintf("enrollment: %s (%s)", course.Name, req.StudentName),
		}); chargeErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrPaymentDeclined, chargeErr)
		}
	}

	return s.enrollments.Create(ctx, sess.UserID, req)
}

// List returns enrollments visible to the caller: staff see everything,
// parents only their own rows.
func (s *EnrollmentService) List(
	ctx context.Context,
	sess *domainauth.Session,
	opts model.EnrollmentsListOptions,
) ([]*model.Enrollment, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	if !sess.IsStaff() {
		parentID := sess.UserID
		opts.ParentID = &parentID
	}
	return s.enrollments.List(ctx, opts)
}

// GetByID returns one enrollment, enforcing ownership for non-staff.
func (s *EnrollmentService) GetByID(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
) (*model.Enrollment, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	enr, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.IsStaff() && enr.ParentID != sess.UserID {
		return nil, ErrNotOwner
	}
	return enr, nil
}

// Cancel marks an enrollment cancelled. Only the owning parent or an admin
// may cancel; support staff can read but not mutate. The lookup and
// ownership check run before the mutation so a denied caller never changes
// state.
func (s *EnrollmentService) Cancel(
	ctx context.Context,
	sess *domainauth.Session,
	id string,
) (*model.Enrollment, error) {
	if sess == nil {
		return nil, errors.New("session is required")
	}
	enr, err := s.enrollments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Role != domainauth.RoleAdmin && enr.ParentID != sess.UserID {
		return nil, ErrNotOwner
	}
	return s.enrollments.Cancel(ctx, id)
}
