package core

import (
	"context"

	"github.com/codekids/academy-api/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for user account data operations.
type UserRepository interface {
	Upsert(ctx context.Context, req *model.UpsertUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetBySubject(ctx context.Context, subject string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, limit, offset int) ([]*model.User, error)
}

// CourseRepository defines the interface for course catalog data operations.
type CourseRepository interface {
	Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error)
	GetByID(ctx context.Context, id string) (*model.Course, error)
	List(ctx context.Context, opts model.CoursesListOptions) ([]*model.Course, error)
	Update(ctx context.Context, id string, req model.UpdateCourseRequest) (*model.Course, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// EnrollmentRepository defines the interface for enrollment data operations.
type EnrollmentRepository interface {
	Create(ctx context.Context, parentID string, req *model.CreateEnrollmentRequest) (*model.Enrollment, error)
	GetByID(ctx context.Context, id string) (*model.Enrollment, error)
	List(ctx context.Context, opts model.EnrollmentsListOptions) ([]*model.Enrollment, error)
	Cancel(ctx context.Context, id string) (*model.Enrollment, error)
}

// ClassSessionRepository defines the interface for class session data operations.
type ClassSessionRepository interface {
	Create(ctx context.Context, req *model.CreateClassSessionRequest) (*model.ClassSession, error)
	GetByID(ctx context.Context, id string) (*model.ClassSession, error)
	List(ctx context.Context, opts model.ClassSessionsListOptions) ([]*model.ClassSession, error)
	Update(ctx context.Context, id string, req model.UpdateClassSessionRequest) (*model.ClassSession, error)
	Delete(ctx context.Context, id string) (bool, error)
}
