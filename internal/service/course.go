package service

import (
	"context"

	"github.com/codekids/academy-api/internal/core"
	"github.com/codekids/academy-api/internal/domain/model"
)

// CourseServiceOptions groups dependencies for CourseService.
type CourseServiceOptions struct {
	CourseRepo core.CourseRepository
}

// CourseService orchestrates course catalog CRUD.
type CourseService struct {
	courses core.CourseRepository
}

// NewCourseService constructs a new CourseService.
func NewCourseService(opts CourseServiceOptions) *CourseService {
	return &CourseService{courses: opts.CourseRepo}
}

// Create creates a course.
func (s *CourseService) Create(ctx context.Context, req *model.CreateCourseRequest) (*model.Course, error) {
	return s.courses.Create(ctx, req)
}

// GetByID retrieves a course by ID.
func (s *CourseService) GetByID(ctx context.Context, id string) (*model.Course, error) {
	return s.courses.GetByID(ctx, id)
}

// List returns a page of courses. Staff callers see disabled courses too;
// everyone else gets the public catalog.
func (s *CourseService) List(ctx context.Context, opts model.CoursesListOptions, staff bool) ([]*model.Course, error) {
	if !staff {
		opts.EnabledOnly = true
	}
	return s.courses.List(ctx, opts)
}

// Update updates a course.
func (s *CourseService) Update(ctx context.Context, id string, req model.UpdateCourseRequest) (*model.Course, error) {
	return s.courses.Update(ctx, id, req)
}

// Delete deletes a course.
func (s *CourseService) Delete(ctx context.Context, id string) (bool, error) {
	return s.courses.Delete(ctx, id)
}
