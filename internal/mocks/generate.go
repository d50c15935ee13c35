// Package mocks provides mock implementations for testing the academy services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockCourseRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "id").Return(course, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/codekids/academy-api/internal/core UserRepository

// Generate mock for CourseRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=course_repository_mock.go github.com/codekids/academy-api/internal/core CourseRepository

// Generate mock for EnrollmentRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=enrollment_repository_mock.go github.com/codekids/academy-api/internal/core EnrollmentRepository

// Generate mock for ClassSessionRepository interface from internal/core package.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=class_session_repository_mock.go github.com/codekids/academy-api/internal/core ClassSessionRepository
