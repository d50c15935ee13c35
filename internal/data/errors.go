package data

import "errors"

// Shared sentinel errors for data-layer repositories. Services and handlers
// match on these to pick response codes.
var (
	ErrUserNotFound = errors.New("user not found")

	ErrCourseNotFound   = errors.New("course not found")
	ErrCourseNameExists = errors.New("course name already exists")

	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrEnrollmentExists   = errors.New("student is already enrolled in this course")

	ErrClassSessionNotFound = errors.New("class session not found")
)
