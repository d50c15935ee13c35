package service

import "errors"

// Service-level sentinel errors shared across services.
var (
	// ErrNotOwner is returned when a caller tries to act on a resource
	// another user owns. Handlers map it to 403.
	ErrNotOwner = errors.New("resource belongs to another user")

	// ErrCourseDisabled is returned when enrolling in a disabled course.
	ErrCourseDisabled = errors.New("course is not open for enrollment")

	// ErrPaymentDeclined wraps provider failures so handlers can map them
	// to a client error instead of a 500.
	ErrPaymentDeclined = errors.New("payment was declined")
)
