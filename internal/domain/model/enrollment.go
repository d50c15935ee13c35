package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxStudentNameLen = 255

// EnrollmentStatus tracks an enrollment's lifecycle.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentCancelled EnrollmentStatus = "cancelled"
)

// Valid reports whether the status is supported.
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentCancelled:
		return true
	default:
		return false
	}
}

// Enrollment records one student's place in a course, created by a parent.
type Enrollment struct {
	ID          string           `json:"id"           db:"id"`
	CourseID    string           `json:"course_id"    db:"course_id"`
	ParentID    string           `json:"parent_id"    db:"parent_id"`
	StudentName string           `json:"student_name" db:"student_name"`
	Status      EnrollmentStatus `json:"status"       db:"status"`
	CreatedAt   time.Time        `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"   db:"updated_at"`
}

// CreateEnrollmentRequest represents parameters to enroll a student.
// ParentID is taken from the session, never from the request body.
type CreateEnrollmentRequest struct {
	CourseID    string `json:"course_id"`
	StudentName string `json:"student_name"`
}

// Validate validates CreateEnrollmentRequest.
func (r *CreateEnrollmentRequest) Validate() error {
	if strings.TrimSpace(r.CourseID) == "" {
		return errors.New("course_id is required")
	}
	name := strings.TrimSpace(r.StudentName)
	if name == "" {
		return errors.New("student_name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxStudentNameLen {
		return errors.New("student_name cannot exceed 255 characters")
	}
	r.StudentName = name
	return nil
}

// EnrollmentsListOptions controls filtering for listing enrollments.
// A nil ParentID means no owner filter (staff view).
type EnrollmentsListOptions struct {
	Limit    int
	Offset   int
	ParentID *string
	CourseID *string
	Status   *EnrollmentStatus
}
