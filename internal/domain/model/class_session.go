package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxTopicLen            = 255
	maxSessionDurationMins = 8 * 60
	maxSessionCapacity     = 500
)

// ClassSession is a scheduled live lesson run by an instructor.
type ClassSession struct {
	ID              string    `json:"id"               db:"id"`
	CourseID        string    `json:"course_id"        db:"course_id"`
	InstructorID    string    `json:"instructor_id"    db:"instructor_id"`
	Topic           string    `json:"topic"            db:"topic"`
	StartsAt        time.Time `json:"starts_at"        db:"starts_at"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Capacity        int       `json:"capacity"         db:"capacity"`
	CreatedAt       time.Time `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"       db:"updated_at"`
}

// CreateClassSessionRequest represents parameters to schedule a session.
// InstructorID is taken from the session unless an admin supplies one.
type CreateClassSessionRequest struct {
	CourseID        string    `json:"course_id"`
	InstructorID    string    `json:"instructor_id,omitempty"`
	Topic           string    `json:"topic"`
	StartsAt        time.Time `json:"starts_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Capacity        int       `json:"capacity"`
}

// UpdateClassSessionRequest represents parameters to reschedule or edit a
// session. Nil fields are left unchanged.
type UpdateClassSessionRequest struct {
	Topic           *string    `json:"topic,omitempty"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	Capacity        *int       `json:"capacity,omitempty"`
}

// Validate validates CreateClassSessionRequest.
func (r *CreateClassSessionRequest) Validate() error {
	if strings.TrimSpace(r.CourseID) == "" {
		return errors.New("course_id is required")
	}
	topic := strings.TrimSpace(r.Topic)
	if topic == "" {
		return errors.New("topic is required and cannot be empty")
	}
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return errors.New("topic cannot exceed 255 characters")
	}
	if r.StartsAt.IsZero() {
		return errors.New("starts_at is required")
	}
	if err := validateSessionWindow(r.DurationMinutes, r.Capacity); err != nil {
		return err
	}
	r.Topic = topic
	return nil
}

// Validate validates UpdateClassSessionRequest.
func (r *UpdateClassSessionRequest) Validate() error {
	if r.Topic != nil {
		topic := strings.TrimSpace(*r.Topic)
		if topic == "" {
			return errors.New("topic cannot be empty")
		}
		if utf8.RuneCountInString(topic) > maxTopicLen {
			return errors.New("topic cannot exceed 255 characters")
		}
		*r.Topic = topic
	}
	if r.StartsAt != nil && r.StartsAt.IsZero() {
		return errors.New("starts_at cannot be zero")
	}
	if r.DurationMinutes != nil && (*r.DurationMinutes <= 0 || *r.DurationMinutes > maxSessionDurationMins) {
		return errors.New("duration_minutes must be between 1 and 480")
	}
	if r.Capacity != nil && (*r.Capacity <= 0 || *r.Capacity > maxSessionCapacity) {
		return errors.New("capacity must be between 1 and 500")
	}
	return nil
}

func validateSessionWindow(durationMinutes, capacity int) error {
	if durationMinutes <= 0 || durationMinutes > maxSessionDurationMins {
		return errors.New("duration_minutes must be between 1 and 480")
	}
	if capacity <= 0 || capacity > maxSessionCapacity {
		return errors.New("capacity must be between 1 and 500")
	}
	return nil
}

// ClassSessionsListOptions controls filtering for listing sessions.
type ClassSessionsListOptions struct {
	Limit        int
	Offset       int
	CourseID     *string
	InstructorID *string
	// After keeps only sessions starting at or after this instant.
	After *time.Time
}
