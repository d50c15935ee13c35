package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	maxCourseNameLen = 255
	maxCourseAge     = 18
)

// Course is a catalog entry children can enroll in.
type Course struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	PriceCents  int       `json:"price_cents" db:"price_cents"`
	AgeMin      int       `json:"age_min"     db:"age_min"`
	AgeMax      int       `json:"age_max"     db:"age_max"`
	Enabled     bool      `json:"enabled"     db:"enabled"`
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// Free reports whether enrolling requires no payment.
func (c Course) Free() bool { return c.PriceCents == 0 }

// CreateCourseRequest represents parameters to create a Course.
type CreateCourseRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int    `json:"price_cents"`
	AgeMin      int    `json:"age_min"`
	AgeMax      int    `json:"age_max"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

// UpdateCourseRequest represents parameters to update a Course. Nil fields
// are left unchanged.
type UpdateCourseRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	PriceCents  *int    `json:"price_cents,omitempty"`
	AgeMin      *int    `json:"age_min,omitempty"`
	AgeMax      *int    `json:"age_max,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}

// Validate validates CreateCourseRequest.
func (r *CreateCourseRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxCourseNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	if r.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	if err := validateAgeRange(r.AgeMin, r.AgeMax); err != nil {
		return err
	}
	r.Name = name
	return nil
}

// Validate validates UpdateCourseRequest.
func (r *UpdateCourseRequest) Validate() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return errors.New("name cannot be empty")
		}
		if utf8.RuneCountInString(name) > maxCourseNameLen {
			return errors.New("name cannot exceed 255 characters")
		}
		*r.Name = name
	}
	if r.PriceCents != nil && *r.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	if r.AgeMin != nil && r.AgeMax != nil {
		return validateAgeRange(*r.AgeMin, *r.AgeMax)
	}
	if r.AgeMin != nil && (*r.AgeMin < 0 || *r.AgeMin > maxCourseAge) {
		return errors.New("age_min must be between 0 and 18")
	}
	if r.AgeMax != nil && (*r.AgeMax < 0 || *r.AgeMax > maxCourseAge) {
		return errors.New("age_max must be between 0 and 18")
	}
	return nil
}

func validateAgeRange(ageMin, ageMax int) error {
	if ageMin < 0 || ageMin > maxCourseAge {
		return errors.New("age_min must be between 0 and 18")
	}
	if ageMax < 0 || ageMax > maxCourseAge {
		return errors.New("age_max must be between 0 and 18")
	}
	if ageMin > ageMax {
		return errors.New("age_min cannot exceed age_max")
	}
	return nil
}

// CoursesListOptions controls filtering for listing courses.
type CoursesListOptions struct {
	Limit       int
	Offset      int
	EnabledOnly bool
}
