package model

import (
	"time"

	"github.com/codekids/academy-api/internal/domain/auth"
)

// User is the persisted account row for anyone who has logged in at least
// once. Subject is the stable identifier issued by the identity provider;
// ID is ours.
type User struct {
	ID        string    `json:"id"         db:"id"`
	Subject   string    `json:"subject"    db:"subject"`
	Email     string    `json:"email"      db:"email"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name"  db:"last_name"`
	Role      auth.Role `json:"role"       db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// UpsertUserRequest carries the identity snapshot recorded at login.
type UpsertUserRequest struct {
	Subject   string
	Email     string
	FirstName string
	LastName  string
	Role      auth.Role
}
