package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin     = "ADMIN"
	RoleRecruiter = "RECRUITER"
	RoleCandidate = "CANDIDATE"
)

const (
	StatusActive  = "ACTIVE"
	StatusBlocked = "BLOCKED"
)

var (
	ErrNotFound   = errors.New("user not found")
	ErrEmailTaken = errors.New("email already registered")
)

type User struct {
	ID           uuid.UUID
	Fullname     string
	Email        string
	PasswordHash string
	Role         string
	Gender       string
	Status       string
	AvatarURL    *string
	ResumeURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRecruiter, RoleCandidate:
		return true
	}
	return false
}

// Sanitized strips the password hash before the entity crosses the HTTP
// boundary.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// ToggledStatus flips ACTIVE to BLOCKED and anything else back to ACTIVE.
func (u User) ToggledStatus() string {
	if u.Status == StatusActive {
		return StatusBlocked
	}
	return StatusActive
}
