package application

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusViewed   = "VIEWED"
	StatusAccepted = "ACCEPTED"
	StatusRejected = "REJECTED"
)

var (
	ErrNotFound       = errors.New("application not found")
	ErrAlreadyApplied = errors.New("You have already applied to this job!")
)

type Application struct {
	ID          uuid.UUID
	JobID       uuid.UUID
	UserID      uuid.UUID
	CoverLetter *string
	ResumeURL   string
	Fullname    string
	Email       string
	Status      string
	AppliedAt   time.Time
}

// ValidStatus reports membership in the four-element status set. Any member
// may be set directly by an authorized reviewer; there is no transition graph.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusViewed, StatusAccepted, StatusRejected:
		return true
	}
	return false
}
