package job

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// PostingWindow is how long a job stays open after posting.
const PostingWindow = 30 * 24 * time.Hour

var ErrNotFound = errors.New("job not found")

type Job struct {
	ID                uuid.UUID
	CompanyID         uuid.UUID
	CategoryID        uuid.UUID
	PositionID        uuid.UUID
	SalaryID          uuid.UUID
	ExperienceLevelID uuid.UUID
	Title             string
	Description       string
	Requirements      string
	Benefits          string
	JobType           string
	Amount            int
	PostedAt          time.Time
	ExpiresAt         time.Time
	Status            string
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ExpiryFor derives the fixed posting deadline from the posting instant.
func ExpiryFor(postedAt time.Time) time.Time {
	return postedAt.Add(PostingWindow)
}
