package savedjob

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("saved job not found")
	ErrAlreadySaved = errors.New("job already saved")
)

type SavedJob struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	JobID   uuid.UUID
	SavedAt time.Time
}
