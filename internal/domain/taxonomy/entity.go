// Package taxonomy holds the small lookup entities jobs are classified by.
package taxonomy

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("entry not found")
	ErrNameTaken = errors.New("name already exists")
)

// Entry is a named lookup row (category, skill, position, experience level).
// Names are unique case-insensitively.
type Entry struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Salary struct {
	ID        uuid.UUID
	Min       int64
	Max       int64
	CreatedAt time.Time
}

type CompanySize struct {
	ID           uuid.UUID
	MinEmployees int
	MaxEmployees int
	CreatedAt    time.Time
}
