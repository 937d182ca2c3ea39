package company

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusBlocked  = "BLOCKED"
)

const (
	MemberRoleOwner    = "OWNER"
	MemberRoleReviewer = "REVIEWER"
)

var (
	ErrNotFound       = errors.New("company not found")
	ErrNameTaken      = errors.New("company name already taken")
	ErrMemberExists   = errors.New("user is already a member of this company")
	ErrMemberNotFound = errors.New("company member not found")
)

type Company struct {
	ID          uuid.UUID
	Name        string
	Location    string
	Description *string
	Website     *string
	LogoURL     *string
	Status      string
	OwnerID     uuid.UUID
	SizeID      *uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Member struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      string
	CreatedAt time.Time
}

type Image struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	URL       string
	CreatedAt time.Time
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusBlocked:
		return true
	}
	return false
}

func ValidMemberRole(r string) bool {
	return r == MemberRoleOwner || r == MemberRoleReviewer
}
