package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// isUniqueViolation reports whether err is a postgres unique-index violation.
// Repositories translate these into domain conflict errors so the pre-check
// races described in the schema stay closed at the store.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

// isForeignKeyViolation reports whether err is a broken reference, such as
// an unknown skill id in a relation insert.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolationCode
	}
	return false
}

// Pagination carries 1-based page plus page size into LIMIT/OFFSET queries.
type Pagination struct {
	Page int
	Size int
}

const DefaultPageSize = 8

func (p Pagination) Normalized() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	return p
}

func (p Pagination) Limit() int {
	return p.Normalized().Size
}

func (p Pagination) Offset() int {
	n := p.Normalized()
	return (n.Page - 1) * n.Size
}
