package repository

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationFilter struct {
	JobID  *uuid.UUID
	Status string
	Search string
	Pagination
}

// ApplicationRow joins the application with its job title, used by listings
// and by the status-change notification.
type ApplicationRow struct {
	application.Application
	JobTitle  string
	CompanyID uuid.UUID
}

// DailyStatusCount buckets one calendar day of a company's applications.
// Pending folds in VIEWED per the dashboard's definition of "still open".
type DailyStatusCount struct {
	Day      time.Time
	Pending  int
	Approved int
	Rejected int
}

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (ApplicationRow, error)
	Exists(ctx context.Context, jobID, userID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ListByUser(ctx context.Context, userID uuid.UUID, p Pagination) ([]ApplicationRow, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, f ApplicationFilter) ([]ApplicationRow, int, error)
	WeeklyStats(ctx context.Context, companyID uuid.UUID) ([]DailyStatusCount, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationSelect = `SELECT a.id, a.job_id, a.user_id, a.cover_letter, a.resume_url,
	a.fullname, a.email, a.status, a.applied_at, j.title, j.company_id
	FROM applications a JOIN jobs j ON j.id = a.job_id`

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO applications (id, job_id, user_id, cover_letter, resume_url, fullname, email, status, applied_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.JobID, a.UserID, a.CoverLetter, a.ResumeURL, a.Fullname, a.Email, a.Status, a.AppliedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return application.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (ApplicationRow, error) {
	row := r.db.QueryRow(ctx, applicationSelect+` WHERE a.id = $1`, id)
	return scanApplicationRow(row)
}

func (r *PostgresApplicationRepository) Exists(ctx context.Context, jobID, userID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`,
		jobID, userID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE applications SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return application.ErrNotFound
	}
	return nil
}

func (r *PostgresApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID, p Pagination) ([]ApplicationRow, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		applicationSelect+` WHERE a.user_id = $1 ORDER BY a.applied_at DESC LIMIT $2 OFFSET $3`,
		userID, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectApplicationRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresApplicationRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, f ApplicationFilter) ([]ApplicationRow, int, error) {
	where := ` WHERE j.company_id = $1
		AND ($2::uuid IS NULL OR a.job_id = $2)
		AND ($3 = '' OR a.status = $3)
		AND ($4 = '' OR a.fullname ILIKE '%' || $4 || '%' OR a.email ILIKE '%' || $4 || '%')`

	args := []any{companyID, f.JobID, f.Status, f.Search}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications a JOIN jobs j ON j.id = a.job_id`+where,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		applicationSelect+where+` ORDER BY a.applied_at DESC LIMIT $5 OFFSET $6`,
		append(args, f.Limit(), f.Offset())...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectApplicationRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresApplicationRepository) WeeklyStats(ctx context.Context, companyID uuid.UUID) ([]DailyStatusCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT date_trunc('day', a.applied_at) AS day,
			COUNT(*) FILTER (WHERE a.status IN ($2, $3)) AS pending,
			COUNT(*) FILTER (WHERE a.status = $4) AS approved,
			COUNT(*) FILTER (WHERE a.status = $5) AS rejected
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE j.company_id = $1 AND a.applied_at >= now() - interval '7 days'
		 GROUP BY day
		 ORDER BY day ASC`,
		companyID,
		application.StatusPending, application.StatusViewed,
		application.StatusAccepted, application.StatusRejected,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DailyStatusCount, 0)
	for rows.Next() {
		var d DailyStatusCount
		if err := rows.Scan(&d.Day, &d.Pending, &d.Approved, &d.Rejected); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanApplicationRow(row scannable) (ApplicationRow, error) {
	var a ApplicationRow
	err := row.Scan(
		&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL,
		&a.Fullname, &a.Email, &a.Status, &a.AppliedAt, &a.JobTitle, &a.CompanyID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ApplicationRow{}, application.ErrNotFound
		}
		return ApplicationRow{}, err
	}
	return a, nil
}

func collectApplicationRows(rows database.Rows) ([]ApplicationRow, error) {
	out := make([]ApplicationRow, 0)
	for rows.Next() {
		var a ApplicationRow
		if err := rows.Scan(
			&a.ID, &a.JobID, &a.UserID, &a.CoverLetter, &a.ResumeURL,
			&a.Fullname, &a.Email, &a.Status, &a.AppliedAt, &a.JobTitle, &a.CompanyID,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
