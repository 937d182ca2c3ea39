package repository

import (
	"context"

	"jobboard/internal/database"
	"jobboard/internal/domain/savedjob"

	"github.com/google/uuid"
)

// SavedJobRow joins the bookmark with the job listing it points at.
type SavedJobRow struct {
	savedjob.SavedJob
	Job JobRow
}

type SavedJobRepository interface {
	Create(ctx context.Context, s savedjob.SavedJob) error
	Delete(ctx context.Context, userID, jobID uuid.UUID) error
	Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, userID uuid.UUID, p Pagination) ([]SavedJobRow, int, error)
}

type PostgresSavedJobRepository struct {
	db database.DB
}

func NewPostgresSavedJobRepository(db database.DB) *PostgresSavedJobRepository {
	return &PostgresSavedJobRepository{db: db}
}

func (r *PostgresSavedJobRepository) Create(ctx context.Context, s savedjob.SavedJob) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_jobs (id, user_id, job_id, saved_at) VALUES ($1, $2, $3, $4)`,
		s.ID, s.UserID, s.JobID, s.SavedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return savedjob.ErrAlreadySaved
		}
		return err
	}
	return nil
}

func (r *PostgresSavedJobRepository) Delete(ctx context.Context, userID, jobID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM saved_jobs WHERE user_id = $1 AND job_id = $2`, userID, jobID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return savedjob.ErrNotFound
	}
	return nil
}

func (r *PostgresSavedJobRepository) Exists(ctx context.Context, userID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM saved_jobs WHERE user_id = $1 AND job_id = $2)`,
		userID, jobID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresSavedJobRepository) ListByUser(ctx context.Context, userID uuid.UUID, p Pagination) ([]SavedJobRow, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM saved_jobs WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT s.id, s.user_id, s.job_id, s.saved_at,
			j.id, j.company_id, j.category_id, j.position_id, j.salary_id,
			j.experience_level_id, j.title, j.description, j.requirements, j.benefits,
			j.job_type, j.amount, j.posted_at, j.expires_at, j.status,
			c.name, c.location
		 FROM saved_jobs s
		 JOIN jobs j ON j.id = s.job_id
		 JOIN companies c ON c.id = j.company_id
		 WHERE s.user_id = $1
		 ORDER BY s.saved_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]SavedJobRow, 0)
	for rows.Next() {
		var s SavedJobRow
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.JobID, &s.SavedAt,
			&s.Job.ID, &s.Job.CompanyID, &s.Job.CategoryID, &s.Job.PositionID, &s.Job.SalaryID,
			&s.Job.ExperienceLevelID, &s.Job.Title, &s.Job.Description, &s.Job.Requirements, &s.Job.Benefits,
			&s.Job.JobType, &s.Job.Amount, &s.Job.PostedAt, &s.Job.ExpiresAt, &s.Job.Status,
			&s.Job.CompanyName, &s.Job.CompanyLocation,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
