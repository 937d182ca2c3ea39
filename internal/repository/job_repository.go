package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type JobListFilter struct {
	Status            string
	Search            string
	JobType           string
	CategoryID        *uuid.UUID
	ExperienceLevelID *uuid.UUID
	SalaryID          *uuid.UUID
	Location          string
	Pagination
}

type JobUpdate struct {
	Title             *string
	Description       *string
	Requirements      *string
	Benefits          *string
	JobType           *string
	Amount            *int
	CategoryID        *uuid.UUID
	PositionID        *uuid.UUID
	SalaryID          *uuid.UUID
	ExperienceLevelID *uuid.UUID
}

// JobRow is a listing row joined with the owning company.
type JobRow struct {
	job.Job
	CompanyName     string
	CompanyLocation string
}

type JobRepository interface {
	Create(ctx context.Context, j job.Job, skillIDs []uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (JobRow, error)
	Update(ctx context.Context, id uuid.UUID, upd JobUpdate) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, f JobListFilter) ([]JobRow, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, all bool, p Pagination) ([]JobRow, int, error)
	Latest(ctx context.Context, limit int) ([]JobRow, error)
	Featured(ctx context.Context, limit int) ([]JobRow, error)
	SkillIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobSelect = `SELECT j.id, j.company_id, j.category_id, j.position_id, j.salary_id,
	j.experience_level_id, j.title, j.description, j.requirements, j.benefits,
	j.job_type, j.amount, j.posted_at, j.expires_at, j.status,
	c.name, c.location
	FROM jobs j JOIN companies c ON c.id = j.company_id`

func (r *PostgresJobRepository) Create(ctx context.Context, j job.Job, skillIDs []uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (id, company_id, category_id, position_id, salary_id, experience_level_id,
				title, description, requirements, benefits, job_type, amount, posted_at, expires_at, status)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
			j.ID, j.CompanyID, j.CategoryID, j.PositionID, j.SalaryID, j.ExperienceLevelID,
			j.Title, j.Description, j.Requirements, j.Benefits, j.JobType, j.Amount,
			j.PostedAt, j.ExpiresAt, j.Status,
		)
		if err != nil {
			return err
		}
		for _, sid := range skillIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO job_skills (job_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				j.ID, sid,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *PostgresJobRepository) GetByID(ctx context.Context, id uuid.UUID) (JobRow, error) {
	row := r.db.QueryRow(ctx, jobSelect+` WHERE j.id = $1`, id)
	return scanJobRow(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, id uuid.UUID, upd JobUpdate) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET
			title               = COALESCE($2, title),
			description         = COALESCE($3, description),
			requirements        = COALESCE($4, requirements),
			benefits            = COALESCE($5, benefits),
			job_type            = COALESCE($6, job_type),
			amount              = COALESCE($7, amount),
			category_id         = COALESCE($8, category_id),
			position_id         = COALESCE($9, position_id),
			salary_id           = COALESCE($10, salary_id),
			experience_level_id = COALESCE($11, experience_level_id)
		 WHERE id = $1`,
		id, upd.Title, upd.Description, upd.Requirements, upd.Benefits, upd.JobType,
		upd.Amount, upd.CategoryID, upd.PositionID, upd.SalaryID, upd.ExperienceLevelID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE jobs SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrNotFound
	}
	return nil
}

// DeleteCascade removes children before the job row, all in one transaction:
// job_skills, applications, saved_jobs, then the job.
func (r *PostgresJobRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		for _, q := range []string{
			`DELETE FROM job_skills WHERE job_id = $1`,
			`DELETE FROM applications WHERE job_id = $1`,
			`DELETE FROM saved_jobs WHERE job_id = $1`,
		} {
			if _, err := tx.Exec(ctx, q, id); err != nil {
				return err
			}
		}
		affected, err := tx.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return job.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresJobRepository) List(ctx context.Context, f JobListFilter) ([]JobRow, int, error) {
	// The location filter matches the company location rendered as ", <loc>".
	where := ` WHERE ($1 = '' OR j.status = $1)
		AND ($2 = '' OR j.title ILIKE '%' || $2 || '%')
		AND ($3 = '' OR j.job_type = $3)
		AND ($4::uuid IS NULL OR j.category_id = $4)
		AND ($5::uuid IS NULL OR j.experience_level_id = $5)
		AND ($6::uuid IS NULL OR j.salary_id = $6)
		AND ($7 = '' OR (', ' || c.location) ILIKE '%' || $7 || '%')`

	args := []any{f.Status, f.Search, f.JobType, f.CategoryID, f.ExperienceLevelID, f.SalaryID, f.Location}

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs j JOIN companies c ON c.id = j.company_id`+where,
		args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		jobSelect+where+` ORDER BY j.posted_at DESC LIMIT $8 OFFSET $9`,
		append(args, f.Limit(), f.Offset())...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectJobRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresJobRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, all bool, p Pagination) ([]JobRow, int, error) {
	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM jobs WHERE company_id = $1`, companyID,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := jobSelect + ` WHERE j.company_id = $1 ORDER BY j.posted_at DESC`
	args := []any{companyID}
	if !all {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, p.Limit(), p.Offset())
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out, err := collectJobRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresJobRepository) Latest(ctx context.Context, limit int) ([]JobRow, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	rows, err := r.db.Query(ctx,
		jobSelect+` WHERE j.status = $1 AND j.expires_at > now()
		 ORDER BY j.posted_at DESC LIMIT $2`,
		job.StatusApproved, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobRows(rows)
}

// Featured ranks open approved jobs by salary ceiling, then by how many
// applications they attracted, then by recency.
func (r *PostgresJobRepository) Featured(ctx context.Context, limit int) ([]JobRow, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	rows, err := r.db.Query(ctx,
		`SELECT j.id, j.company_id, j.category_id, j.position_id, j.salary_id,
			j.experience_level_id, j.title, j.description, j.requirements, j.benefits,
			j.job_type, j.amount, j.posted_at, j.expires_at, j.status,
			c.name, c.location
		 FROM jobs j
		 JOIN companies c ON c.id = j.company_id
		 JOIN salaries s ON s.id = j.salary_id
		 LEFT JOIN (
			SELECT job_id, COUNT(*) AS n FROM applications GROUP BY job_id
		 ) a ON a.job_id = j.id
		 WHERE j.status = $1 AND j.expires_at > now()
		 ORDER BY s.max DESC, COALESCE(a.n, 0) DESC, j.posted_at DESC
		 LIMIT $2`,
		job.StatusApproved, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectJobRows(rows)
}

func (r *PostgresJobRepository) SkillIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT skill_id FROM job_skills WHERE job_id = $1`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanJobRow(row scannable) (JobRow, error) {
	var j JobRow
	err := row.Scan(
		&j.ID, &j.CompanyID, &j.CategoryID, &j.PositionID, &j.SalaryID,
		&j.ExperienceLevelID, &j.Title, &j.Description, &j.Requirements, &j.Benefits,
		&j.JobType, &j.Amount, &j.PostedAt, &j.ExpiresAt, &j.Status,
		&j.CompanyName, &j.CompanyLocation,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobRow{}, job.ErrNotFound
		}
		return JobRow{}, err
	}
	return j, nil
}

func collectJobRows(rows database.Rows) ([]JobRow, error) {
	out := make([]JobRow, 0)
	for rows.Next() {
		var j JobRow
		if err := rows.Scan(
			&j.ID, &j.CompanyID, &j.CategoryID, &j.PositionID, &j.SalaryID,
			&j.ExperienceLevelID, &j.Title, &j.Description, &j.Requirements, &j.Benefits,
			&j.JobType, &j.Amount, &j.PostedAt, &j.ExpiresAt, &j.Status,
			&j.CompanyName, &j.CompanyLocation,
		); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
