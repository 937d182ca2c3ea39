package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/taxonomy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Lookup tables share one repository parameterized by table name. The table
// name always comes from the constants below, never from request input.
const (
	TableCategories       = "categories"
	TableSkills           = "skills"
	TablePositions        = "positions"
	TableExperienceLevels = "experience_levels"
)

type LookupRepository interface {
	Create(ctx context.Context, e taxonomy.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (taxonomy.Entry, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]taxonomy.Entry, error)
	UpdateName(ctx context.Context, id uuid.UUID, name string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresLookupRepository struct {
	db    database.DB
	table string
}

func NewPostgresLookupRepository(db database.DB, table string) *PostgresLookupRepository {
	return &PostgresLookupRepository{db: db, table: table}
}

func (r *PostgresLookupRepository) Create(ctx context.Context, e taxonomy.Entry) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO `+r.table+` (id, name) VALUES ($1, $2)`, e.ID, e.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return taxonomy.ErrNameTaken
		}
		return err
	}
	return nil
}

func (r *PostgresLookupRepository) GetByID(ctx context.Context, id uuid.UUID) (taxonomy.Entry, error) {
	var e taxonomy.Entry
	row := r.db.QueryRow(ctx,
		`SELECT id, name, created_at FROM `+r.table+` WHERE id = $1`, id)
	if err := row.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taxonomy.Entry{}, taxonomy.ErrNotFound
		}
		return taxonomy.Entry{}, err
	}
	return e, nil
}

func (r *PostgresLookupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM `+r.table+` WHERE lower(name) = lower($1))`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresLookupRepository) List(ctx context.Context) ([]taxonomy.Entry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, created_at FROM `+r.table+` ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]taxonomy.Entry, 0)
	for rows.Next() {
		var e taxonomy.Entry
		if err := rows.Scan(&e.ID, &e.Name, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresLookupRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE `+r.table+` SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return taxonomy.ErrNameTaken
		}
		return err
	}
	if affected == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}

func (r *PostgresLookupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM `+r.table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}

type SalaryRepository interface {
	Create(ctx context.Context, s taxonomy.Salary) error
	GetByID(ctx context.Context, id uuid.UUID) (taxonomy.Salary, error)
	List(ctx context.Context) ([]taxonomy.Salary, error)
	Update(ctx context.Context, id uuid.UUID, min, max int64) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresSalaryRepository struct {
	db database.DB
}

func NewPostgresSalaryRepository(db database.DB) *PostgresSalaryRepository {
	return &PostgresSalaryRepository{db: db}
}

func (r *PostgresSalaryRepository) Create(ctx context.Context, s taxonomy.Salary) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO salaries (id, min, max) VALUES ($1, $2, $3)`, s.ID, s.Min, s.Max)
	return err
}

func (r *PostgresSalaryRepository) GetByID(ctx context.Context, id uuid.UUID) (taxonomy.Salary, error) {
	var s taxonomy.Salary
	row := r.db.QueryRow(ctx,
		`SELECT id, min, max, created_at FROM salaries WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.Min, &s.Max, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taxonomy.Salary{}, taxonomy.ErrNotFound
		}
		return taxonomy.Salary{}, err
	}
	return s, nil
}

func (r *PostgresSalaryRepository) List(ctx context.Context) ([]taxonomy.Salary, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, min, max, created_at FROM salaries ORDER BY min ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]taxonomy.Salary, 0)
	for rows.Next() {
		var s taxonomy.Salary
		if err := rows.Scan(&s.ID, &s.Min, &s.Max, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSalaryRepository) Update(ctx context.Context, id uuid.UUID, min, max int64) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE salaries SET min = $2, max = $3 WHERE id = $1`, id, min, max)
	if err != nil {
		return err
	}
	if affected == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}

func (r *PostgresSalaryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM salaries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}

type CompanySizeRepository interface {
	Create(ctx context.Context, s taxonomy.CompanySize) error
	GetByID(ctx context.Context, id uuid.UUID) (taxonomy.CompanySize, error)
	List(ctx context.Context) ([]taxonomy.CompanySize, error)
	Update(ctx context.Context, id uuid.UUID, minEmployees, maxEmployees int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type PostgresCompanySizeRepository struct {
	db database.DB
}

func NewPostgresCompanySizeRepository(db database.DB) *PostgresCompanySizeRepository {
	return &PostgresCompanySizeRepository{db: db}
}

func (r *PostgresCompanySizeRepository) Create(ctx context.Context, s taxonomy.CompanySize) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO company_sizes (id, min_employees, max_employees) VALUES ($1, $2, $3)`,
		s.ID, s.MinEmployees, s.MaxEmployees)
	return err
}

func (r *PostgresCompanySizeRepository) GetByID(ctx context.Context, id uuid.UUID) (taxonomy.CompanySize, error) {
	var s taxonomy.CompanySize
	row := r.db.QueryRow(ctx,
		`SELECT id, min_employees, max_employees, created_at FROM company_sizes WHERE id = $1`, id)
	if err := row.Scan(&s.ID, &s.MinEmployees, &s.MaxEmployees, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return taxonomy.CompanySize{}, taxonomy.ErrNotFound
		}
		return taxonomy.CompanySize{}, err
	}
	return s, nil
}

func (r *PostgresCompanySizeRepository) List(ctx context.Context) ([]taxonomy.CompanySize, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, min_employees, max_employees, created_at FROM company_sizes ORDER BY min_employees ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]taxonomy.CompanySize, 0)
	for rows.Next() {
		var s taxonomy.CompanySize
		if err := rows.Scan(&s.ID, &s.MinEmployees, &s.MaxEmployees, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanySizeRepository) Update(ctx context.Context, id uuid.UUID, minEmployees, maxEmployees int) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE company_sizes SET min_employees = $2, max_employees = $3 WHERE id = $1`,
		id, minEmployees, maxEmployees)
	if err != nil {
		return err
	}
	if affected == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}

func (r *PostgresCompanySizeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM company_sizes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}
