package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/company"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CompanyFilter struct {
	Status string
	Search string
	Pagination
}

type CompanyUpdate struct {
	Name        *string
	Location    *string
	Description *string
	Website     *string
	LogoURL     *string
	SizeID      *uuid.UUID
}

type CompanyRepository interface {
	CreateWithOwner(ctx context.Context, c company.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (company.Company, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, f CompanyFilter) ([]company.Company, int, error)
	Update(ctx context.Context, id uuid.UUID, upd CompanyUpdate) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error

	InsertMember(ctx context.Context, m company.Member) error
	GetMember(ctx context.Context, companyID, memberID uuid.UUID) (company.Member, error)
	GetMemberByUser(ctx context.Context, companyID, userID uuid.UUID) (company.Member, error)
	ListMembers(ctx context.Context, companyID uuid.UUID) ([]company.Member, error)
	UpdateMemberRole(ctx context.Context, companyID, memberID uuid.UUID, role string) error
	DeleteMember(ctx context.Context, companyID, memberID uuid.UUID) error

	InsertImage(ctx context.Context, img company.Image) error
	ListImages(ctx context.Context, companyID uuid.UUID) ([]company.Image, error)
}

type PostgresCompanyRepository struct {
	db database.DB
}

func NewPostgresCompanyRepository(db database.DB) *PostgresCompanyRepository {
	return &PostgresCompanyRepository{db: db}
}

const companyColumns = `id, name, location, description, website, logo_url, status, owner_id, size_id, created_at, updated_at`

// CreateWithOwner inserts the company and the creator's OWNER membership in
// one transaction, so a company can never exist without exactly one owner row.
func (r *PostgresCompanyRepository) CreateWithOwner(ctx context.Context, c company.Company) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		_, err := tx.Exec(ctx,
			`INSERT INTO companies (id, name, location, description, website, logo_url, status, owner_id, size_id)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			c.ID, c.Name, c.Location, c.Description, c.Website, c.LogoURL, c.Status, c.OwnerID, c.SizeID,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return company.ErrNameTaken
			}
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO company_members (id, user_id, company_id, role) VALUES ($1, $2, $3, $4)`,
			uuid.New(), c.OwnerID, c.ID, company.MemberRoleOwner,
		)
		return err
	})
}

func (r *PostgresCompanyRepository) GetByID(ctx context.Context, id uuid.UUID) (company.Company, error) {
	row := r.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

func (r *PostgresCompanyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM companies WHERE lower(name) = lower($1))`, name)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresCompanyRepository) List(ctx context.Context, f CompanyFilter) ([]company.Company, int, error) {
	where := ` WHERE ($1 = '' OR status = $1)
	            AND ($2 = '' OR name ILIKE '%' || $2 || '%')`

	var total int
	if err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM companies`+where, f.Status, f.Search,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+companyColumns+` FROM companies`+where+
			` ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		f.Status, f.Search, f.Limit(), f.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]company.Company, 0)
	for rows.Next() {
		c, err := scanCompanyRows(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresCompanyRepository) Update(ctx context.Context, id uuid.UUID, upd CompanyUpdate) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE companies SET
			name        = COALESCE($2, name),
			location    = COALESCE($3, location),
			description = COALESCE($4, description),
			website     = COALESCE($5, website),
			logo_url    = COALESCE($6, logo_url),
			size_id     = COALESCE($7, size_id),
			updated_at  = now()
		 WHERE id = $1`,
		id, upd.Name, upd.Location, upd.Description, upd.Website, upd.LogoURL, upd.SizeID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return company.ErrNameTaken
		}
		return err
	}
	if affected == 0 {
		return company.ErrNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE companies SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if affected == 0 {
		return company.ErrNotFound
	}
	return nil
}

// DeleteCascade removes the company and everything hanging off it: job
// children first, then jobs, gallery images, memberships, and the row itself.
func (r *PostgresCompanyRepository) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		jobChildren := []string{
			`DELETE FROM job_skills WHERE job_id IN (SELECT id FROM jobs WHERE company_id = $1)`,
			`DELETE FROM applications WHERE job_id IN (SELECT id FROM jobs WHERE company_id = $1)`,
			`DELETE FROM saved_jobs WHERE job_id IN (SELECT id FROM jobs WHERE company_id = $1)`,
			`DELETE FROM jobs WHERE company_id = $1`,
			`DELETE FROM company_images WHERE company_id = $1`,
			`DELETE FROM company_members WHERE company_id = $1`,
		}
		for _, q := range jobChildren {
			if _, err := tx.Exec(ctx, q, id); err != nil {
				return err
			}
		}
		affected, err := tx.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return company.ErrNotFound
		}
		return nil
	})
}

func (r *PostgresCompanyRepository) InsertMember(ctx context.Context, m company.Member) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO company_members (id, user_id, company_id, role) VALUES ($1, $2, $3, $4)`,
		m.ID, m.UserID, m.CompanyID, m.Role,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return company.ErrMemberExists
		}
		return err
	}
	return nil
}

func (r *PostgresCompanyRepository) GetMember(ctx context.Context, companyID, memberID uuid.UUID) (company.Member, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, company_id, role, created_at
		 FROM company_members WHERE company_id = $1 AND id = $2`,
		companyID, memberID,
	)
	return scanMember(row)
}

func (r *PostgresCompanyRepository) GetMemberByUser(ctx context.Context, companyID, userID uuid.UUID) (company.Member, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_id, company_id, role, created_at
		 FROM company_members WHERE company_id = $1 AND user_id = $2`,
		companyID, userID,
	)
	return scanMember(row)
}

func (r *PostgresCompanyRepository) ListMembers(ctx context.Context, companyID uuid.UUID) ([]company.Member, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, company_id, role, created_at
		 FROM company_members WHERE company_id = $1 ORDER BY created_at ASC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Member, 0)
	for rows.Next() {
		var m company.Member
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresCompanyRepository) UpdateMemberRole(ctx context.Context, companyID, memberID uuid.UUID, role string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE company_members SET role = $3 WHERE company_id = $1 AND id = $2`,
		companyID, memberID, role,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return company.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) DeleteMember(ctx context.Context, companyID, memberID uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM company_members WHERE company_id = $1 AND id = $2`,
		companyID, memberID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return company.ErrMemberNotFound
	}
	return nil
}

func (r *PostgresCompanyRepository) InsertImage(ctx context.Context, img company.Image) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO company_images (id, company_id, url) VALUES ($1, $2, $3)`,
		img.ID, img.CompanyID, img.URL,
	)
	return err
}

func (r *PostgresCompanyRepository) ListImages(ctx context.Context, companyID uuid.UUID) ([]company.Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, company_id, url, created_at FROM company_images
		 WHERE company_id = $1 ORDER BY created_at ASC`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]company.Image, 0)
	for rows.Next() {
		var img company.Image
		if err := rows.Scan(&img.ID, &img.CompanyID, &img.URL, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCompany(row scannable) (company.Company, error) {
	var c company.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Location, &c.Description, &c.Website, &c.LogoURL,
		&c.Status, &c.OwnerID, &c.SizeID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrNotFound
		}
		return company.Company{}, err
	}
	return c, nil
}

func scanCompanyRows(rows database.Rows) (company.Company, error) {
	var c company.Company
	err := rows.Scan(
		&c.ID, &c.Name, &c.Location, &c.Description, &c.Website, &c.LogoURL,
		&c.Status, &c.OwnerID, &c.SizeID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}
	return c, nil
}

func scanMember(row scannable) (company.Member, error) {
	var m company.Member
	err := row.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Member{}, company.ErrMemberNotFound
		}
		return company.Member{}, err
	}
	return m, nil
}
