package repository

import (
	"context"
	"errors"

	"jobboard/internal/database"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type UserUpdate struct {
	Fullname  *string
	Gender    *string
	AvatarURL *string
	ResumeURL *string
}

// ProfileIDs are the flattened relation ids returned with the login profile.
type ProfileIDs struct {
	SkillIDs       []uuid.UUID
	ApplicationIDs []uuid.UUID
	SavedJobIDs    []uuid.UUID
}

type UserRepository interface {
	Create(ctx context.Context, u user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, p Pagination) ([]user.User, int, error)
	Update(ctx context.Context, id uuid.UUID, upd UserUpdate) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateRole(ctx context.Context, id uuid.UUID, role string) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ProfileIDs(ctx context.Context, id uuid.UUID) (ProfileIDs, error)
	ReplaceSkills(ctx context.Context, id uuid.UUID, skillIDs []uuid.UUID) error
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, fullname, email, password_hash, role, gender, status, avatar_url, resume_url, created_at, updated_at`

func (r *PostgresUserRepository) Create(ctx context.Context, u user.User) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, fullname, email, password_hash, role, gender, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Fullname, u.Email, u.PasswordHash, u.Role, u.Gender, u.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.ErrEmailTaken
		}
		return err
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresUserRepository) List(ctx context.Context, p Pagination) ([]user.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		p.Limit(), p.Offset(),
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUserRows(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, id uuid.UUID, upd UserUpdate) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET
			fullname   = COALESCE($2, fullname),
			gender     = COALESCE($3, gender),
			avatar_url = COALESCE($4, avatar_url),
			resume_url = COALESCE($5, resume_url),
			updated_at = now()
		 WHERE id = $1`,
		id, upd.Fullname, upd.Gender, upd.AvatarURL, upd.ResumeURL,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateRole(ctx context.Context, id uuid.UUID, role string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET role = $2, updated_at = now() WHERE id = $1`,
		id, role,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE users SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (r *PostgresUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM applications WHERE user_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM saved_jobs WHERE user_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `DELETE FROM company_members WHERE user_id = $1`, id); err != nil {
			return err
		}
		affected, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if affected == 0 {
			return user.ErrNotFound
		}
		return nil
	})
}

// ReplaceSkills swaps the user's skill set for the given one in a single
// transaction. An unknown skill id fails the whole replacement.
func (r *PostgresUserRepository) ReplaceSkills(ctx context.Context, id uuid.UUID, skillIDs []uuid.UUID) error {
	return database.WithTx(ctx, r.db, func(tx database.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM user_skills WHERE user_id = $1`, id); err != nil {
			return err
		}
		for _, sid := range skillIDs {
			if _, err := tx.Exec(ctx,
				`INSERT INTO user_skills (user_id, skill_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
				id, sid,
			); err != nil {
				if isForeignKeyViolation(err) {
					return taxonomy.ErrNotFound
				}
				return err
			}
		}
		return nil
	})
}

func (r *PostgresUserRepository) ProfileIDs(ctx context.Context, id uuid.UUID) (ProfileIDs, error) {
	out := ProfileIDs{
		SkillIDs:       make([]uuid.UUID, 0),
		ApplicationIDs: make([]uuid.UUID, 0),
		SavedJobIDs:    make([]uuid.UUID, 0),
	}

	collect := func(query string, dst *[]uuid.UUID) error {
		rows, err := r.db.Query(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var v uuid.UUID
			if err := rows.Scan(&v); err != nil {
				return err
			}
			*dst = append(*dst, v)
		}
		return rows.Err()
	}

	if err := collect(`SELECT skill_id FROM user_skills WHERE user_id = $1`, &out.SkillIDs); err != nil {
		return ProfileIDs{}, err
	}
	if err := collect(`SELECT id FROM applications WHERE user_id = $1`, &out.ApplicationIDs); err != nil {
		return ProfileIDs{}, err
	}
	if err := collect(`SELECT id FROM saved_jobs WHERE user_id = $1`, &out.SavedJobIDs); err != nil {
		return ProfileIDs{}, err
	}
	return out, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanUser(row scannable) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &u.Role, &u.Gender,
		&u.Status, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func scanUserRows(rows database.Rows) (user.User, error) {
	var u user.User
	err := rows.Scan(
		&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &u.Role, &u.Gender,
		&u.Status, &u.AvatarURL, &u.ResumeURL, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return user.User{}, err
	}
	return u, nil
}
