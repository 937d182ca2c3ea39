package seeder

import (
	"context"
	"fmt"

	"jobboard/internal/database"
)

// NamesSeeder fills one name-only lookup table. Inserts are idempotent; the
// unique index on lower(name) swallows duplicates.
type NamesSeeder struct {
	Table string
	Items []string
}

func (s NamesSeeder) Name() string { return s.Table }

func (s NamesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, s.Table, "id", "name", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, name := range s.Items {
		_, err := tx.Exec(
			ctx,
			fmt.Sprintf(`INSERT INTO %s (id, name) VALUES (gen_random_uuid(), $1) ON CONFLICT DO NOTHING`, s.Table),
			name,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type SalariesSeeder struct{}

func (SalariesSeeder) Name() string { return "salaries" }

func (SalariesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "salaries", "id", "min", "max", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	ranges := []struct {
		Min int64
		Max int64
	}{
		{Min: 0, Max: 30_000},
		{Min: 30_000, Max: 60_000},
		{Min: 60_000, Max: 90_000},
		{Min: 90_000, Max: 120_000},
		{Min: 120_000, Max: 180_000},
	}

	for _, r := range ranges {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO salaries (id, min, max)
			 SELECT gen_random_uuid(), $1, $2
			 WHERE NOT EXISTS (SELECT 1 FROM salaries WHERE min = $1 AND max = $2)`,
			r.Min, r.Max,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type CompanySizesSeeder struct{}

func (CompanySizesSeeder) Name() string { return "company_sizes" }

func (CompanySizesSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "company_sizes", "id", "min_employees", "max_employees", "created_at"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	sizes := []struct {
		Min int
		Max int
	}{
		{Min: 1, Max: 10},
		{Min: 11, Max: 50},
		{Min: 51, Max: 200},
		{Min: 201, Max: 1000},
		{Min: 1001, Max: 10000},
	}

	for _, s := range sizes {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO company_sizes (id, min_employees, max_employees)
			 SELECT gen_random_uuid(), $1, $2
			 WHERE NOT EXISTS (SELECT 1 FROM company_sizes WHERE min_employees = $1 AND max_employees = $2)`,
			s.Min, s.Max,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
