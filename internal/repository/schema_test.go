package repository

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

// recordingDB captures every statement so tests can check the SQL the
// repositories emit against the shipped schema.
type recordingDB struct {
	queries []string
}

func (d *recordingDB) Ping(_ context.Context) error { return nil }
func (d *recordingDB) Close() error { return nil }
func (d *recordingDB) SQLDB() *sql.DB { return nil }

func (d *recordingDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	d.queries = append(d.queries, query)
	return 1, nil
}

func (d *recordingDB) Query(_ context.Context, query string, _ ...any) (database.Rows, error) {
	d.queries = append(d.queries, query)
	return emptyRows{}, nil
}

func (d *recordingDB) QueryRow(_ context.Context, query string, _ ...any) database.Row {
	d.queries = append(d.queries, query)
	return zeroRow{}
}

func (d *recordingDB) Begin(_ context.Context) (database.Tx, error) {
	return recordingTx{db: d}, nil
}

type recordingTx struct {
	db *recordingDB
}

func (t recordingTx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return t.db.Exec(ctx, query, args...)
}

func (t recordingTx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	return t.db.Query(ctx, query, args...)
}

func (t recordingTx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.db.QueryRow(ctx, query, args...)
}

func (t recordingTx) Commit(_ context.Context) error { return nil }

func (t recordingTx) Rollback(_ context.Context) error { return nil }

type emptyRows struct{}

func (emptyRows) Close()              {}
func (emptyRows) Next() bool          { return false }
func (emptyRows) Scan(_ ...any) error { return nil }
func (emptyRows) Err() error          { return nil }

type zeroRow struct{}

func (zeroRow) Scan(_ ...any) error { return nil }

var (
	createTableRe = regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS (\w+) \((.*?)\n\);`)
	insertRe      = regexp.MustCompile(`INSERT INTO\s+(\w+)\s*\(([^)]+)\)`)
)

// loadSchemaColumns parses the migration file into table → column set.
func loadSchemaColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("..", "..", "migrations", "V1__init.sql"))
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	tables := map[string]map[string]bool{}
	for _, m := range createTableRe.FindAllStringSubmatch(string(b), -1) {
		cols := map[string]bool{}
		for _, line := range strings.Split(m[2], "\n") {
			fields := strings.Fields(strings.TrimSpace(line))
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "PRIMARY", "UNIQUE", "FOREIGN", "CONSTRAINT":
				continue
			}
			cols[fields[0]] = true
		}
		tables[m[1]] = cols
	}
	if len(tables) == 0 {
		t.Fatal("no tables parsed from schema")
	}
	return tables
}

// TestInsertsMatchSchema drives every repository insert path through a
// recording store and checks each emitted column exists in the migration.
// A column drifting between the SQL and the schema fails requests at
// runtime only, so this is the compile check the raw queries never get.
func TestInsertsMatchSchema(t *testing.T) {
	ctx := context.Background()
	schema := loadSchemaColumns(t)
	db := &recordingDB{}

	if err := NewPostgresUserRepository(db).Create(ctx, user.User{ID: uuid.New()}); err != nil {
		t.Fatalf("user create: %v", err)
	}
	if err := NewPostgresUserRepository(db).ReplaceSkills(ctx, uuid.New(), []uuid.UUID{uuid.New()}); err != nil {
		t.Fatalf("replace skills: %v", err)
	}
	if err := NewPostgresCompanyRepository(db).CreateWithOwner(ctx, company.Company{ID: uuid.New()}); err != nil {
		t.Fatalf("company create: %v", err)
	}
	if err := NewPostgresCompanyRepository(db).InsertMember(ctx, company.Member{}); err != nil {
		t.Fatalf("insert member: %v", err)
	}
	if err := NewPostgresCompanyRepository(db).InsertImage(ctx, company.Image{}); err != nil {
		t.Fatalf("insert image: %v", err)
	}
	if err := NewPostgresJobRepository(db).Create(ctx, job.Job{ID: uuid.New()}, []uuid.UUID{uuid.New()}); err != nil {
		t.Fatalf("job create: %v", err)
	}
	if err := NewPostgresApplicationRepository(db).Create(ctx, application.Application{ID: uuid.New()}); err != nil {
		t.Fatalf("application create: %v", err)
	}
	if err := NewPostgresSavedJobRepository(db).Create(ctx, savedjob.SavedJob{ID: uuid.New(), SavedAt: time.Now()}); err != nil {
		t.Fatalf("saved job create: %v", err)
	}
	for _, table := range []string{TableCategories, TableSkills, TablePositions, TableExperienceLevels} {
		if err := NewPostgresLookupRepository(db, table).Create(ctx, taxonomy.Entry{ID: uuid.New()}); err != nil {
			t.Fatalf("%s create: %v", table, err)
		}
	}
	if err := NewPostgresSalaryRepository(db).Create(ctx, taxonomy.Salary{ID: uuid.New()}); err != nil {
		t.Fatalf("salary create: %v", err)
	}
	if err := NewPostgresCompanySizeRepository(db).Create(ctx, taxonomy.CompanySize{ID: uuid.New()}); err != nil {
		t.Fatalf("company size create: %v", err)
	}

	inserts := 0
	for _, q := range db.queries {
		m := insertRe.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		inserts++
		table := m[1]
		cols, ok := schema[table]
		if !ok {
			t.Errorf("insert into unknown table %q", table)
			continue
		}
		for _, col := range strings.Split(m[2], ",") {
			col = strings.TrimSpace(col)
			if !cols[col] {
				t.Errorf("table %s: inserted column %q not in schema", table, col)
			}
		}
	}
	if inserts < 12 {
		t.Fatalf("expected at least 12 insert statements, saw %d", inserts)
	}
}

func TestJobSkillInsertHasNoSyntheticID(t *testing.T) {
	db := &recordingDB{}
	err := NewPostgresJobRepository(db).Create(context.Background(), job.Job{ID: uuid.New()}, []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	found := false
	for _, q := range db.queries {
		if !strings.Contains(q, "job_skills") || !strings.Contains(q, "INSERT") {
			continue
		}
		found = true
		if strings.Contains(q, "(id,") {
			t.Fatalf("job_skills insert names an id column the table does not have: %s", q)
		}
		if !strings.Contains(q, "ON CONFLICT DO NOTHING") {
			t.Fatalf("job_skills insert must tolerate duplicate skill ids: %s", q)
		}
	}
	if !found {
		t.Fatal("no job_skills insert emitted")
	}
}

func TestFeaturedRanking(t *testing.T) {
	db := &recordingDB{}
	if _, err := NewPostgresJobRepository(db).Featured(context.Background(), 8); err != nil {
		t.Fatalf("featured: %v", err)
	}
	if len(db.queries) != 1 {
		t.Fatalf("expected one query, got %d", len(db.queries))
	}
	q := db.queries[0]

	if !strings.Contains(q, "expires_at > now()") {
		t.Fatal("featured jobs must exclude expired postings")
	}

	bySalary := strings.Index(q, "s.max DESC")
	byApplications := strings.Index(q, "COALESCE(a.n, 0) DESC")
	byRecency := strings.Index(q, "j.posted_at DESC")
	if bySalary == -1 || byApplications == -1 || byRecency == -1 {
		t.Fatalf("missing ranking term in query: %s", q)
	}
	if !(bySalary < byApplications && byApplications < byRecency) {
		t.Fatal("ranking must be salary ceiling, then application count, then recency")
	}
}
