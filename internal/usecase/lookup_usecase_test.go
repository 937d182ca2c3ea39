package usecase

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

type mockLookups struct {
	byID   map[uuid.UUID]taxonomy.Entry
	exists bool
	err    error

	created []taxonomy.Entry
}

func (m *mockLookups) Create(_ context.Context, e taxonomy.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, e)
	return nil
}

func (m *mockLookups) GetByID(_ context.Context, id uuid.UUID) (taxonomy.Entry, error) {
	e, ok := m.byID[id]
	if !ok {
		return taxonomy.Entry{}, taxonomy.ErrNotFound
	}
	return e, nil
}

func (m *mockLookups) ExistsByName(context.Context, string) (bool, error) {
	return m.exists, m.err
}

func (m *mockLookups) List(context.Context) ([]taxonomy.Entry, error) {
	return nil, m.err
}

func (m *mockLookups) UpdateName(context.Context, uuid.UUID, string) error {
	return m.err
}

func (m *mockLookups) Delete(context.Context, uuid.UUID) error {
	return m.err
}

func TestLookup_Create_AdminOnly(t *testing.T) {
	repo := &mockLookups{}
	uc := NewLookupUsecase(repo)

	_, err := uc.Create(context.Background(), Actor{ID: uuid.New(), Role: user.RoleRecruiter}, "Design")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.created) != 0 {
		t.Fatalf("forbidden create must not persist")
	}
}

func TestLookup_Create_DuplicateName(t *testing.T) {
	repo := &mockLookups{exists: true}
	uc := NewLookupUsecase(repo)

	_, err := uc.Create(context.Background(), Actor{ID: uuid.New(), Role: user.RoleAdmin}, "design")
	if !errors.Is(err, taxonomy.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
}

func TestLookup_Create_TrimsName(t *testing.T) {
	repo := &mockLookups{}
	uc := NewLookupUsecase(repo)

	e, err := uc.Create(context.Background(), Actor{ID: uuid.New(), Role: user.RoleAdmin}, "  Design  ")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if e.Name != "Design" {
		t.Fatalf("expected trimmed name, got %q", e.Name)
	}
}

func TestSalaries_Create_InvalidRange(t *testing.T) {
	uc := NewSalaryUsecase(nil)

	_, err := uc.Create(context.Background(), Actor{ID: uuid.New(), Role: user.RoleAdmin}, 100, 50)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCompanySizes_Create_InvalidRange(t *testing.T) {
	uc := NewCompanySizeUsecase(nil)

	_, err := uc.Create(context.Background(), Actor{ID: uuid.New(), Role: user.RoleAdmin}, -1, 10)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
