package usecase

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

// LookupUsecase serves one named taxonomy (categories, skills, positions,
// experience levels). Names are unique case-insensitively: a pre-check gives
// the friendly conflict message and the unique index closes the race.
type LookupUsecase interface {
	List(ctx context.Context) ([]taxonomy.Entry, error)
	Get(ctx context.Context, id uuid.UUID) (taxonomy.Entry, error)
	Create(ctx context.Context, actor Actor, name string) (taxonomy.Entry, error)
	Rename(ctx context.Context, actor Actor, id uuid.UUID, name string) (taxonomy.Entry, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Lookup struct {
	repo repository.LookupRepository
}

func NewLookupUsecase(repo repository.LookupRepository) *Lookup {
	return &Lookup{repo: repo}
}

func (u *Lookup) List(ctx context.Context) ([]taxonomy.Entry, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Lookup) Get(ctx context.Context, id uuid.UUID) (taxonomy.Entry, error) {
	e, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.Entry{}, taxonomy.ErrNotFound
		}
		return taxonomy.Entry{}, ErrInternal
	}
	return e, nil
}

func (u *Lookup) Create(ctx context.Context, actor Actor, name string) (taxonomy.Entry, error) {
	if !actor.IsAdmin() {
		return taxonomy.Entry{}, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return taxonomy.Entry{}, ErrInvalidInput
	}

	exists, err := u.repo.ExistsByName(ctx, name)
	if err != nil {
		return taxonomy.Entry{}, ErrInternal
	}
	if exists {
		return taxonomy.Entry{}, taxonomy.ErrNameTaken
	}

	e := taxonomy.Entry{ID: uuid.New(), Name: name}
	if err := u.repo.Create(ctx, e); err != nil {
		if errors.Is(err, taxonomy.ErrNameTaken) {
			return taxonomy.Entry{}, taxonomy.ErrNameTaken
		}
		return taxonomy.Entry{}, ErrInternal
	}
	return e, nil
}

func (u *Lookup) Rename(ctx context.Context, actor Actor, id uuid.UUID, name string) (taxonomy.Entry, error) {
	if !actor.IsAdmin() {
		return taxonomy.Entry{}, ErrForbidden
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return taxonomy.Entry{}, ErrInvalidInput
	}

	if err := u.repo.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, taxonomy.ErrNotFound):
			return taxonomy.Entry{}, taxonomy.ErrNotFound
		case errors.Is(err, taxonomy.ErrNameTaken):
			return taxonomy.Entry{}, taxonomy.ErrNameTaken
		}
		return taxonomy.Entry{}, ErrInternal
	}
	return u.Get(ctx, id)
}

func (u *Lookup) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	err := u.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

type SalaryUsecase interface {
	List(ctx context.Context) ([]taxonomy.Salary, error)
	Get(ctx context.Context, id uuid.UUID) (taxonomy.Salary, error)
	Create(ctx context.Context, actor Actor, min, max int64) (taxonomy.Salary, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, min, max int64) (taxonomy.Salary, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type Salaries struct {
	repo repository.SalaryRepository
}

func NewSalaryUsecase(repo repository.SalaryRepository) *Salaries {
	return &Salaries{repo: repo}
}

func (u *Salaries) List(ctx context.Context) ([]taxonomy.Salary, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Salaries) Get(ctx context.Context, id uuid.UUID) (taxonomy.Salary, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.Salary{}, taxonomy.ErrNotFound
		}
		return taxonomy.Salary{}, ErrInternal
	}
	return s, nil
}

func (u *Salaries) Create(ctx context.Context, actor Actor, min, max int64) (taxonomy.Salary, error) {
	if !actor.IsAdmin() {
		return taxonomy.Salary{}, ErrForbidden
	}
	if min < 0 || max < min {
		return taxonomy.Salary{}, ErrInvalidInput
	}

	s := taxonomy.Salary{ID: uuid.New(), Min: min, Max: max}
	if err := u.repo.Create(ctx, s); err != nil {
		return taxonomy.Salary{}, ErrInternal
	}
	return s, nil
}

func (u *Salaries) Update(ctx context.Context, actor Actor, id uuid.UUID, min, max int64) (taxonomy.Salary, error) {
	if !actor.IsAdmin() {
		return taxonomy.Salary{}, ErrForbidden
	}
	if min < 0 || max < min {
		return taxonomy.Salary{}, ErrInvalidInput
	}

	if err := u.repo.Update(ctx, id, min, max); err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.Salary{}, taxonomy.ErrNotFound
		}
		return taxonomy.Salary{}, ErrInternal
	}
	return u.Get(ctx, id)
}

func (u *Salaries) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	err := u.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

type CompanySizeUsecase interface {
	List(ctx context.Context) ([]taxonomy.CompanySize, error)
	Get(ctx context.Context, id uuid.UUID) (taxonomy.CompanySize, error)
	Create(ctx context.Context, actor Actor, minEmployees, maxEmployees int) (taxonomy.CompanySize, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, minEmployees, maxEmployees int) (taxonomy.CompanySize, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
}

type CompanySizes struct {
	repo repository.CompanySizeRepository
}

func NewCompanySizeUsecase(repo repository.CompanySizeRepository) *CompanySizes {
	return &CompanySizes{repo: repo}
}

func (u *CompanySizes) List(ctx context.Context) ([]taxonomy.CompanySize, error) {
	items, err := u.repo.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *CompanySizes) Get(ctx context.Context, id uuid.UUID) (taxonomy.CompanySize, error) {
	s, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.CompanySize{}, taxonomy.ErrNotFound
		}
		return taxonomy.CompanySize{}, ErrInternal
	}
	return s, nil
}

func (u *CompanySizes) Create(ctx context.Context, actor Actor, minEmployees, maxEmployees int) (taxonomy.CompanySize, error) {
	if !actor.IsAdmin() {
		return taxonomy.CompanySize{}, ErrForbidden
	}
	if minEmployees < 0 || maxEmployees < minEmployees {
		return taxonomy.CompanySize{}, ErrInvalidInput
	}

	s := taxonomy.CompanySize{ID: uuid.New(), MinEmployees: minEmployees, MaxEmployees: maxEmployees}
	if err := u.repo.Create(ctx, s); err != nil {
		return taxonomy.CompanySize{}, ErrInternal
	}
	return s, nil
}

func (u *CompanySizes) Update(ctx context.Context, actor Actor, id uuid.UUID, minEmployees, maxEmployees int) (taxonomy.CompanySize, error) {
	if !actor.IsAdmin() {
		return taxonomy.CompanySize{}, ErrForbidden
	}
	if minEmployees < 0 || maxEmployees < minEmployees {
		return taxonomy.CompanySize{}, ErrInvalidInput
	}

	if err := u.repo.Update(ctx, id, minEmployees, maxEmployees); err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.CompanySize{}, taxonomy.ErrNotFound
		}
		return taxonomy.CompanySize{}, ErrInternal
	}
	return u.Get(ctx, id)
}

func (u *CompanySizes) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	err := u.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return taxonomy.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}
