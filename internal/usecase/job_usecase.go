package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type JobCreateInput struct {
	CompanyID         uuid.UUID
	CategoryID        uuid.UUID
	PositionID        uuid.UUID
	SalaryID          uuid.UUID
	ExperienceLevelID uuid.UUID
	Title             string
	Description       string
	Requirements      string
	Benefits          string
	JobType           string
	Amount            int
	SkillIDs          []uuid.UUID
}

type JobDetail struct {
	repository.JobRow
	SkillIDs []uuid.UUID
}

type JobUsecase interface {
	Create(ctx context.Context, actor Actor, in JobCreateInput) (job.Job, error)
	Get(ctx context.Context, id uuid.UUID) (JobDetail, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, upd repository.JobUpdate) error
	SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) error
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	List(ctx context.Context, f repository.JobListFilter) ([]repository.JobRow, int, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, all bool, p repository.Pagination) ([]repository.JobRow, int, error)
	Latest(ctx context.Context) ([]repository.JobRow, error)
	Featured(ctx context.Context) ([]repository.JobRow, error)
}

type Jobs struct {
	jobs      repository.JobRepository
	companies repository.CompanyRepository

	now func() time.Time
}

func NewJobUsecase(jobs repository.JobRepository, companies repository.CompanyRepository) *Jobs {
	return &Jobs{jobs: jobs, companies: companies, now: time.Now}
}

// Create posts a PENDING job that stays open for the fixed 30-day window.
func (u *Jobs) Create(ctx context.Context, actor Actor, in JobCreateInput) (job.Job, error) {
	if in.Title == "" || in.Amount <= 0 {
		return job.Job{}, ErrInvalidInput
	}

	if _, err := u.companies.GetByID(ctx, in.CompanyID); err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return job.Job{}, company.ErrNotFound
		}
		return job.Job{}, ErrInternal
	}

	if err := u.requireMember(ctx, actor, in.CompanyID); err != nil {
		return job.Job{}, err
	}

	postedAt := u.now().UTC()
	j := job.Job{
		ID:                uuid.New(),
		CompanyID:         in.CompanyID,
		CategoryID:        in.CategoryID,
		PositionID:        in.PositionID,
		SalaryID:          in.SalaryID,
		ExperienceLevelID: in.ExperienceLevelID,
		Title:             in.Title,
		Description:       in.Description,
		Requirements:      in.Requirements,
		Benefits:          in.Benefits,
		JobType:           in.JobType,
		Amount:            in.Amount,
		PostedAt:          postedAt,
		ExpiresAt:         job.ExpiryFor(postedAt),
		Status:            job.StatusPending,
	}

	if err := u.jobs.Create(ctx, j, in.SkillIDs); err != nil {
		return job.Job{}, ErrInternal
	}
	return j, nil
}

func (u *Jobs) Get(ctx context.Context, id uuid.UUID) (JobDetail, error) {
	row, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return JobDetail{}, job.ErrNotFound
		}
		return JobDetail{}, ErrInternal
	}

	skills, err := u.jobs.SkillIDs(ctx, id)
	if err != nil {
		return JobDetail{}, ErrInternal
	}
	return JobDetail{JobRow: row, SkillIDs: skills}, nil
}

func (u *Jobs) Update(ctx context.Context, actor Actor, id uuid.UUID, upd repository.JobUpdate) error {
	row, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return ErrInternal
	}
	if err := u.requireMember(ctx, actor, row.CompanyID); err != nil {
		return err
	}

	if err := u.jobs.Update(ctx, id, upd); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Jobs) SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) error {
	if !job.ValidStatus(status) {
		return ErrInvalidInput
	}

	row, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return ErrInternal
	}
	if err := u.requireMember(ctx, actor, row.CompanyID); err != nil {
		return err
	}

	if err := u.jobs.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

// Delete removes the job and its dependents; the repository runs the cascade
// in one transaction so no orphan rows survive a partial failure.
func (u *Jobs) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	row, err := u.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return ErrInternal
	}
	if err := u.requireMember(ctx, actor, row.CompanyID); err != nil {
		return err
	}

	if err := u.jobs.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return job.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Jobs) List(ctx context.Context, f repository.JobListFilter) ([]repository.JobRow, int, error) {
	items, total, err := u.jobs.List(ctx, f)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Jobs) ListByCompany(ctx context.Context, companyID uuid.UUID, all bool, p repository.Pagination) ([]repository.JobRow, int, error) {
	items, total, err := u.jobs.ListByCompany(ctx, companyID, all, p)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Jobs) Latest(ctx context.Context) ([]repository.JobRow, error) {
	items, err := u.jobs.Latest(ctx, repository.DefaultPageSize)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) Featured(ctx context.Context) ([]repository.JobRow, error) {
	items, err := u.jobs.Featured(ctx, repository.DefaultPageSize)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Jobs) requireMember(ctx context.Context, actor Actor, companyID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	_, err := u.companies.GetMemberByUser(ctx, companyID, actor.ID)
	if err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			return ErrForbidden
		}
		return ErrInternal
	}
	return nil
}
