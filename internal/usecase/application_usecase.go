package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/infrastructure/mailer"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/repository"
	"jobboard/internal/ws"

	"github.com/google/uuid"
)

type ApplyInput struct {
	JobID       uuid.UUID
	CoverLetter *string
	// ResumeURL is the client-supplied fallback; ResumePath, when set, is a
	// local temp file whose transferred URL replaces it.
	ResumeURL  string
	ResumePath string
	Fullname   string
	Email      string
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error)
	SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) error
	Get(ctx context.Context, actor Actor, id uuid.UUID) (repository.ApplicationRow, error)
	HasApplied(ctx context.Context, actor Actor, jobID uuid.UUID) (bool, error)
	ListByUser(ctx context.Context, actor Actor, userID uuid.UUID, p repository.Pagination) ([]repository.ApplicationRow, int, error)
	ListByCompany(ctx context.Context, actor Actor, companyID uuid.UUID, f repository.ApplicationFilter) ([]repository.ApplicationRow, int, error)
	WeeklyStats(ctx context.Context, actor Actor, companyID uuid.UUID) ([]repository.DailyStatusCount, error)
}

type Applications struct {
	apps      repository.ApplicationRepository
	jobs      repository.JobRepository
	companies repository.CompanyRepository
	store     storage.ObjectStore
	notifier  mailer.Notifier
	logger    *log.Logger

	now func() time.Time
}

func NewApplicationUsecase(
	apps repository.ApplicationRepository,
	jobs repository.JobRepository,
	companies repository.CompanyRepository,
	store storage.ObjectStore,
	notifier mailer.Notifier,
	logger *log.Logger,
) *Applications {
	return &Applications{
		apps:      apps,
		jobs:      jobs,
		companies: companies,
		store:     store,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Apply creates a PENDING application. At most one application may exist per
// (job, user); a second attempt conflicts and leaves no new row.
func (u *Applications) Apply(ctx context.Context, actor Actor, in ApplyInput) (application.Application, error) {
	if strings.TrimSpace(in.Fullname) == "" || strings.TrimSpace(in.Email) == "" {
		return application.Application{}, ErrInvalidInput
	}

	if _, err := u.jobs.GetByID(ctx, in.JobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return application.Application{}, job.ErrNotFound
		}
		return application.Application{}, ErrInternal
	}

	exists, err := u.apps.Exists(ctx, in.JobID, actor.ID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, application.ErrAlreadyApplied
	}

	resumeURL := strings.TrimSpace(in.ResumeURL)
	if in.ResumePath != "" {
		url, err := u.store.Transfer(ctx, in.ResumePath)
		if err != nil {
			return application.Application{}, ErrInternal
		}
		resumeURL = url
	}
	if resumeURL == "" {
		return application.Application{}, ErrInvalidInput
	}

	a := application.Application{
		ID:          uuid.New(),
		JobID:       in.JobID,
		UserID:      actor.ID,
		CoverLetter: in.CoverLetter,
		ResumeURL:   resumeURL,
		Fullname:    strings.TrimSpace(in.Fullname),
		Email:       strings.TrimSpace(in.Email),
		Status:      application.StatusPending,
		AppliedAt:   u.now().UTC(),
	}

	if err := u.apps.Create(ctx, a); err != nil {
		if errors.Is(err, application.ErrAlreadyApplied) {
			return application.Application{}, application.ErrAlreadyApplied
		}
		return application.Application{}, ErrInternal
	}
	return a, nil
}

// SetStatus persists any of the four states for an authorized reviewer and
// notifies the applicant. Notification failure never rolls the change back.
func (u *Applications) SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) error {
	row, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.ErrNotFound
		}
		return ErrInternal
	}

	if !application.ValidStatus(status) {
		return ErrInvalidInput
	}

	if err := u.requireReviewer(ctx, actor, row.CompanyID); err != nil {
		return err
	}

	if err := u.apps.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return application.ErrNotFound
		}
		return ErrInternal
	}

	mailer.Dispatch(u.logger, "application_status", func(ctx context.Context) error {
		return u.notifier.SendApplicationStatus(ctx, row.Email, row.JobTitle, status)
	})
	ws.NotifyApplicationStatus(row.UserID, row.ID, row.JobTitle, status)
	return nil
}

func (u *Applications) Get(ctx context.Context, actor Actor, id uuid.UUID) (repository.ApplicationRow, error) {
	row, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, application.ErrNotFound) {
			return repository.ApplicationRow{}, application.ErrNotFound
		}
		return repository.ApplicationRow{}, ErrInternal
	}

	if row.UserID != actor.ID {
		if err := u.requireReviewer(ctx, actor, row.CompanyID); err != nil {
			return repository.ApplicationRow{}, err
		}
	}
	return row, nil
}

func (u *Applications) HasApplied(ctx context.Context, actor Actor, jobID uuid.UUID) (bool, error) {
	exists, err := u.apps.Exists(ctx, jobID, actor.ID)
	if err != nil {
		return false, ErrInternal
	}
	return exists, nil
}

func (u *Applications) ListByUser(ctx context.Context, actor Actor, userID uuid.UUID, p repository.Pagination) ([]repository.ApplicationRow, int, error) {
	if actor.ID != userID && !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	items, total, err := u.apps.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Applications) ListByCompany(ctx context.Context, actor Actor, companyID uuid.UUID, f repository.ApplicationFilter) ([]repository.ApplicationRow, int, error) {
	if err := u.requireReviewer(ctx, actor, companyID); err != nil {
		return nil, 0, err
	}
	items, total, err := u.apps.ListByCompany(ctx, companyID, f)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Applications) WeeklyStats(ctx context.Context, actor Actor, companyID uuid.UUID) ([]repository.DailyStatusCount, error) {
	if err := u.requireReviewer(ctx, actor, companyID); err != nil {
		return nil, err
	}
	out, err := u.apps.WeeklyStats(ctx, companyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// requireReviewer: OWNER and REVIEWER both may act on a company's
// applications; admins pass.
func (u *Applications) requireReviewer(ctx context.Context, actor Actor, companyID uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}
	m, err := u.companies.GetMemberByUser(ctx, companyID, actor.ID)
	if err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			return ErrForbidden
		}
		return ErrInternal
	}
	if m.Role != company.MemberRoleOwner && m.Role != company.MemberRoleReviewer {
		return ErrForbidden
	}
	return nil
}
