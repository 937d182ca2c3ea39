package usecase

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type SavedJobUsecase interface {
	Save(ctx context.Context, actor Actor, jobID uuid.UUID) (savedjob.SavedJob, error)
	Unsave(ctx context.Context, actor Actor, jobID uuid.UUID) error
	ListByUser(ctx context.Context, actor Actor, userID uuid.UUID, p repository.Pagination) ([]repository.SavedJobRow, int, error)
}

type SavedJobs struct {
	saved repository.SavedJobRepository
	jobs  repository.JobRepository

	now func() time.Time
}

func NewSavedJobUsecase(saved repository.SavedJobRepository, jobs repository.JobRepository) *SavedJobs {
	return &SavedJobs{saved: saved, jobs: jobs, now: time.Now}
}

// Save bookmarks a job once per user; saving again conflicts.
func (u *SavedJobs) Save(ctx context.Context, actor Actor, jobID uuid.UUID) (savedjob.SavedJob, error) {
	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return savedjob.SavedJob{}, job.ErrNotFound
		}
		return savedjob.SavedJob{}, ErrInternal
	}

	exists, err := u.saved.Exists(ctx, actor.ID, jobID)
	if err != nil {
		return savedjob.SavedJob{}, ErrInternal
	}
	if exists {
		return savedjob.SavedJob{}, savedjob.ErrAlreadySaved
	}

	s := savedjob.SavedJob{
		ID:      uuid.New(),
		UserID:  actor.ID,
		JobID:   jobID,
		SavedAt: u.now().UTC(),
	}
	if err := u.saved.Create(ctx, s); err != nil {
		if errors.Is(err, savedjob.ErrAlreadySaved) {
			return savedjob.SavedJob{}, savedjob.ErrAlreadySaved
		}
		return savedjob.SavedJob{}, ErrInternal
	}
	return s, nil
}

func (u *SavedJobs) Unsave(ctx context.Context, actor Actor, jobID uuid.UUID) error {
	err := u.saved.Delete(ctx, actor.ID, jobID)
	if err != nil {
		if errors.Is(err, savedjob.ErrNotFound) {
			return savedjob.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *SavedJobs) ListByUser(ctx context.Context, actor Actor, userID uuid.UUID, p repository.Pagination) ([]repository.SavedJobRow, int, error) {
	if actor.ID != userID && !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	items, total, err := u.saved.ListByUser(ctx, userID, p)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}
