package usecase

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

func TestSavedJobs_Save_Success(t *testing.T) {
	jobID := uuid.New()
	saved := &mockSavedJobs{}
	jobs := &mockJobs{byID: map[uuid.UUID]repository.JobRow{jobID: {}}}
	uc := NewSavedJobUsecase(saved, jobs)

	actor := Actor{ID: uuid.New()}
	s, err := uc.Save(context.Background(), actor, jobID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.UserID != actor.ID || s.JobID != jobID {
		t.Fatalf("saved row bound to wrong user or job")
	}
	if len(saved.created) != 1 {
		t.Fatalf("expected 1 saved row, got %d", len(saved.created))
	}
}

func TestSavedJobs_Save_Duplicate(t *testing.T) {
	jobID := uuid.New()
	saved := &mockSavedJobs{exists: true}
	jobs := &mockJobs{byID: map[uuid.UUID]repository.JobRow{jobID: {}}}
	uc := NewSavedJobUsecase(saved, jobs)

	_, err := uc.Save(context.Background(), Actor{ID: uuid.New()}, jobID)
	if !errors.Is(err, savedjob.ErrAlreadySaved) {
		t.Fatalf("expected ErrAlreadySaved, got %v", err)
	}
	if len(saved.created) != 0 {
		t.Fatalf("duplicate save must not create a row")
	}
}

func TestSavedJobs_Save_UnknownJob(t *testing.T) {
	uc := NewSavedJobUsecase(&mockSavedJobs{}, &mockJobs{})

	_, err := uc.Save(context.Background(), Actor{ID: uuid.New()}, uuid.New())
	if !errors.Is(err, job.ErrNotFound) {
		t.Fatalf("expected job.ErrNotFound, got %v", err)
	}
}

func TestSavedJobs_ListByUser_SelfOnly(t *testing.T) {
	uc := NewSavedJobUsecase(&mockSavedJobs{}, &mockJobs{})

	_, _, err := uc.ListByUser(context.Background(), Actor{ID: uuid.New()}, uuid.New(), repository.Pagination{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
