package usecase

import (
	"context"
	"errors"
	"log"
	"testing"

	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

func discardLogger() *log.Logger {
	return log.New(discard{}, "", 0)
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func newApplications(apps *mockApplications, jobs *mockJobs, companies *mockCompanies, store *mockStore) *Applications {
	return NewApplicationUsecase(apps, jobs, companies, store, &mockNotifier{}, discardLogger())
}

func TestApplications_Apply_Success(t *testing.T) {
	jobID := uuid.New()
	apps := &mockApplications{}
	jobs := &mockJobs{byID: map[uuid.UUID]repository.JobRow{jobID: {}}}
	uc := newApplications(apps, jobs, &mockCompanies{}, &mockStore{})

	actor := Actor{ID: uuid.New()}
	created, err := uc.Apply(context.Background(), actor, ApplyInput{
		JobID:     jobID,
		ResumeURL: "https://cdn.example.com/resume.pdf",
		Fullname:  "  Jane Doe  ",
		Email:     "jane@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != application.StatusPending {
		t.Fatalf("expected PENDING, got %s", created.Status)
	}
	if created.Fullname != "Jane Doe" {
		t.Fatalf("expected trimmed fullname, got %q", created.Fullname)
	}
	if len(apps.created) != 1 {
		t.Fatalf("expected 1 created row, got %d", len(apps.created))
	}
}

func TestApplications_Apply_Duplicate(t *testing.T) {
	jobID := uuid.New()
	apps := &mockApplications{exists: true}
	jobs := &mockJobs{byID: map[uuid.UUID]repository.JobRow{jobID: {}}}
	uc := newApplications(apps, jobs, &mockCompanies{}, &mockStore{})

	_, err := uc.Apply(context.Background(), Actor{ID: uuid.New()}, ApplyInput{
		JobID:     jobID,
		ResumeURL: "https://cdn.example.com/resume.pdf",
		Fullname:  "Jane Doe",
		Email:     "jane@example.com",
	})
	if !errors.Is(err, application.ErrAlreadyApplied) {
		t.Fatalf("expected ErrAlreadyApplied, got %v", err)
	}
	if len(apps.created) != 0 {
		t.Fatalf("duplicate apply must not create a row")
	}
}

func TestApplications_Apply_ResumeFileWins(t *testing.T) {
	jobID := uuid.New()
	apps := &mockApplications{}
	jobs := &mockJobs{byID: map[uuid.UUID]repository.JobRow{jobID: {}}}
	store := &mockStore{url: "https://cdn.example.com/uploaded.pdf"}
	uc := newApplications(apps, jobs, &mockCompanies{}, store)

	created, err := uc.Apply(context.Background(), Actor{ID: uuid.New()}, ApplyInput{
		JobID:      jobID,
		ResumeURL:  "https://cdn.example.com/stale.pdf",
		ResumePath: "/tmp/upload-123",
		Fullname:   "Jane Doe",
		Email:      "jane@example.com",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.ResumeURL != "https://cdn.example.com/uploaded.pdf" {
		t.Fatalf("expected transferred url, got %q", created.ResumeURL)
	}
	if len(store.transferred) != 1 {
		t.Fatalf("expected one transfer")
	}
}

func TestApplications_Apply_MissingResume(t *testing.T) {
	jobID := uuid.New()
	jobs := &mockJobs{byID: map[uuid.UUID]repository.JobRow{jobID: {}}}
	uc := newApplications(&mockApplications{}, jobs, &mockCompanies{}, &mockStore{})

	_, err := uc.Apply(context.Background(), Actor{ID: uuid.New()}, ApplyInput{
		JobID:    jobID,
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestApplications_SetStatus_InvalidStatus(t *testing.T) {
	appID := uuid.New()
	apps := &mockApplications{byID: map[uuid.UUID]repository.ApplicationRow{appID: {}}}
	uc := newApplications(apps, &mockJobs{}, &mockCompanies{}, &mockStore{})

	err := uc.SetStatus(context.Background(), Actor{ID: uuid.New()}, appID, "ARCHIVED")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if len(apps.statusUpdates) != 0 {
		t.Fatalf("invalid status must leave the row unchanged")
	}
}

func TestApplications_SetStatus_Forbidden(t *testing.T) {
	appID := uuid.New()
	companyID := uuid.New()
	apps := &mockApplications{byID: map[uuid.UUID]repository.ApplicationRow{appID: {CompanyID: companyID}}}
	uc := newApplications(apps, &mockJobs{}, &mockCompanies{members: map[memberKey]company.Member{}}, &mockStore{})

	err := uc.SetStatus(context.Background(), Actor{ID: uuid.New()}, appID, application.StatusAccepted)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(apps.statusUpdates) != 0 {
		t.Fatalf("forbidden caller must not change the row")
	}
}

func TestApplications_SetStatus_Reviewer(t *testing.T) {
	appID := uuid.New()
	companyID := uuid.New()
	reviewer := uuid.New()
	apps := &mockApplications{byID: map[uuid.UUID]repository.ApplicationRow{appID: {CompanyID: companyID}}}
	companies := &mockCompanies{members: map[memberKey]company.Member{
		{companyID: companyID, userID: reviewer}: {
			ID: uuid.New(), UserID: reviewer, CompanyID: companyID, Role: company.MemberRoleReviewer,
		},
	}}
	uc := newApplications(apps, &mockJobs{}, companies, &mockStore{})

	if err := uc.SetStatus(context.Background(), Actor{ID: reviewer}, appID, application.StatusAccepted); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(apps.statusUpdates) != 1 || apps.statusUpdates[0] != application.StatusAccepted {
		t.Fatalf("expected one ACCEPTED update, got %v", apps.statusUpdates)
	}
}

func TestApplications_ListByUser_SelfOnly(t *testing.T) {
	uc := newApplications(&mockApplications{}, &mockJobs{}, &mockCompanies{}, &mockStore{})

	_, _, err := uc.ListByUser(context.Background(), Actor{ID: uuid.New()}, uuid.New(), repository.Pagination{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
