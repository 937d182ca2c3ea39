package usecase

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/user"

	"github.com/google/uuid"
)

func TestCompanies_Create_Success(t *testing.T) {
	companies := &mockCompanies{}
	uc := NewCompanyUsecase(companies, &mockUsers{}, &mockStore{}, discardLogger())

	owner := uuid.New()
	created, err := uc.Create(context.Background(), Actor{ID: owner}, CompanyCreateInput{
		Name:     "Acme",
		Location: "Jakarta",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != company.StatusPending {
		t.Fatalf("expected PENDING, got %s", created.Status)
	}
	if created.OwnerID != owner {
		t.Fatalf("owner must be the creator")
	}
	if len(companies.created) != 1 {
		t.Fatalf("expected 1 company, got %d", len(companies.created))
	}
}

func TestCompanies_Create_DuplicateName(t *testing.T) {
	companies := &mockCompanies{nameExists: true}
	uc := NewCompanyUsecase(companies, &mockUsers{}, &mockStore{}, discardLogger())

	_, err := uc.Create(context.Background(), Actor{ID: uuid.New()}, CompanyCreateInput{
		Name:     "acme",
		Location: "Jakarta",
	})
	if !errors.Is(err, company.ErrNameTaken) {
		t.Fatalf("expected ErrNameTaken, got %v", err)
	}
	if len(companies.created) != 0 {
		t.Fatalf("duplicate name must not create a company")
	}
}

func TestCompanies_Create_GalleryFailureDropped(t *testing.T) {
	companies := &mockCompanies{}
	store := &mockStore{err: errors.New("upload failed")}
	uc := NewCompanyUsecase(companies, &mockUsers{}, store, discardLogger())

	_, err := uc.Create(context.Background(), Actor{ID: uuid.New()}, CompanyCreateInput{
		Name:         "Acme",
		Location:     "Jakarta",
		GalleryPaths: []string{"/tmp/a.png", "/tmp/b.png"},
	})
	if err != nil {
		t.Fatalf("gallery failures must not fail the create, got %v", err)
	}
}

func TestCompanies_Hire_AdminTarget(t *testing.T) {
	companyID := uuid.New()
	owner := uuid.New()
	admin := user.User{ID: uuid.New(), Email: "admin@example.com", Role: user.RoleAdmin}

	companies := &mockCompanies{
		byID: map[uuid.UUID]company.Company{companyID: {ID: companyID}},
		members: map[memberKey]company.Member{
			{companyID: companyID, userID: owner}: {
				ID: uuid.New(), UserID: owner, CompanyID: companyID, Role: company.MemberRoleOwner,
			},
		},
	}
	users := &mockUsers{byEmail: map[string]user.User{admin.Email: admin}}
	uc := NewCompanyUsecase(companies, users, &mockStore{}, discardLogger())

	_, err := uc.Hire(context.Background(), Actor{ID: owner}, companyID, admin.Email)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(companies.insertedMembers) != 0 {
		t.Fatalf("hiring an admin must not create a membership")
	}
}

func TestCompanies_Hire_Success(t *testing.T) {
	companyID := uuid.New()
	owner := uuid.New()
	target := user.User{ID: uuid.New(), Email: "cand@example.com", Role: user.RoleCandidate}

	companies := &mockCompanies{
		byID: map[uuid.UUID]company.Company{companyID: {ID: companyID}},
		members: map[memberKey]company.Member{
			{companyID: companyID, userID: owner}: {
				ID: uuid.New(), UserID: owner, CompanyID: companyID, Role: company.MemberRoleOwner,
			},
		},
	}
	users := &mockUsers{byEmail: map[string]user.User{target.Email: target}}
	uc := NewCompanyUsecase(companies, users, &mockStore{}, discardLogger())

	res, err := uc.Hire(context.Background(), Actor{ID: owner}, companyID, target.Email)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Member.Role != company.MemberRoleReviewer {
		t.Fatalf("new member must be REVIEWER, got %s", res.Member.Role)
	}
	if res.User.Role != user.RoleRecruiter {
		t.Fatalf("hired user must be promoted to RECRUITER, got %s", res.User.Role)
	}
	if len(companies.insertedMembers) != 1 {
		t.Fatalf("expected 1 membership, got %d", len(companies.insertedMembers))
	}
}

func TestCompanies_Hire_ExistingMember(t *testing.T) {
	companyID := uuid.New()
	owner := uuid.New()
	target := user.User{ID: uuid.New(), Email: "rev@example.com", Role: user.RoleRecruiter}

	companies := &mockCompanies{
		byID: map[uuid.UUID]company.Company{companyID: {ID: companyID}},
		members: map[memberKey]company.Member{
			{companyID: companyID, userID: owner}: {
				ID: uuid.New(), UserID: owner, CompanyID: companyID, Role: company.MemberRoleOwner,
			},
			{companyID: companyID, userID: target.ID}: {
				ID: uuid.New(), UserID: target.ID, CompanyID: companyID, Role: company.MemberRoleReviewer,
			},
		},
	}
	users := &mockUsers{byEmail: map[string]user.User{target.Email: target}}
	uc := NewCompanyUsecase(companies, users, &mockStore{}, discardLogger())

	_, err := uc.Hire(context.Background(), Actor{ID: owner}, companyID, target.Email)
	if !errors.Is(err, company.ErrMemberExists) {
		t.Fatalf("expected ErrMemberExists, got %v", err)
	}
}

func TestCompanies_Hire_UnknownCompany(t *testing.T) {
	companies := &mockCompanies{}
	uc := NewCompanyUsecase(companies, &mockUsers{}, &mockStore{}, discardLogger())

	// The company is resolved before any membership check, so an outsider
	// sees NotFound rather than Forbidden.
	_, err := uc.Hire(context.Background(), Actor{ID: uuid.New()}, uuid.New(), "x@example.com")
	if !errors.Is(err, company.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if len(companies.insertedMembers) != 0 {
		t.Fatalf("unknown company must not create a membership")
	}
}

func TestCompanies_SetStatus_RequiresMembership(t *testing.T) {
	companyID := uuid.New()
	companies := &mockCompanies{byID: map[uuid.UUID]company.Company{companyID: {ID: companyID}}}
	uc := NewCompanyUsecase(companies, &mockUsers{}, &mockStore{}, discardLogger())

	err := uc.SetStatus(context.Background(), Actor{ID: uuid.New()}, companyID, company.StatusApproved)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCompanies_UpdateMemberRole_ReviewerDenied(t *testing.T) {
	companyID := uuid.New()
	reviewer := uuid.New()
	companies := &mockCompanies{
		byID: map[uuid.UUID]company.Company{companyID: {ID: companyID}},
		members: map[memberKey]company.Member{
			{companyID: companyID, userID: reviewer}: {
				ID: uuid.New(), UserID: reviewer, CompanyID: companyID, Role: company.MemberRoleReviewer,
			},
		},
	}
	uc := NewCompanyUsecase(companies, &mockUsers{}, &mockStore{}, discardLogger())

	err := uc.UpdateMemberRole(context.Background(), Actor{ID: reviewer}, companyID, uuid.New(), company.MemberRoleOwner)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
