package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"jobboard/internal/domain/company"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

type CompanyCreateInput struct {
	Name        string
	Location    string
	Description *string
	Website     *string
	SizeID      *uuid.UUID
	// GalleryPaths are local temp files uploaded alongside the form; each is
	// transferred best-effort.
	GalleryPaths []string
}

type CompanyUpdateInput struct {
	Name        *string
	Location    *string
	Description *string
	Website     *string
	SizeID      *uuid.UUID
	LogoPath    *string
}

type CompanyDetail struct {
	Company company.Company
	Images  []company.Image
}

type HireResult struct {
	Member company.Member
	User   user.User
}

type CompanyUsecase interface {
	Create(ctx context.Context, actor Actor, in CompanyCreateInput) (company.Company, error)
	Get(ctx context.Context, id uuid.UUID) (CompanyDetail, error)
	List(ctx context.Context, f repository.CompanyFilter) ([]company.Company, int, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in CompanyUpdateInput) (company.Company, error)
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) error
	Hire(ctx context.Context, actor Actor, companyID uuid.UUID, email string) (HireResult, error)
	ListMembers(ctx context.Context, actor Actor, companyID uuid.UUID) ([]company.Member, error)
	UpdateMemberRole(ctx context.Context, actor Actor, companyID, memberID uuid.UUID, role string) error
	DeleteMember(ctx context.Context, actor Actor, companyID, memberID uuid.UUID) error
}

type Companies struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	store     storage.ObjectStore
	logger    *log.Logger
}

func NewCompanyUsecase(companies repository.CompanyRepository, users repository.UserRepository, store storage.ObjectStore, logger *log.Logger) *Companies {
	return &Companies{companies: companies, users: users, store: store, logger: logger}
}

// Create inserts the company as PENDING with the creator as OWNER, then
// transfers gallery images in parallel. A failed image is logged and dropped;
// it never fails the create.
func (u *Companies) Create(ctx context.Context, actor Actor, in CompanyCreateInput) (company.Company, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || strings.TrimSpace(in.Location) == "" {
		return company.Company{}, ErrInvalidInput
	}

	exists, err := u.companies.ExistsByName(ctx, name)
	if err != nil {
		return company.Company{}, ErrInternal
	}
	if exists {
		return company.Company{}, company.ErrNameTaken
	}

	c := company.Company{
		ID:          uuid.New(),
		Name:        name,
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		Website:     in.Website,
		Status:      company.StatusPending,
		OwnerID:     actor.ID,
		SizeID:      in.SizeID,
	}

	if err := u.companies.CreateWithOwner(ctx, c); err != nil {
		if errors.Is(err, company.ErrNameTaken) {
			return company.Company{}, company.ErrNameTaken
		}
		return company.Company{}, ErrInternal
	}

	u.uploadGallery(ctx, c.ID, in.GalleryPaths)
	return c, nil
}

func (u *Companies) uploadGallery(ctx context.Context, companyID uuid.UUID, paths []string) {
	if len(paths) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, p := range paths {
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			url, err := u.store.Transfer(ctx, path)
			if err != nil {
				if u.logger != nil {
					u.logger.Printf("[Company] gallery upload dropped | company=%s error=%v", companyID, err)
				}
				return
			}
			img := company.Image{ID: uuid.New(), CompanyID: companyID, URL: url}
			if err := u.companies.InsertImage(ctx, img); err != nil && u.logger != nil {
				u.logger.Printf("[Company] gallery insert dropped | company=%s error=%v", companyID, err)
			}
		}(p)
	}
	wg.Wait()
}

func (u *Companies) Get(ctx context.Context, id uuid.UUID) (CompanyDetail, error) {
	c, err := u.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return CompanyDetail{}, company.ErrNotFound
		}
		return CompanyDetail{}, ErrInternal
	}

	imgs, err := u.companies.ListImages(ctx, id)
	if err != nil {
		return CompanyDetail{}, ErrInternal
	}
	return CompanyDetail{Company: c, Images: imgs}, nil
}

func (u *Companies) List(ctx context.Context, f repository.CompanyFilter) ([]company.Company, int, error) {
	items, total, err := u.companies.List(ctx, f)
	if err != nil {
		return nil, 0, ErrInternal
	}
	return items, total, nil
}

func (u *Companies) Update(ctx context.Context, actor Actor, id uuid.UUID, in CompanyUpdateInput) (company.Company, error) {
	if err := u.requireRole(ctx, actor, id, company.MemberRoleOwner); err != nil {
		return company.Company{}, err
	}

	upd := repository.CompanyUpdate{
		Name:        in.Name,
		Location:    in.Location,
		Description: in.Description,
		Website:     in.Website,
		SizeID:      in.SizeID,
	}

	if in.LogoPath != nil {
		url, err := u.store.Transfer(ctx, *in.LogoPath)
		if err != nil {
			if u.logger != nil {
				u.logger.Printf("[Company] logo upload dropped | company=%s error=%v", id, err)
			}
		} else {
			upd.LogoURL = &url
		}
	}

	if err := u.companies.Update(ctx, id, upd); err != nil {
		switch {
		case errors.Is(err, company.ErrNotFound):
			return company.Company{}, company.ErrNotFound
		case errors.Is(err, company.ErrNameTaken):
			return company.Company{}, company.ErrNameTaken
		}
		return company.Company{}, ErrInternal
	}
	return u.companies.GetByID(ctx, id)
}

func (u *Companies) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if err := u.requireRole(ctx, actor, id, company.MemberRoleOwner); err != nil {
		return err
	}
	err := u.companies.DeleteCascade(ctx, id)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

// SetStatus accepts any of the four company states; there is no transition
// graph. Reviewers may set it too.
func (u *Companies) SetStatus(ctx context.Context, actor Actor, id uuid.UUID, status string) error {
	if !company.ValidStatus(status) {
		return ErrInvalidInput
	}
	if err := u.requireRole(ctx, actor, id, company.MemberRoleOwner, company.MemberRoleReviewer); err != nil {
		return err
	}
	err := u.companies.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return company.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

// Hire brings a user on as REVIEWER and promotes their platform role to
// RECRUITER. Admin accounts cannot be hired.
func (u *Companies) Hire(ctx context.Context, actor Actor, companyID uuid.UUID, email string) (HireResult, error) {
	if _, err := u.companies.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, company.ErrNotFound) {
			return HireResult{}, company.ErrNotFound
		}
		return HireResult{}, ErrInternal
	}

	if err := u.requireRole(ctx, actor, companyID, company.MemberRoleOwner); err != nil {
		return HireResult{}, err
	}

	target, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return HireResult{}, user.ErrNotFound
		}
		return HireResult{}, ErrInternal
	}

	if target.Role == user.RoleAdmin {
		return HireResult{}, ErrForbidden
	}

	if _, err := u.companies.GetMemberByUser(ctx, companyID, target.ID); err == nil {
		return HireResult{}, company.ErrMemberExists
	} else if !errors.Is(err, company.ErrMemberNotFound) {
		return HireResult{}, ErrInternal
	}

	m := company.Member{
		ID:        uuid.New(),
		UserID:    target.ID,
		CompanyID: companyID,
		Role:      company.MemberRoleReviewer,
	}
	if err := u.companies.InsertMember(ctx, m); err != nil {
		if errors.Is(err, company.ErrMemberExists) {
			return HireResult{}, company.ErrMemberExists
		}
		return HireResult{}, ErrInternal
	}

	if err := u.users.UpdateRole(ctx, target.ID, user.RoleRecruiter); err != nil {
		return HireResult{}, ErrInternal
	}
	target.Role = user.RoleRecruiter

	return HireResult{Member: m, User: target.Sanitized()}, nil
}

func (u *Companies) ListMembers(ctx context.Context, actor Actor, companyID uuid.UUID) ([]company.Member, error) {
	if err := u.requireRole(ctx, actor, companyID, company.MemberRoleOwner, company.MemberRoleReviewer); err != nil {
		return nil, err
	}
	out, err := u.companies.ListMembers(ctx, companyID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Companies) UpdateMemberRole(ctx context.Context, actor Actor, companyID, memberID uuid.UUID, role string) error {
	if !company.ValidMemberRole(role) {
		return ErrInvalidInput
	}
	if err := u.requireRole(ctx, actor, companyID, company.MemberRoleOwner); err != nil {
		return err
	}

	if _, err := u.companies.GetMember(ctx, companyID, memberID); err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			return company.ErrMemberNotFound
		}
		return ErrInternal
	}
	if err := u.companies.UpdateMemberRole(ctx, companyID, memberID, role); err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			return company.ErrMemberNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *Companies) DeleteMember(ctx context.Context, actor Actor, companyID, memberID uuid.UUID) error {
	if err := u.requireRole(ctx, actor, companyID, company.MemberRoleOwner); err != nil {
		return err
	}
	err := u.companies.DeleteMember(ctx, companyID, memberID)
	if err != nil {
		if errors.Is(err, company.ErrMemberNotFound) {
			return company.ErrMemberNotFound
		}
		return ErrInternal
	}
	return nil
}

// requireRole lets an admin through, otherwise demands the actor hold one of
// the given member roles in the company.
func (u *Companies) requireRole(ctx context.Context, actor Actor, companyID uuid.UUID, roles ...string) error {
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
	for _, r := range roles {
		if m.Role == r {
			return nil
		}
	}
	return ErrForbidden
}
