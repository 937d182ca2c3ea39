package usecase

import (
	"context"
	"errors"

	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserUpdateInput struct {
	Fullname *string
	Gender   *string
}

type UserUsecase interface {
	Get(ctx context.Context, id uuid.UUID) (user.User, error)
	List(ctx context.Context, actor Actor, p repository.Pagination) ([]user.User, int, error)
	Update(ctx context.Context, actor Actor, id uuid.UUID, in UserUpdateInput) (user.User, error)
	ChangePassword(ctx context.Context, actor Actor, id uuid.UUID, current, next string) error
	Delete(ctx context.Context, actor Actor, id uuid.UUID) error
	ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID) (user.User, error)
	UploadAvatar(ctx context.Context, actor Actor, id uuid.UUID, localPath string) (string, error)
	UploadResume(ctx context.Context, actor Actor, id uuid.UUID, localPath string) (string, error)
	ReplaceSkills(ctx context.Context, actor Actor, id uuid.UUID, skillIDs []uuid.UUID) ([]uuid.UUID, error)
}

type Users struct {
	users repository.UserRepository
	store storage.ObjectStore
}

func NewUserUsecase(users repository.UserRepository, store storage.ObjectStore) *Users {
	return &Users{users: users, store: store}
}

func (u *Users) Get(ctx context.Context, id uuid.UUID) (user.User, error) {
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return usr.Sanitized(), nil
}

func (u *Users) List(ctx context.Context, actor Actor, p repository.Pagination) ([]user.User, int, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrForbidden
	}
	items, total, err := u.users.List(ctx, p)
	if err != nil {
		return nil, 0, ErrInternal
	}
	out := make([]user.User, 0, len(items))
	for _, it := range items {
		out = append(out, it.Sanitized())
	}
	return out, total, nil
}

// Update allows the user themselves or an admin.
func (u *Users) Update(ctx context.Context, actor Actor, id uuid.UUID, in UserUpdateInput) (user.User, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return user.User{}, ErrForbidden
	}

	err := u.users.Update(ctx, id, repository.UserUpdate{
		Fullname: in.Fullname,
		Gender:   in.Gender,
	})
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}
	return u.Get(ctx, id)
}

// ReplaceSkills swaps the profile's skill list, self or admin. Duplicate ids
// collapse to one entry.
func (u *Users) ReplaceSkills(ctx context.Context, actor Actor, id uuid.UUID, skillIDs []uuid.UUID) ([]uuid.UUID, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if _, err := u.users.GetByID(ctx, id); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, ErrInternal
	}

	seen := make(map[uuid.UUID]bool, len(skillIDs))
	unique := make([]uuid.UUID, 0, len(skillIDs))
	for _, sid := range skillIDs {
		if sid == uuid.Nil || seen[sid] {
			continue
		}
		seen[sid] = true
		unique = append(unique, sid)
	}

	if err := u.users.ReplaceSkills(ctx, id, unique); err != nil {
		if errors.Is(err, taxonomy.ErrNotFound) {
			return nil, taxonomy.ErrNotFound
		}
		return nil, ErrInternal
	}
	return unique, nil
}

// ChangePassword allows self or admin; only a self-change must present the
// current password.
func (u *Users) ChangePassword(ctx context.Context, actor Actor, id uuid.UUID, current, next string) error {
	if actor.ID != id && !actor.IsAdmin() {
		return ErrForbidden
	}
	if !validPassword(next) {
		return ErrInvalidInput
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return ErrInternal
	}

	if actor.ID == id {
		if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(current)); err != nil {
			return ErrInvalidCredentials
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return ErrInternal
	}
	if err := u.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return ErrInternal
	}
	return nil
}

// Delete is self-service only. Admins block accounts instead of deleting
// them, so there is deliberately no admin bypass here.
func (u *Users) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if actor.ID != id {
		return ErrForbidden
	}
	err := u.users.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.ErrNotFound
		}
		return ErrInternal
	}
	return nil
}

// ChangeStatus is admin-only and toggles ACTIVE and BLOCKED.
func (u *Users) ChangeStatus(ctx context.Context, actor Actor, id uuid.UUID) (user.User, error) {
	if !actor.IsAdmin() {
		return user.User{}, ErrForbidden
	}

	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, ErrInternal
	}

	next := usr.ToggledStatus()
	if err := u.users.UpdateStatus(ctx, id, next); err != nil {
		return user.User{}, ErrInternal
	}
	usr.Status = next
	return usr.Sanitized(), nil
}

func (u *Users) UploadAvatar(ctx context.Context, actor Actor, id uuid.UUID, localPath string) (string, error) {
	return u.upload(ctx, actor, id, localPath, true)
}

func (u *Users) UploadResume(ctx context.Context, actor Actor, id uuid.UUID, localPath string) (string, error) {
	return u.upload(ctx, actor, id, localPath, false)
}

func (u *Users) upload(ctx context.Context, actor Actor, id uuid.UUID, localPath string, avatar bool) (string, error) {
	if actor.ID != id && !actor.IsAdmin() {
		return "", ErrForbidden
	}

	url, err := u.store.Transfer(ctx, localPath)
	if err != nil {
		return "", ErrInternal
	}

	upd := repository.UserUpdate{}
	if avatar {
		upd.AvatarURL = &url
	} else {
		upd.ResumeURL = &url
	}
	if err := u.users.Update(ctx, id, upd); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", user.ErrNotFound
		}
		return "", ErrInternal
	}
	return url, nil
}
