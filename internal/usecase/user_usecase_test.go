package usecase

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/domain/user"
	"jobboard/internal/repository"

	"github.com/google/uuid"
)

func TestUsers_ChangeStatus_TogglesTwice(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id, Status: user.StatusActive}}}
	uc := NewUserUsecase(users, &mockStore{})

	admin := Actor{ID: uuid.New(), Role: user.RoleAdmin}

	first, err := uc.ChangeStatus(context.Background(), admin, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Status != user.StatusBlocked {
		t.Fatalf("expected BLOCKED after first toggle, got %s", first.Status)
	}

	users.byID[id] = user.User{ID: id, Status: first.Status}
	second, err := uc.ChangeStatus(context.Background(), admin, id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Status != user.StatusActive {
		t.Fatalf("two toggles must return to the original status, got %s", second.Status)
	}
}

func TestUsers_ChangeStatus_AdminOnly(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id, Status: user.StatusActive}}}
	uc := NewUserUsecase(users, &mockStore{})

	_, err := uc.ChangeStatus(context.Background(), Actor{ID: id, Role: user.RoleCandidate}, id)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUsers_Delete_NoAdminBypass(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id}}}
	uc := NewUserUsecase(users, &mockStore{})

	err := uc.Delete(context.Background(), Actor{ID: uuid.New(), Role: user.RoleAdmin}, id)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("delete must stay self-only, got %v", err)
	}
	if len(users.deleted) != 0 {
		t.Fatalf("forbidden delete must not remove the user")
	}
}

func TestUsers_Delete_Self(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id}}}
	uc := NewUserUsecase(users, &mockStore{})

	if err := uc.Delete(context.Background(), Actor{ID: id}, id); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(users.deleted) != 1 {
		t.Fatalf("expected 1 delete, got %d", len(users.deleted))
	}
}

func TestUsers_Get_Sanitizes(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id, PasswordHash: "hash"}}}
	uc := NewUserUsecase(users, &mockStore{})

	got, err := uc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.PasswordHash != "" {
		t.Fatalf("get must never expose the password hash")
	}
}

func TestUsers_List_AdminOnly(t *testing.T) {
	uc := NewUserUsecase(&mockUsers{}, &mockStore{})

	_, _, err := uc.List(context.Background(), Actor{ID: uuid.New()}, repository.Pagination{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUsers_ReplaceSkills_SelfOnly(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id}}}
	uc := NewUserUsecase(users, &mockStore{})

	_, err := uc.ReplaceSkills(context.Background(), Actor{ID: uuid.New()}, id, []uuid.UUID{uuid.New()})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(users.replacedSkills) != 0 {
		t.Fatalf("forbidden caller must not touch the skill set")
	}
}

func TestUsers_ReplaceSkills_Dedupes(t *testing.T) {
	id := uuid.New()
	users := &mockUsers{byID: map[uuid.UUID]user.User{id: {ID: id}}}
	uc := NewUserUsecase(users, &mockStore{})

	skill := uuid.New()
	stored, err := uc.ReplaceSkills(context.Background(), Actor{ID: id}, id,
		[]uuid.UUID{skill, skill, uuid.Nil})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(stored) != 1 || stored[0] != skill {
		t.Fatalf("expected the one unique skill id, got %v", stored)
	}
	if len(users.replacedSkills) != 1 || len(users.replacedSkills[0]) != 1 {
		t.Fatalf("repository must receive the deduplicated set")
	}
}

func TestUsers_ReplaceSkills_UnknownUser(t *testing.T) {
	users := &mockUsers{}
	uc := NewUserUsecase(users, &mockStore{})

	id := uuid.New()
	_, err := uc.ReplaceSkills(context.Background(), Actor{ID: id}, id, nil)
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
