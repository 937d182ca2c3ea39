package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/verification"
	"jobboard/internal/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

func newAuth(users *mockUsers, codes verification.Store) *Auth {
	return NewAuthUsecase(users, codes, &mockNotifier{}, jwt.NewHMACService("test-secret", time.Hour), discardLogger())
}

func TestAuth_Signup_EmailTaken(t *testing.T) {
	uc := newAuth(&mockUsers{emailExists: true}, verification.NewMemoryStore())

	err := uc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, user.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuth_Signup_ShortPassword(t *testing.T) {
	uc := newAuth(&mockUsers{}, verification.NewMemoryStore())

	err := uc.Signup(context.Background(), SignupInput{
		Fullname: "Jane Doe",
		Email:    "jane@example.com",
		Password: "short",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuth_Verify_CreatesUser(t *testing.T) {
	users := &mockUsers{}
	codes := verification.NewMemoryStore()
	uc := newAuth(users, codes)

	in := SignupInput{
		Fullname: "Jane Doe",
		Email:    "Jane@Example.com",
		Password: "secret123",
	}
	if err := uc.Signup(context.Background(), in); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	code, ok, err := codes.Get(context.Background(), "jane@example.com")
	if err != nil || !ok {
		t.Fatalf("expected stored code, ok=%v err=%v", ok, err)
	}

	created, err := uc.Verify(context.Background(), VerifyInput{SignupInput: in, Code: code})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if created.Email != "jane@example.com" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if created.Role != user.RoleCandidate {
		t.Fatalf("expected default CANDIDATE role, got %s", created.Role)
	}
	if created.PasswordHash != "" {
		t.Fatalf("verify must return a sanitized user")
	}
	if len(users.created) != 1 {
		t.Fatalf("expected 1 user, got %d", len(users.created))
	}

	// code is single use
	if _, ok, _ := codes.Get(context.Background(), "jane@example.com"); ok {
		t.Fatalf("code must be consumed on verify")
	}
}

func TestAuth_Verify_WrongCode(t *testing.T) {
	users := &mockUsers{}
	codes := verification.NewMemoryStore()
	uc := newAuth(users, codes)

	in := SignupInput{Fullname: "Jane Doe", Email: "jane@example.com", Password: "secret123"}
	if err := uc.Signup(context.Background(), in); err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	_, err := uc.Verify(context.Background(), VerifyInput{SignupInput: in, Code: "000000x"})
	if !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode, got %v", err)
	}
	if len(users.created) != 0 {
		t.Fatalf("wrong code must not create a user")
	}
}

func TestAuth_Login_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := user.User{
		Email:        "jane@example.com",
		PasswordHash: string(hash),
		Role:         user.RoleCandidate,
		Status:       user.StatusActive,
	}
	uc := newAuth(&mockUsers{byEmail: map[string]user.User{u.Email: u}}, verification.NewMemoryStore())

	profile, token, err := uc.Login(context.Background(), "Jane@Example.com", "secret123")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if profile.User.PasswordHash != "" {
		t.Fatalf("login must return a sanitized user")
	}
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := user.User{Email: "jane@example.com", PasswordHash: string(hash), Status: user.StatusActive}
	uc := newAuth(&mockUsers{byEmail: map[string]user.User{u.Email: u}}, verification.NewMemoryStore())

	_, _, err := uc.Login(context.Background(), u.Email, "wrong-password")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuth_Login_Blocked(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := user.User{Email: "jane@example.com", PasswordHash: string(hash), Status: user.StatusBlocked}
	uc := newAuth(&mockUsers{byEmail: map[string]user.User{u.Email: u}}, verification.NewMemoryStore())

	_, _, err := uc.Login(context.Background(), u.Email, "secret123")
	if !errors.Is(err, ErrAccountBlocked) {
		t.Fatalf("expected ErrAccountBlocked, got %v", err)
	}
}

func TestAuth_Login_UnknownEmail(t *testing.T) {
	uc := newAuth(&mockUsers{}, verification.NewMemoryStore())

	_, _, err := uc.Login(context.Background(), "nobody@example.com", "secret123")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
