package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"jobboard/internal/domain/user"
	"jobboard/internal/infrastructure/mailer"
	"jobboard/internal/infrastructure/verification"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidCode        = errors.New("invalid or expired verification code")
	ErrAccountBlocked     = errors.New("account is blocked")
)

type SignupInput struct {
	Fullname string
	Email    string
	Password string
	Gender   string
	Role     string
}

type VerifyInput struct {
	SignupInput
	Code string
}

// Profile is the sanitized login payload: the user plus flattened relation ids.
type Profile struct {
	User           user.User
	SkillIDs       []uuid.UUID
	ApplicationIDs []uuid.UUID
	SavedJobIDs    []uuid.UUID
}

type AuthUsecase interface {
	Signup(ctx context.Context, in SignupInput) error
	Verify(ctx context.Context, in VerifyInput) (user.User, error)
	Login(ctx context.Context, email, password string) (Profile, string, error)
}

type Auth struct {
	users    repository.UserRepository
	codes    verification.Store
	notifier mailer.Notifier
	jwt      jwt.Service
	logger   *log.Logger
}

func NewAuthUsecase(users repository.UserRepository, codes verification.Store, notifier mailer.Notifier, jwtSvc jwt.Service, logger *log.Logger) *Auth {
	return &Auth{users: users, codes: codes, notifier: notifier, jwt: jwtSvc, logger: logger}
}

// Signup validates the payload, stores a fresh 6-digit code for the email
// (overwriting any earlier one), and mails it. No user row is created yet.
func (u *Auth) Signup(ctx context.Context, in SignupInput) error {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Fullname) == "" {
		return ErrInvalidInput
	}
	if !validPassword(in.Password) {
		return ErrInvalidInput
	}
	if in.Role != "" && !user.ValidRole(in.Role) {
		return ErrInvalidInput
	}

	exists, err := u.users.ExistsByEmail(ctx, email)
	if err != nil {
		return ErrInternal
	}
	if exists {
		return user.ErrEmailTaken
	}

	code, err := verification.GenerateCode()
	if err != nil {
		return ErrInternal
	}
	if err := u.codes.Put(ctx, email, code, verification.CodeTTL); err != nil {
		return ErrInternal
	}

	mailer.Dispatch(u.logger, "verification_code", func(ctx context.Context) error {
		return u.notifier.SendVerificationCode(ctx, email, code)
	})
	return nil
}

// Verify checks the stored code, hashes the password, and creates the user.
// The code is consumed on success.
func (u *Auth) Verify(ctx context.Context, in VerifyInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || strings.TrimSpace(in.Code) == "" {
		return user.User{}, ErrInvalidInput
	}
	if !validPassword(in.Password) {
		return user.User{}, ErrInvalidInput
	}

	stored, ok, err := u.codes.Get(ctx, email)
	if err != nil {
		return user.User{}, ErrInternal
	}
	if !ok || subtle.ConstantTimeCompare([]byte(stored), []byte(in.Code)) != 1 {
		return user.User{}, ErrInvalidCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, ErrInternal
	}

	role := in.Role
	if role == "" {
		role = user.RoleCandidate
	}

	usr := user.User{
		ID:           uuid.New(),
		Fullname:     strings.TrimSpace(in.Fullname),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Gender:       strings.TrimSpace(in.Gender),
		Status:       user.StatusActive,
	}

	if err := u.users.Create(ctx, usr); err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return user.User{}, user.ErrEmailTaken
		}
		return user.User{}, ErrInternal
	}

	_ = u.codes.Delete(ctx, email)
	return usr.Sanitized(), nil
}

func (u *Auth) Login(ctx context.Context, email, password string) (Profile, string, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Profile{}, "", ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return Profile{}, "", ErrInvalidCredentials
		}
		return Profile{}, "", ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)); err != nil {
		return Profile{}, "", ErrInvalidCredentials
	}

	if usr.Status == user.StatusBlocked {
		return Profile{}, "", ErrAccountBlocked
	}

	token, err := u.jwt.GenerateToken(usr.ID, usr.Email, usr.Role)
	if err != nil {
		return Profile{}, "", ErrInternal
	}

	ids, err := u.users.ProfileIDs(ctx, usr.ID)
	if err != nil {
		return Profile{}, "", ErrInternal
	}

	return Profile{
		User:           usr.Sanitized(),
		SkillIDs:       ids.SkillIDs,
		ApplicationIDs: ids.ApplicationIDs,
		SavedJobIDs:    ids.SavedJobIDs,
	}, token, nil
}

func normalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	return strings.ToLower(email)
}

func validPassword(pw string) bool {
	return len(strings.TrimSpace(pw)) >= 8
}
