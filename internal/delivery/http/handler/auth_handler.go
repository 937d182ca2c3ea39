package handler

import (
	"time"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AuthHandler struct {
	uc  usecase.AuthUsecase
	jwt jwt.Service
}

func NewAuthHandler(uc usecase.AuthUsecase, jwtSvc jwt.Service) *AuthHandler {
	return &AuthHandler{uc: uc, jwt: jwtSvc}
}

type signupRequest struct {
	Fullname string `json:"fullname" validate:"required,min=1,max=100"`
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Gender   string `json:"gender"   validate:"omitempty,max=20"`
	Role     string `json:"role"     validate:"omitempty,oneof=RECRUITER CANDIDATE"`
}

type verifyRequest struct {
	signupRequest
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Gender    string    `json:"gender"`
	Status    string    `json:"status"`
	AvatarURL *string   `json:"avatarUrl"`
	ResumeURL *string   `json:"resumeUrl"`
}

type profileResponse struct {
	userResponse
	SkillIDs       []uuid.UUID `json:"skillIds"`
	ApplicationIDs []uuid.UUID `json:"applicationIds"`
	SavedJobIDs    []uuid.UUID `json:"savedJobIds"`
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/signup", h.Signup)
	r.Post("/verify", h.Verify)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) Signup(c fiber.Ctx) error {
	var req signupRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	err := h.uc.Signup(c.Context(), usecase.SignupInput{
		Fullname: req.Fullname,
		Email:    req.Email,
		Password: req.Password,
		Gender:   req.Gender,
		Role:     req.Role,
	})
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Verification code sent", nil)
}

func (h *AuthHandler) Verify(c fiber.Ctx) error {
	var req verifyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	usr, err := h.uc.Verify(c.Context(), usecase.VerifyInput{
		SignupInput: usecase.SignupInput{
			Fullname: req.Fullname,
			Email:    req.Email,
			Password: req.Password,
			Gender:   req.Gender,
			Role:     req.Role,
		},
		Code: req.Code,
	})
	if err != nil {
		return httpError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Account created", userResponse{
		ID: usr.ID, Fullname: usr.Fullname, Email: usr.Email, Role: usr.Role,
		Gender: usr.Gender, Status: usr.Status, AvatarURL: usr.AvatarURL, ResumeURL: usr.ResumeURL,
	})
}

func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	profile, token, err := h.uc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return httpError(err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.jwt.ExpiresIn()),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	usr := profile.User
	return response.Success(c, fiber.StatusOK, "Logged in", profileResponse{
		userResponse: userResponse{
			ID: usr.ID, Fullname: usr.Fullname, Email: usr.Email, Role: usr.Role,
			Gender: usr.Gender, Status: usr.Status, AvatarURL: usr.AvatarURL, ResumeURL: usr.ResumeURL,
		},
		SkillIDs:       profile.SkillIDs,
		ApplicationIDs: profile.ApplicationIDs,
		SavedJobIDs:    profile.SavedJobIDs,
	})
}

func (h *AuthHandler) Logout(c fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Path:     "/",
	})
	return response.Success(c, fiber.StatusOK, "Logged out", nil)
}
