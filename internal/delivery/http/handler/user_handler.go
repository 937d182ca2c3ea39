package handler

import (
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/user"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc usecase.UserUsecase
}

func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type updateUserRequest struct {
	Fullname *string `json:"fullname" validate:"omitempty,min=1,max=100"`
	Gender   *string `json:"gender"   validate:"omitempty,max=20"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"omitempty"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8,max=128"`
}

type replaceSkillsRequest struct {
	SkillIDs []string `json:"skillIds" validate:"required,dive,uuid"`
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Put("/:id", h.Update)
	r.Put("/:id/password", h.ChangePassword)
	r.Put("/:id/status", h.ChangeStatus)
	r.Put("/:id/skills", h.ReplaceSkills)
	r.Post("/:id/avatar", h.UploadAvatar)
	r.Post("/:id/resume", h.UploadResume)
	r.Delete("/:id", h.Delete)
}

func (h *UserHandler) List(c fiber.Ctx) error {
	p := pagination(c)
	items, total, err := h.uc.List(c.Context(), actorFromCtx(c), p)
	if err != nil {
		return httpError(err)
	}

	out := make([]userResponse, 0, len(items))
	for _, u := range items {
		out = append(out, toUserResponse(u))
	}
	return response.Page(c, out, p.Page, p.Size, total)
}

func (h *UserHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	usr, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toUserResponse(usr))
}

func (h *UserHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	usr, err := h.uc.Update(c.Context(), actorFromCtx(c), id, usecase.UserUpdateInput{
		Fullname: req.Fullname,
		Gender:   req.Gender,
	})
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "User updated", toUserResponse(usr))
}

func (h *UserHandler) ChangePassword(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.ChangePassword(c.Context(), actorFromCtx(c), id, req.CurrentPassword, req.NewPassword); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Password changed", nil)
}

// ReplaceSkills swaps the profile's whole skill list for the submitted one.
func (h *UserHandler) ReplaceSkills(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req replaceSkillsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	ids := make([]uuid.UUID, 0, len(req.SkillIDs))
	for _, s := range req.SkillIDs {
		ids = append(ids, uuid.MustParse(s))
	}

	stored, err := h.uc.ReplaceSkills(c.Context(), actorFromCtx(c), id, ids)
	if err != nil {
		return httpError(err)
	}

	out := make([]string, 0, len(stored))
	for _, sid := range stored {
		out = append(out, sid.String())
	}
	return response.Success(c, fiber.StatusOK, "Skills updated", fiber.Map{"skillIds": out})
}

func (h *UserHandler) ChangeStatus(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	usr, err := h.uc.ChangeStatus(c.Context(), actorFromCtx(c), id)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status changed", toUserResponse(usr))
}

func (h *UserHandler) UploadAvatar(c fiber.Ctx) error {
	return h.upload(c, true)
}

func (h *UserHandler) UploadResume(c fiber.Ctx) error {
	return h.upload(c, false)
}

func (h *UserHandler) upload(c fiber.Ctx, avatar bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	field := "resume"
	if avatar {
		field = "avatar"
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "missing file", nil, err)
	}

	path, err := saveTempFile(c, fh)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}

	var url string
	if avatar {
		url, err = h.uc.UploadAvatar(c.Context(), actorFromCtx(c), id, path)
	} else {
		url, err = h.uc.UploadResume(c.Context(), actorFromCtx(c), id, path)
	}
	if err != nil {
		removeTempFiles(path)
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "File uploaded", fiber.Map{"url": url})
}

func (h *UserHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "User deleted", nil)
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID: u.ID, Fullname: u.Fullname, Email: u.Email, Role: u.Role,
		Gender: u.Gender, Status: u.Status, AvatarURL: u.AvatarURL, ResumeURL: u.ResumeURL,
	}
}
