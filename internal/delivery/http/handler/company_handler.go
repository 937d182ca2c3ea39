package handler

import (
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/company"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CompanyHandler struct {
	uc usecase.CompanyUsecase
}

func NewCompanyHandler(uc usecase.CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

type createCompanyRequest struct {
	Name        string  `form:"name"        json:"name"        validate:"required,min=1,max=150"`
	Location    string  `form:"location"    json:"location"    validate:"required,min=1,max=150"`
	Description *string `form:"description" json:"description" validate:"omitempty,max=5000"`
	Website     *string `form:"website"     json:"website"     validate:"omitempty,url,max=255"`
	SizeID      *string `form:"sizeId"      json:"sizeId"      validate:"omitempty,uuid"`
}

type updateCompanyRequest struct {
	Name        *string `form:"name"        json:"name"        validate:"omitempty,min=1,max=150"`
	Location    *string `form:"location"    json:"location"    validate:"omitempty,min=1,max=150"`
	Description *string `form:"description" json:"description" validate:"omitempty,max=5000"`
	Website     *string `form:"website"     json:"website"     validate:"omitempty,url,max=255"`
	SizeID      *string `form:"sizeId"      json:"sizeId"      validate:"omitempty,uuid"`
}

type companyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED BLOCKED"`
}

type hireRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type memberRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=OWNER REVIEWER"`
}

type companyResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Location    string     `json:"location"`
	Description *string    `json:"description"`
	Website     *string    `json:"website"`
	LogoURL     *string    `json:"logoUrl"`
	Status      string     `json:"status"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	SizeID      *uuid.UUID `json:"sizeId"`
}

type companyDetailResponse struct {
	companyResponse
	Images []string `json:"images"`
}

type memberResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	CompanyID uuid.UUID `json:"companyId"`
	Role      string    `json:"role"`
}

func (h *CompanyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/create", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
	r.Put("/:id/status", h.SetStatus)
	r.Post("/:id/hire", h.Hire)
	r.Get("/:id/members", h.ListMembers)
	r.Put("/:id/members/:memberId", h.UpdateMemberRole)
	r.Delete("/:id/members/:memberId", h.DeleteMember)
}

func (h *CompanyHandler) List(c fiber.Ctx) error {
	p := pagination(c)
	items, total, err := h.uc.List(c.Context(), repository.CompanyFilter{
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		Pagination: p,
	})
	if err != nil {
		return httpError(err)
	}

	out := make([]companyResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toCompanyResponse(it))
	}
	return response.Page(c, out, p.Page, p.Size, total)
}

func (h *CompanyHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return httpError(err)
	}

	imgs := make([]string, 0, len(detail.Images))
	for _, img := range detail.Images {
		imgs = append(imgs, img.URL)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, companyDetailResponse{
		companyResponse: toCompanyResponse(detail.Company),
		Images:          imgs,
	})
}

// Create accepts a multipart form so gallery images can ride along with the
// company fields.
func (h *CompanyHandler) Create(c fiber.Ctx) error {
	var req createCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	in := usecase.CompanyCreateInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Website:     req.Website,
		SizeID:      parseOptionalUUID(req.SizeID),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["images"] {
			path, err := saveTempFile(c, fh)
			if err != nil {
				continue
			}
			in.GalleryPaths = append(in.GalleryPaths, path)
		}
	}

	created, err := h.uc.Create(c.Context(), actorFromCtx(c), in)
	if err != nil {
		removeTempFiles(in.GalleryPaths...)
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Company created", toCompanyResponse(created))
}

func (h *CompanyHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req updateCompanyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	in := usecase.CompanyUpdateInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Website:     req.Website,
		SizeID:      parseOptionalUUID(req.SizeID),
	}

	if fh, err := c.FormFile("logo"); err == nil && fh != nil {
		if path, err := saveTempFile(c, fh); err == nil {
			in.LogoPath = &path
		}
	}

	updated, err := h.uc.Update(c.Context(), actorFromCtx(c), id, in)
	if err != nil {
		if in.LogoPath != nil {
			removeTempFiles(*in.LogoPath)
		}
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Company updated", toCompanyResponse(updated))
}

func (h *CompanyHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Company deleted", nil)
}

func (h *CompanyHandler) SetStatus(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req companyStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.SetStatus(c.Context(), actorFromCtx(c), id, req.Status); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Status updated", nil)
}

func (h *CompanyHandler) Hire(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req hireRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	res, err := h.uc.Hire(c.Context(), actorFromCtx(c), id, req.Email)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Member hired", toMemberResponse(res.Member))
}

func (h *CompanyHandler) ListMembers(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	members, err := h.uc.ListMembers(c.Context(), actorFromCtx(c), id)
	if err != nil {
		return httpError(err)
	}

	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, toMemberResponse(m))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanyHandler) UpdateMemberRole(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	memberID, err := paramID(c, "memberId")
	if err != nil {
		return err
	}

	var req memberRoleRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	if err := h.uc.UpdateMemberRole(c.Context(), actorFromCtx(c), id, memberID, req.Role); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Member role updated", nil)
}

func (h *CompanyHandler) DeleteMember(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	memberID, err := paramID(c, "memberId")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteMember(c.Context(), actorFromCtx(c), id, memberID); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Member removed", nil)
}

func toCompanyResponse(c company.Company) companyResponse {
	return companyResponse{
		ID: c.ID, Name: c.Name, Location: c.Location, Description: c.Description,
		Website: c.Website, LogoURL: c.LogoURL, Status: c.Status,
		OwnerID: c.OwnerID, SizeID: c.SizeID,
	}
}

func toMemberResponse(m company.Member) memberResponse {
	return memberResponse{ID: m.ID, UserID: m.UserID, CompanyID: m.CompanyID, Role: m.Role}
}

func parseOptionalUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil
	}
	return &id
}
