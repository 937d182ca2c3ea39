package handler

import (
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// LookupHandler serves one named taxonomy; the same handler type backs
// categories, skills, positions and experience levels.
type LookupHandler struct {
	uc usecase.LookupUsecase
}

func NewLookupHandler(uc usecase.LookupUsecase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

type nameRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type entryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (h *LookupHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/create", h.Create)
	r.Put("/:id", h.Rename)
	r.Delete("/:id", h.Delete)
}

func (h *LookupHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return httpError(err)
	}

	out := make([]entryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, entryResponse{ID: it.ID, Name: it.Name})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *LookupHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	e, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, entryResponse{ID: e.ID, Name: e.Name})
}

func (h *LookupHandler) Create(c fiber.Ctx) error {
	var req nameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	e, err := h.uc.Create(c.Context(), actorFromCtx(c), req.Name)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Created", entryResponse{ID: e.ID, Name: e.Name})
}

func (h *LookupHandler) Rename(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req nameRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	e, err := h.uc.Rename(c.Context(), actorFromCtx(c), id, req.Name)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Updated", entryResponse{ID: e.ID, Name: e.Name})
}

func (h *LookupHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Deleted", nil)
}

type SalaryHandler struct {
	uc usecase.SalaryUsecase
}

func NewSalaryHandler(uc usecase.SalaryUsecase) *SalaryHandler {
	return &SalaryHandler{uc: uc}
}

type salaryRequest struct {
	Min int64 `json:"min" validate:"gte=0"`
	Max int64 `json:"max" validate:"gtefield=Min"`
}

type salaryResponse struct {
	ID  uuid.UUID `json:"id"`
	Min int64     `json:"min"`
	Max int64     `json:"max"`
}

func (h *SalaryHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/create", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *SalaryHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return httpError(err)
	}

	out := make([]salaryResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toSalaryResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *SalaryHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toSalaryResponse(s))
}

func (h *SalaryHandler) Create(c fiber.Ctx) error {
	var req salaryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	s, err := h.uc.Create(c.Context(), actorFromCtx(c), req.Min, req.Max)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Created", toSalaryResponse(s))
}

func (h *SalaryHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req salaryRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	s, err := h.uc.Update(c.Context(), actorFromCtx(c), id, req.Min, req.Max)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Updated", toSalaryResponse(s))
}

func (h *SalaryHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Deleted", nil)
}

func toSalaryResponse(s taxonomy.Salary) salaryResponse {
	return salaryResponse{ID: s.ID, Min: s.Min, Max: s.Max}
}

type CompanySizeHandler struct {
	uc usecase.CompanySizeUsecase
}

func NewCompanySizeHandler(uc usecase.CompanySizeUsecase) *CompanySizeHandler {
	return &CompanySizeHandler{uc: uc}
}

type companySizeRequest struct {
	MinEmployees int `json:"minEmployees" validate:"gte=0"`
	MaxEmployees int `json:"maxEmployees" validate:"gtefield=MinEmployees"`
}

type companySizeResponse struct {
	ID           uuid.UUID `json:"id"`
	MinEmployees int       `json:"minEmployees"`
	MaxEmployees int       `json:"maxEmployees"`
}

func (h *CompanySizeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:id", h.Get)
	r.Post("/create", h.Create)
	r.Put("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

func (h *CompanySizeHandler) List(c fiber.Ctx) error {
	items, err := h.uc.List(c.Context())
	if err != nil {
		return httpError(err)
	}

	out := make([]companySizeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toCompanySizeResponse(it))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *CompanySizeHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	s, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toCompanySizeResponse(s))
}

func (h *CompanySizeHandler) Create(c fiber.Ctx) error {
	var req companySizeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	s, err := h.uc.Create(c.Context(), actorFromCtx(c), req.MinEmployees, req.MaxEmployees)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Created", toCompanySizeResponse(s))
}

func (h *CompanySizeHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req companySizeRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	s, err := h.uc.Update(c.Context(), actorFromCtx(c), id, req.MinEmployees, req.MaxEmployees)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Updated", toCompanySizeResponse(s))
}

func (h *CompanySizeHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Deleted", nil)
}

func toCompanySizeResponse(s taxonomy.CompanySize) companySizeResponse {
	return companySizeResponse{ID: s.ID, MinEmployees: s.MinEmployees, MaxEmployees: s.MaxEmployees}
}
