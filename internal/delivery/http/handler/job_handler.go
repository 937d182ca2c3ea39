package handler

import (
	"time"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/pkg/response"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobUsecase
}

func NewJobHandler(uc usecase.JobUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

type createJobRequest struct {
	CompanyID         string   `json:"companyId"         validate:"required,uuid"`
	CategoryID        string   `json:"categoryId"        validate:"required,uuid"`
	PositionID        string   `json:"positionId"        validate:"required,uuid"`
	SalaryID          string   `json:"salaryId"          validate:"required,uuid"`
	ExperienceLevelID string   `json:"experienceLevelId" validate:"required,uuid"`
	Title             string   `json:"title"             validate:"required,min=1,max=200"`
	Description       string   `json:"description"       validate:"required"`
	Requirements      string   `json:"requirements"      validate:"required"`
	Benefits          string   `json:"benefits"          validate:"required"`
	JobType           string   `json:"jobType"           validate:"required,max=50"`
	Amount            int      `json:"amount"            validate:"required,gt=0"`
	SkillIDs          []string `json:"skillIds"          validate:"omitempty,dive,uuid"`
}

type updateJobRequest struct {
	Title             *string `json:"title"             validate:"omitempty,min=1,max=200"`
	Description       *string `json:"description"       validate:"omitempty"`
	Requirements      *string `json:"requirements"      validate:"omitempty"`
	Benefits          *string `json:"benefits"          validate:"omitempty"`
	JobType           *string `json:"jobType"           validate:"omitempty,max=50"`
	Amount            *int    `json:"amount"            validate:"omitempty,gt=0"`
	CategoryID        *string `json:"categoryId"        validate:"omitempty,uuid"`
	PositionID        *string `json:"positionId"        validate:"omitempty,uuid"`
	SalaryID          *string `json:"salaryId"          validate:"omitempty,uuid"`
	ExperienceLevelID *string `json:"experienceLevelId" validate:"omitempty,uuid"`
}

type jobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING APPROVED REJECTED"`
}

type jobResponse struct {
	ID                uuid.UUID `json:"id"`
	CompanyID         uuid.UUID `json:"companyId"`
	CategoryID        uuid.UUID `json:"categoryId"`
	PositionID        uuid.UUID `json:"positionId"`
	SalaryID          uuid.UUID `json:"salaryId"`
	ExperienceLevelID uuid.UUID `json:"experienceLevelId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Requirements      string    `json:"requirements"`
	Benefits          string    `json:"benefits"`
	JobType           string    `json:"jobType"`
	Amount            int       `json:"amount"`
	Status            string    `json:"status"`
	PostedAt          time.Time `json:"postedAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
	CompanyName       string    `json:"companyName,omitempty"`
	CompanyLocation   string    `json:"companyLocation,omitempty"`
}

type jobDetailResponse struct {
	jobResponse
	SkillIDs []uuid.UUID `json:"skillIds"`
}

func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/latest", h.Latest)
	r.Get("/featured", h.Featured)
	r.Get("/company/:companyId", h.ListByCompany)
	r.Get("/:id", h.Get)
	r.Post("/create", h.Create)
	r.Put("/:id", h.Update)
	r.Put("/:id/status", h.SetStatus)
	r.Delete("/:id", h.Delete)
}

func (h *JobHandler) List(c fiber.Ctx) error {
	p := pagination(c)
	f := repository.JobListFilter{
		Status:            c.Query("status"),
		Search:            c.Query("search"),
		JobType:           c.Query("jobType"),
		Location:          c.Query("location"),
		CategoryID:        queryUUID(c, "categoryId"),
		ExperienceLevelID: queryUUID(c, "experienceLevelId"),
		SalaryID:          queryUUID(c, "salaryId"),
		Pagination:        p,
	}

	items, total, err := h.uc.List(c.Context(), f)
	if err != nil {
		return httpError(err)
	}
	return response.Page(c, toJobResponses(items), p.Page, p.Size, total)
}

func (h *JobHandler) Latest(c fiber.Ctx) error {
	items, err := h.uc.Latest(c.Context())
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobResponses(items))
}

func (h *JobHandler) Featured(c fiber.Ctx) error {
	items, err := h.uc.Featured(c.Context())
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toJobResponses(items))
}

func (h *JobHandler) ListByCompany(c fiber.Ctx) error {
	companyID, err := paramID(c, "companyId")
	if err != nil {
		return err
	}
	p := pagination(c)
	all := c.Query("all") == "true"

	items, total, err := h.uc.ListByCompany(c.Context(), companyID, all, p)
	if err != nil {
		return httpError(err)
	}
	return response.Page(c, toJobResponses(items), p.Page, p.Size, total)
}

func (h *JobHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return httpError(err)
	}

	skills := detail.SkillIDs
	if skills == nil {
		skills = []uuid.UUID{}
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, jobDetailResponse{
		jobResponse: toJobResponse(detail.JobRow),
		SkillIDs:    skills,
	})
}

func (h *JobHandler) Create(c fiber.Ctx) error {
	var req createJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	in := usecase.JobCreateInput{
		CompanyID:         uuid.MustParse(req.CompanyID),
		CategoryID:        uuid.MustParse(req.CategoryID),
		PositionID:        uuid.MustParse(req.PositionID),
		SalaryID:          uuid.MustParse(req.SalaryID),
		ExperienceLevelID: uuid.MustParse(req.ExperienceLevelID),
		Title:             req.Title,
		Description:       req.Description,
		Requirements:      req.Requirements,
		Benefits:          req.Benefits,
		JobType:           req.JobType,
		Amount:            req.Amount,
	}
	for _, s := range req.SkillIDs {
		in.SkillIDs = append(in.SkillIDs, uuid.MustParse(s))
	}

	created, err := h.uc.Create(c.Context(), actorFromCtx(c), in)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job created", toJobResponse(repository.JobRow{Job: created}))
}

func (h *JobHandler) Update(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	upd := repository.JobUpdate{
		Title:             req.Title,
		Description:       req.Description,
		Requirements:      req.Requirements,
		Benefits:          req.Benefits,
		JobType:           req.JobType,
		Amount:            req.Amount,
		CategoryID:        parseOptionalUUID(req.CategoryID),
		PositionID:        parseOptionalUUID(req.PositionID),
		SalaryID:          parseOptionalUUID(req.SalaryID),
		ExperienceLevelID: parseOptionalUUID(req.ExperienceLevelID),
	}

	if err := h.uc.Update(c.Context(), actorFromCtx(c), id, upd); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job updated", nil)
}

func (h *JobHandler) SetStatus(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req jobStatusRequest
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

func (h *JobHandler) Delete(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.Context(), actorFromCtx(c), id); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job deleted", nil)
}

func toJobResponse(r repository.JobRow) jobResponse {
	return jobResponse{
		ID:                r.ID,
		CompanyID:         r.CompanyID,
		CategoryID:        r.CategoryID,
		PositionID:        r.PositionID,
		SalaryID:          r.SalaryID,
		ExperienceLevelID: r.ExperienceLevelID,
		Title:             r.Title,
		Description:       r.Description,
		Requirements:      r.Requirements,
		Benefits:          r.Benefits,
		JobType:           r.JobType,
		Amount:            r.Amount,
		Status:            r.Status,
		PostedAt:          r.PostedAt,
		ExpiresAt:         r.ExpiresAt,
		CompanyName:       r.CompanyName,
		CompanyLocation:   r.CompanyLocation,
	}
}

func toJobResponses(rows []repository.JobRow) []jobResponse {
	out := make([]jobResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toJobResponse(r))
	}
	return out
}
