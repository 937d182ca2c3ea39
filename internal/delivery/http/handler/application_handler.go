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

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type applyRequest struct {
	JobID       string  `form:"jobId"       json:"jobId"       validate:"required,uuid"`
	CoverLetter *string `form:"coverLetter" json:"coverLetter" validate:"omitempty,max=10000"`
	ResumeURL   string  `form:"resumeUrl"   json:"resumeUrl"   validate:"omitempty,url"`
	Fullname    string  `form:"fullname"    json:"fullname"    validate:"required,min=1,max=150"`
	Email       string  `form:"email"       json:"email"       validate:"required,email"`
}

type applicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING VIEWED ACCEPTED REJECTED"`
}

type applicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	UserID      uuid.UUID `json:"userId"`
	CoverLetter *string   `json:"coverLetter"`
	ResumeURL   string    `json:"resumeUrl"`
	Fullname    string    `json:"fullname"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	AppliedAt   time.Time `json:"appliedAt"`
	JobTitle    string    `json:"jobTitle,omitempty"`
	CompanyID   uuid.UUID `json:"companyId,omitempty"`
}

type weeklyStatsResponse struct {
	Day      string `json:"day"`
	Pending  int    `json:"pending"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}

func (h *ApplicationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/create", h.Apply)
	r.Get("/check/:jobId", h.HasApplied)
	r.Get("/user/:userId", h.ListByUser)
	r.Get("/company/:companyId", h.ListByCompany)
	r.Get("/company/:companyId/stats", h.WeeklyStats)
	r.Get("/:id", h.Get)
	r.Put("/:id/status", h.SetStatus)
}

// Apply accepts either JSON or a multipart form; a multipart "resume" file
// takes precedence over the resumeUrl field.
func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}

	in := usecase.ApplyInput{
		JobID:       uuid.MustParse(req.JobID),
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
		Fullname:    req.Fullname,
		Email:       req.Email,
	}

	if fh, err := c.FormFile("resume"); err == nil && fh != nil {
		path, err := saveTempFile(c, fh)
		if err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
		}
		in.ResumePath = path
	}

	created, err := h.uc.Apply(c.Context(), actorFromCtx(c), in)
	if err != nil {
		removeTempFiles(in.ResumePath)
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Application submitted",
		toApplicationResponse(repository.ApplicationRow{Application: created}))
}

func (h *ApplicationHandler) HasApplied(c fiber.Ctx) error {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		return err
	}
	applied, err := h.uc.HasApplied(c.Context(), actorFromCtx(c), jobID)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, fiber.Map{"applied": applied})
}

func (h *ApplicationHandler) Get(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	row, err := h.uc.Get(c.Context(), actorFromCtx(c), id)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toApplicationResponse(row))
}

func (h *ApplicationHandler) SetStatus(c fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req applicationStatusRequest
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

func (h *ApplicationHandler) ListByUser(c fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	p := pagination(c)

	items, total, err := h.uc.ListByUser(c.Context(), actorFromCtx(c), userID, p)
	if err != nil {
		return httpError(err)
	}
	return response.Page(c, toApplicationResponses(items), p.Page, p.Size, total)
}

func (h *ApplicationHandler) ListByCompany(c fiber.Ctx) error {
	companyID, err := paramID(c, "companyId")
	if err != nil {
		return err
	}
	p := pagination(c)
	f := repository.ApplicationFilter{
		JobID:      queryUUID(c, "jobId"),
		Status:     c.Query("status"),
		Search:     c.Query("search"),
		Pagination: p,
	}

	items, total, err := h.uc.ListByCompany(c.Context(), actorFromCtx(c), companyID, f)
	if err != nil {
		return httpError(err)
	}
	return response.Page(c, toApplicationResponses(items), p.Page, p.Size, total)
}

func (h *ApplicationHandler) WeeklyStats(c fiber.Ctx) error {
	companyID, err := paramID(c, "companyId")
	if err != nil {
		return err
	}
	stats, err := h.uc.WeeklyStats(c.Context(), actorFromCtx(c), companyID)
	if err != nil {
		return httpError(err)
	}

	out := make([]weeklyStatsResponse, 0, len(stats))
	for _, s := range stats {
		out = append(out, weeklyStatsResponse{
			Day:      s.Day.Format("2006-01-02"),
			Pending:  s.Pending,
			Approved: s.Approved,
			Rejected: s.Rejected,
		})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toApplicationResponse(r repository.ApplicationRow) applicationResponse {
	return applicationResponse{
		ID:          r.ID,
		JobID:       r.JobID,
		UserID:      r.UserID,
		CoverLetter: r.CoverLetter,
		ResumeURL:   r.ResumeURL,
		Fullname:    r.Fullname,
		Email:       r.Email,
		Status:      r.Status,
		AppliedAt:   r.AppliedAt,
		JobTitle:    r.JobTitle,
		CompanyID:   r.CompanyID,
	}
}

func toApplicationResponses(rows []repository.ApplicationRow) []applicationResponse {
	out := make([]applicationResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, toApplicationResponse(r))
	}
	return out
}
