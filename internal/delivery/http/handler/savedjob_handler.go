package handler

import (
	"time"

	"jobboard/internal/pkg/response"
	"jobboard/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SavedJobHandler struct {
	uc usecase.SavedJobUsecase
}

func NewSavedJobHandler(uc usecase.SavedJobUsecase) *SavedJobHandler {
	return &SavedJobHandler{uc: uc}
}

type savedJobResponse struct {
	ID      uuid.UUID   `json:"id"`
	UserID  uuid.UUID   `json:"userId"`
	JobID   uuid.UUID   `json:"jobId"`
	SavedAt time.Time   `json:"savedAt"`
	Job     jobResponse `json:"job"`
}

func (h *SavedJobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/:jobId", h.Save)
	r.Delete("/:jobId", h.Unsave)
	r.Get("/user/:userId", h.ListByUser)
}

func (h *SavedJobHandler) Save(c fiber.Ctx) error {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		return err
	}
	saved, err := h.uc.Save(c.Context(), actorFromCtx(c), jobID)
	if err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusCreated, "Job saved", savedJobResponse{
		ID: saved.ID, UserID: saved.UserID, JobID: saved.JobID, SavedAt: saved.SavedAt,
	})
}

func (h *SavedJobHandler) Unsave(c fiber.Ctx) error {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		return err
	}
	if err := h.uc.Unsave(c.Context(), actorFromCtx(c), jobID); err != nil {
		return httpError(err)
	}
	return response.Success(c, fiber.StatusOK, "Job unsaved", nil)
}

func (h *SavedJobHandler) ListByUser(c fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	p := pagination(c)

	items, total, err := h.uc.ListByUser(c.Context(), actorFromCtx(c), userID, p)
	if err != nil {
		return httpError(err)
	}

	out := make([]savedJobResponse, 0, len(items))
	for _, it := range items {
		out = append(out, savedJobResponse{
			ID:      it.ID,
			UserID:  it.UserID,
			JobID:   it.JobID,
			SavedAt: it.SavedAt,
			Job:     toJobResponse(it.Job),
		})
	}
	return response.Page(c, out, p.Page, p.Size, total)
}
