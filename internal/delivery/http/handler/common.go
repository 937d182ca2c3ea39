package handler

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/company"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/savedjob"
	"jobboard/internal/domain/taxonomy"
	"jobboard/internal/domain/user"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var validate = validator.New()

func actorFromCtx(c fiber.Ctx) usecase.Actor {
	id, _ := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	role, _ := c.Locals(middleware.CtxRoleKey).(string)
	return usecase.Actor{ID: id, Role: role}
}

func paramID(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "invalid id", nil, err)
	}
	return id, nil
}

func queryUUID(c fiber.Ctx, name string) *uuid.UUID {
	v := c.Query(name)
	if v == "" {
		return nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func pagination(c fiber.Ctx) repository.Pagination {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(repository.DefaultPageSize)))
	return repository.Pagination{Page: page, Size: size}.Normalized()
}

// saveTempFile spools the multipart upload to a temp path for the object
// store to pick up. The store owns deleting it.
func saveTempFile(c fiber.Ctx, fh *multipart.FileHeader) (string, error) {
	path := filepath.Join(os.TempDir(), uuid.New().String()+filepath.Ext(fh.Filename))
	if err := c.SaveFile(fh, path); err != nil {
		return "", err
	}
	return path, nil
}

// removeTempFiles clears spooled uploads the object store never consumed.
// Transfer deletes the paths handed to it, so after a failed operation any
// path still on disk was never transferred.
func removeTempFiles(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		_ = os.Remove(p)
	}
}

// httpError maps usecase and domain errors to the response taxonomy.
// Conflicts map to 400, matching the API contract.
func httpError(err error) error {
	switch {
	case err == nil:
		return nil

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidCode):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)

	case errors.Is(err, user.ErrEmailTaken),
		errors.Is(err, company.ErrNameTaken),
		errors.Is(err, company.ErrMemberExists),
		errors.Is(err, application.ErrAlreadyApplied),
		errors.Is(err, savedjob.ErrAlreadySaved),
		errors.Is(err, taxonomy.ErrNameTaken):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)

	case errors.Is(err, usecase.ErrUnauthorized),
		errors.Is(err, usecase.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, err.Error(), nil, err)

	case errors.Is(err, usecase.ErrForbidden),
		errors.Is(err, usecase.ErrAccountBlocked):
		return middleware.NewAppError(fiber.StatusForbidden, err.Error(), nil, err)

	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, company.ErrNotFound),
		errors.Is(err, company.ErrMemberNotFound),
		errors.Is(err, job.ErrNotFound),
		errors.Is(err, application.ErrNotFound),
		errors.Is(err, savedjob.ErrNotFound),
		errors.Is(err, taxonomy.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, err.Error(), nil, err)

	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, "", nil, err)
	}
}
