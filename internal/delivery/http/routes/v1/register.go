package v1

import (
	"log"

	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/delivery/http/handler"
	"jobboard/internal/delivery/http/middleware"
	"jobboard/internal/infrastructure/mailer"
	"jobboard/internal/infrastructure/storage"
	"jobboard/internal/infrastructure/verification"
	"jobboard/internal/pkg/jwt"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything the v1 route tree needs wired in.
type Deps struct {
	Config   config.Config
	DB       database.DB
	Codes    verification.Store
	Notifier mailer.Notifier
	Store    storage.ObjectStore
	Hub      *ws.Hub
	Logger   *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(d.Config.JWT.Secret, d.Config.JWT.ExpiresIn)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(d.DB)
	companyRepo := repository.NewPostgresCompanyRepository(d.DB)
	jobRepo := repository.NewPostgresJobRepository(d.DB)
	appRepo := repository.NewPostgresApplicationRepository(d.DB)
	savedRepo := repository.NewPostgresSavedJobRepository(d.DB)
	categoryRepo := repository.NewPostgresLookupRepository(d.DB, repository.TableCategories)
	skillRepo := repository.NewPostgresLookupRepository(d.DB, repository.TableSkills)
	positionRepo := repository.NewPostgresLookupRepository(d.DB, repository.TablePositions)
	levelRepo := repository.NewPostgresLookupRepository(d.DB, repository.TableExperienceLevels)
	salaryRepo := repository.NewPostgresSalaryRepository(d.DB)
	sizeRepo := repository.NewPostgresCompanySizeRepository(d.DB)

	authUC := usecase.NewAuthUsecase(userRepo, d.Codes, d.Notifier, jwtSvc, d.Logger)
	userUC := usecase.NewUserUsecase(userRepo, d.Store)
	companyUC := usecase.NewCompanyUsecase(companyRepo, userRepo, d.Store, d.Logger)
	jobUC := usecase.NewJobUsecase(jobRepo, companyRepo)
	appUC := usecase.NewApplicationUsecase(appRepo, jobRepo, companyRepo, d.Store, d.Notifier, d.Logger)
	savedUC := usecase.NewSavedJobUsecase(savedRepo, jobRepo)

	authHandler := handler.NewAuthHandler(authUC, jwtSvc)
	userHandler := handler.NewUserHandler(userUC)
	companyHandler := handler.NewCompanyHandler(companyUC)
	jobHandler := handler.NewJobHandler(jobUC)
	appHandler := handler.NewApplicationHandler(appUC)
	savedHandler := handler.NewSavedJobHandler(savedUC)
	wsHandler := ws.NewHandler(d.Hub, d.Logger)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	userHandler.RegisterRoutes(protected.Group("/users"))
	companyHandler.RegisterRoutes(protected.Group("/companies"))
	jobHandler.RegisterRoutes(protected.Group("/jobs"))
	appHandler.RegisterRoutes(protected.Group("/applications"))
	savedHandler.RegisterRoutes(protected.Group("/saved-jobs"))

	handler.NewLookupHandler(usecase.NewLookupUsecase(categoryRepo)).RegisterRoutes(protected.Group("/categories"))
	handler.NewLookupHandler(usecase.NewLookupUsecase(skillRepo)).RegisterRoutes(protected.Group("/skills"))
	handler.NewLookupHandler(usecase.NewLookupUsecase(positionRepo)).RegisterRoutes(protected.Group("/positions"))
	handler.NewLookupHandler(usecase.NewLookupUsecase(levelRepo)).RegisterRoutes(protected.Group("/experience-levels"))
	handler.NewSalaryHandler(usecase.NewSalaryUsecase(salaryRepo)).RegisterRoutes(protected.Group("/salaries"))
	handler.NewCompanySizeHandler(usecase.NewCompanySizeUsecase(sizeRepo)).RegisterRoutes(protected.Group("/company-sizes"))

	protected.Get("/ws", wsHandler.Handle)
}
