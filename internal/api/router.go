package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/freelancehub/marketplace-api/internal/api/handler"
	"github.com/freelancehub/marketplace-api/internal/api/middleware"
	"github.com/freelancehub/marketplace-api/internal/core/access"
	"github.com/freelancehub/marketplace-api/internal/core/ports"
	"github.com/freelancehub/marketplace-api/internal/core/service"
	mongodb "github.com/freelancehub/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/freelancehub/marketplace-api/internal/infrastructure/db/redis"
)

// Deps carries the process-level dependencies the router wires into
// handlers. Everything request-scoped is built here.
type Deps struct {
	Mongo      *mongo.Database
	Redis      *redis.Client
	Tokens     *service.TokenService
	Audit      ports.AuditSink
	BcryptCost int
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("marketplace"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(deps.Mongo)
	projectRepo := mongodb.NewProjectRepository(deps.Mongo)
	profileCache := redisdb.NewProfileCache(deps.Redis)
	projectCache := redisdb.NewProjectCache(deps.Redis)

	passwords := service.NewPasswordVerifier(deps.BcryptCost)
	validator := access.NewValidator(userRepo)

	authService := service.NewAuthService(userRepo, passwords, deps.Tokens, deps.Audit, deps.Logger)
	userService := service.NewUserService(userRepo, passwords, validator, profileCache, deps.Audit, deps.Logger)
	projectService := service.NewProjectService(projectRepo, userRepo, passwords, validator, projectCache, deps.Audit, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	authMiddleware := middleware.Auth(deps.Tokens)

	// --- Auth routes (no prior identity) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- User routes ---
	users := e.Group("/api/users", authMiddleware)
	users.GET("/:id/profile", userHandler.GetProfile)
	users.PATCH("/:id/updateFullName", userHandler.UpdateFullName)
	users.PATCH("/:id/updateEmail", userHandler.UpdateEmail)
	users.PATCH("/:id/updateDocument", userHandler.UpdateDocument)
	users.PATCH("/:id/updatePassword", userHandler.UpdatePassword)
	users.PATCH("/:id/changeUserRole", userHandler.ChangeRole)
	users.DELETE("/:id", userHandler.Delete)

	// --- Project routes ---
	projects := e.Group("/api/project", authMiddleware)
	projects.POST("/create", projectHandler.Create)
	projects.GET("/projects", projectHandler.List)
	projects.GET("/projects/:id", projectHandler.Get)
	projects.PATCH("/projects/:id/updateTitle", projectHandler.UpdateTitle)
	projects.PATCH("/projects/:id/updateDescription", projectHandler.UpdateDescription)
	projects.PATCH("/projects/:id/updateDeadline", projectHandler.UpdateDeadline)
	projects.PATCH("/projects/:id/updateEstimatedBudget", projectHandler.UpdateEstimatedBudget)
	projects.PATCH("/projects/:id/updateStatus", projectHandler.UpdateStatus)
	projects.DELETE("/projects/:id", projectHandler.Delete)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}
