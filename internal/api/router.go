package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/task-system/internal/api/handler"
	"github.com/taskdesk/task-system/internal/api/middleware"
	"github.com/taskdesk/task-system/internal/core/domain"
	"github.com/taskdesk/task-system/internal/core/ports"
	"github.com/taskdesk/task-system/internal/core/service"
	"github.com/taskdesk/task-system/internal/core/token"
	"github.com/taskdesk/task-system/internal/infrastructure/config"
	mongodb "github.com/taskdesk/task-system/internal/infrastructure/db/mongo"
	redisdb "github.com/taskdesk/task-system/internal/infrastructure/db/redis"
)

// NewRouter builds the Echo instance with every route registered. The
// routing table below is the single place guards are attached: each
// authenticated route names its policy operation explicitly, so a route
// without a Require entry is visibly unguarded in review.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditRecorder, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("task_system"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	throttle := redisdb.NewSigninThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	tokens := token.NewManager(cfg.JWT.Secret, cfg.JWT.TTL)
	authService := service.NewAuthService(userRepo, tokens, throttle, audit, log)
	userService := service.NewUserService(userRepo, audit, log)
	taskService := service.NewTaskService(taskRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService, tokens.TTL())
	userHandler := handler.NewUserHandler(userService)
	taskHandler := handler.NewTaskHandler(taskService)

	authn := middleware.Authenticate(tokens, userRepo, audit)
	require := func(op domain.Operation) echo.MiddlewareFunc {
		return middleware.Require(op, audit)
	}

	// --- Routing table ---
	apiGroup := e.Group("/api")

	apiGroup.POST("/auth/signup", authHandler.Signup)
	apiGroup.POST("/auth/signin", authHandler.Signin)

	users := apiGroup.Group("/users", authn)
	users.GET("/me", userHandler.Me, require(domain.OpViewProfile))
	users.GET("", userHandler.List, require(domain.OpListUsers))
	users.GET("/:id", userHandler.Get, require(domain.OpViewUser))
	users.PATCH("/:id/role", userHandler.UpdateRole, require(domain.OpUpdateUserRole))

	tasks := apiGroup.Group("/tasks", authn)
	tasks.GET("", taskHandler.List, require(domain.OpListTasks))
	tasks.POST("", taskHandler.Create, require(domain.OpCreateTask))
	tasks.PATCH("/:id/assign", taskHandler.Assign, require(domain.OpAssignTask))
	tasks.DELETE("/:id", taskHandler.Delete, require(domain.OpDeleteTask))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
