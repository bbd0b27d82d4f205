package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/crusher-sewa/materials-api/internal/api/handler"
	"github.com/crusher-sewa/materials-api/internal/api/middleware"
	"github.com/crusher-sewa/materials-api/internal/core/domain"
	"github.com/crusher-sewa/materials-api/internal/core/ports"
	"github.com/crusher-sewa/materials-api/internal/core/service"
	"github.com/crusher-sewa/materials-api/internal/infrastructure/config"
	mongodb "github.com/crusher-sewa/materials-api/internal/infrastructure/db/mongo"
	redisdb "github.com/crusher-sewa/materials-api/internal/infrastructure/db/redis"
	"github.com/crusher-sewa/materials-api/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(store *mongodb.Store, rdb *redis.Client, images ports.ImageStore, cleanup ports.CleanupQueue, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("materials"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(store.DB)
	materialRepo := mongodb.NewMaterialRepository(store.DB)
	throttle := redisdb.NewLoginThrottle(rdb, 0, 0)

	tokenTTL := time.Duration(cfg.TokenTTLHours) * time.Hour
	authService := service.NewAuthService(userRepo, throttle, cfg.JWTSecret, tokenTTL, log)
	adminService := service.NewAdminService(userRepo, log)
	materialService := service.NewMaterialService(materialRepo, images, cleanup, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(adminService)
	materialHandler := handler.NewMaterialHandler(materialService)
	healthHandler := handler.NewHealthHandler(config.ServiceName)
	readinessHandler := handler.NewReadinessHandler(map[string]ports.Pinger{
		"mongodb": store,
		"redis":   redisdb.NewPinger(rdb),
	})

	requireAuth := middleware.Auth(cfg.JWTSecret)

	// --- Static uploads and metrics ---
	e.Static(storage.MaterialImageBaseURL, cfg.UploadDir)
	e.GET("/metrics", echoprometheus.NewHandler())

	api := e.Group("/api")

	// --- Health probes (no auth required) ---
	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", readinessHandler.Readiness)

	// --- Auth routes ---
	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// --- Admin routes (ADMIN only) ---
	admin := api.Group("/admin", requireAuth, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/users/create", adminHandler.CreateUser)
	// Kept for clients that predate role selection on the create form.
	admin.POST("/users/create-manager", adminHandler.CreateUser)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PATCH("/users/:id/status", adminHandler.UpdateUserStatus)

	// --- Materials routes ---
	materials := api.Group("/materials", requireAuth)
	materials.GET("", materialHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleManager, domain.RoleContractor))
	materials.POST("", materialHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	materials.PATCH("/:id", materialHandler.Update, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	materials.DELETE("/:id", materialHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	return e
}
