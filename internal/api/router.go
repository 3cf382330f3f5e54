package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/ghsm/ticketing-admin/docs"
	"github.com/ghsm/ticketing-admin/internal/api/handler"
	"github.com/ghsm/ticketing-admin/internal/api/middleware"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
	"github.com/ghsm/ticketing-admin/internal/core/service"
	mongodb "github.com/ghsm/ticketing-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/ghsm/ticketing-admin/internal/infrastructure/db/redis"
	"github.com/ghsm/ticketing-admin/internal/infrastructure/queue"
)

// RouterOptions carries the non-connection settings the router needs.
type RouterOptions struct {
	Env                 string
	ResetRedirectURL    string
	CheckinWorkers      int
	MaintenanceDefaults domain.MaintenanceSettings
}

// NewRouter builds and returns the Echo instance with all routes registered.
// Dispatcher workers run until ctx is cancelled.
func NewRouter(ctx context.Context, db *mongo.Database, rdb *redis.Client, identities ports.IdentityStore, opts RouterOptions, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("ticketing"))

	// --- Dependencies ---
	profileRepo := mongodb.NewProfileRepository(db)
	checkinRepo := mongodb.NewCheckinRepository(db)
	dedup := redisdb.NewAdmissionChecker(rdb)
	maintStore := redisdb.NewMaintenanceStore(rdb)

	verifier := service.NewCredentialVerifier(identities, log)
	authorizer := service.NewRoleAuthorizer(profileRepo, log)
	adminService := service.NewAdminUserService(identities, profileRepo, opts.ResetRedirectURL, log)
	checkinService := service.NewCheckinService(checkinRepo, dedup, log)
	maintService := service.NewMaintenanceService(maintStore, opts.MaintenanceDefaults, log)

	dispatcher := queue.NewDispatcher(opts.CheckinWorkers, checkinService, log)
	dispatcher.Start(ctx)

	adminHandler := handler.NewAdminUserHandler(adminService)
	resetHandler := handler.NewResetHandler(adminService, opts.Env)
	checkinHandler := handler.NewCheckinHandler(dispatcher, checkinService)
	maintHandler := handler.NewMaintenanceHandler(maintService)

	authMW := middleware.Auth(verifier)
	maintMW := middleware.Maintenance(maintService, log)

	// --- Health probes and observability (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public routes ---
	e.GET("/api/maintenance", maintHandler.Get)
	e.POST("/dev/reset-password", resetHandler.DevResetPassword) // refused outside development

	// --- Admin routes (admin role only) ---
	admin := e.Group("/api/admin", authMW, middleware.RBAC(authorizer, domain.RoleAdmin), maintMW)
	admin.POST("/users", adminHandler.Create)
	admin.GET("/users", adminHandler.List)
	admin.GET("/users/:id", adminHandler.Get)
	admin.PUT("/users/:id", adminHandler.Update)
	admin.DELETE("/users/:id", adminHandler.Delete)
	admin.POST("/reset-link", resetHandler.GenerateLink)
	admin.PUT("/maintenance", maintHandler.Update)

	// --- Check-in routes (staff or admin) ---
	checkins := e.Group("/api/checkins", authMW, middleware.RBAC(authorizer, domain.RoleStaff, domain.RoleAdmin), maintMW)
	checkins.POST("", checkinHandler.Receive)
	checkins.GET("", checkinHandler.History)

	return e
}
