package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghsm/ticketing-admin/internal/api"
	"github.com/ghsm/ticketing-admin/internal/core/domain"
	"github.com/ghsm/ticketing-admin/internal/core/ports"
	"github.com/ghsm/ticketing-admin/internal/infrastructure/config"
	mongodb "github.com/ghsm/ticketing-admin/internal/infrastructure/db/mongo"
	redisdb "github.com/ghsm/ticketing-admin/internal/infrastructure/db/redis"
	"github.com/ghsm/ticketing-admin/internal/infrastructure/identity"
	"github.com/ghsm/ticketing-admin/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title                      Ticketing Admin API
// @version                    1.0
// @description                Administration, authentication and check-in gateway for the event ticketing system.
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	identities := buildIdentityStore(cfg, log)

	profileRepo := mongodb.NewProfileRepository(db)
	if err := bootstrapAdmin(ctx, identities, profileRepo, cfg.Identity, log); err != nil {
		log.Fatal().Err(err).Msg("admin bootstrap failed")
	}

	e := api.NewRouter(ctx, db, rdb, identities, api.RouterOptions{
		Env:              cfg.Env,
		ResetRedirectURL: cfg.FrontendURL + "/reset-password",
		CheckinWorkers:   cfg.Checkin.Workers,
		MaintenanceDefaults: domain.MaintenanceSettings{
			Enabled:          cfg.Maint.Enabled,
			Message:          cfg.Maint.Message,
			EstimatedTime:    cfg.Maint.EstimatedTime,
			ContactEmail:     cfg.Maint.ContactEmail,
			AllowAdminAccess: cfg.Maint.AllowAdmin,
		},
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// buildIdentityStore picks the hosted identity service when one is configured
// and falls back to the in-process store otherwise, so development and CI run
// without external credentials.
func buildIdentityStore(cfg *config.Config, log zerolog.Logger) ports.IdentityStore {
	if cfg.Identity.URL != "" {
		log.Info().Str("url", cfg.Identity.URL).Msg("using hosted identity service")
		return identity.NewClient(cfg.Identity.URL, cfg.Identity.AnonKey, cfg.Identity.ServiceRoleKey, log)
	}
	log.Info().Msg("using in-process identity store")
	return identity.NewLocal(cfg.Identity.JWTSecret)
}
