package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/amoria/amoria-api/internal/config"
	"github.com/amoria/amoria-api/internal/domain/admin"
	"github.com/amoria/amoria-api/internal/domain/audit"
	"github.com/amoria/amoria-api/internal/domain/identity"
	"github.com/amoria/amoria-api/internal/domain/moderation"
	"github.com/amoria/amoria-api/internal/middleware"
	"github.com/amoria/amoria-api/internal/pkg/database"
	"github.com/amoria/amoria-api/internal/pkg/logger"
	"github.com/amoria/amoria-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()
	logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env})

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Amoria admin API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redis, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redis)

	// ---------- Repositories ----------
	identityRepo := identity.NewRepository(db)
	moderationRepo := moderation.NewRepository(db)
	auditRepo := audit.NewRepository(db)

	// ---------- Pipeline ----------
	resolver := identity.NewResolver(identity.NewRedisSessionStore(redis), cfg.JWTSecret, cfg.SessionCookie)
	authorizer := admin.NewAuthorizer(identityRepo, cfg.AdminEmails)
	moderationSvc := moderation.NewService(moderationRepo, audit.NewRecorder(auditRepo))
	adminHandler := admin.NewHandler(moderationSvc, auditRepo)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Mount("/api/admin", adminHandler.Routes(admin.RequireAdmin(resolver, authorizer)))

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
