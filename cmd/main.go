package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/maxlgn/counterhub/config"
	"github.com/maxlgn/counterhub/db"
	"github.com/maxlgn/counterhub/handlers"
	"github.com/maxlgn/counterhub/live"
	"github.com/maxlgn/counterhub/middleware"
	"github.com/maxlgn/counterhub/repositories"
	api "github.com/maxlgn/counterhub/routes"
	"github.com/maxlgn/counterhub/services"
	"github.com/maxlgn/counterhub/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	// Snapshot archival is optional: without R2 credentials imports
	// still work, the raw file just is not kept.
	var uploader storage.FileUploader
	if cfg.R2AccountID != "" {
		r2, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		uploader = r2
		logger.Info("Cloudflare R2 uploader initialized")
	} else {
		logger.Info("R2 credentials not set, snapshot archival disabled")
	}

	hub := live.NewHub()
	go hub.Run()
	logger.Info("live update hub started")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	defenseRepo := repositories.NewPostgresDefenseRepository(dbConn)
	counterRepo := repositories.NewPostgresCounterRepository(dbConn)
	buildRepo := repositories.NewPostgresBuildRepository(dbConn)
	rosterRepo := repositories.NewPostgresRosterRepository(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo)
	catalogService := services.NewCatalogService(dbConn, defenseRepo, counterRepo, buildRepo, rosterRepo, hub)
	buildService := services.NewBuildService(buildRepo)
	rosterService := services.NewRosterService(rosterRepo, uploader, logger)
	adminService := services.NewAdminService(userRepo, uploader, logger)
	dashboardService := services.NewDashboardService(userRepo, defenseRepo, counterRepo, buildRepo)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService, cfg.JWTSecretKey)
	defenseHandler := handlers.NewDefenseHandler(catalogService)
	counterHandler := handlers.NewCounterHandler(catalogService)
	buildHandler := handlers.NewBuildHandler(buildService)
	rosterHandler := handlers.NewRosterHandler(rosterService)
	adminHandler := handlers.NewAdminHandler(adminService, dashboardService)
	webSocketHandler := handlers.NewWebSocketHandler(hub)
	logger.Info("HTTP handlers initialized")

	auth := middleware.NewAuth(cfg.JWTSecretKey)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		auth,
		cfg.CORSAllowedOrigins,
		authHandler,
		defenseHandler,
		counterHandler,
		buildHandler,
		rosterHandler,
		adminHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
