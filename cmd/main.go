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

	"pubg-tournament-tracker/analysis"
	"pubg-tournament-tracker/config"
	"pubg-tournament-tracker/db"
	"pubg-tournament-tracker/handlers"
	"pubg-tournament-tracker/repositories"
	api "pubg-tournament-tracker/routes"
	"pubg-tournament-tracker/services"
	"pubg-tournament-tracker/storage"
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
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
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
	logger.Info("Cloudflare R2 uploader initialized")

	analyzer, err := analysis.NewVisionClient(analysis.VisionClientConfig{
		BaseURL: cfg.AnalyzerBaseURL,
		APIKey:  cfg.AnalyzerAPIKey,
		Model:   cfg.AnalyzerModel,
		Timeout: cfg.AnalyzerTimeout,
	})
	if err != nil {
		logger.Error("failed to initialize screenshot analyzer", slog.Any("error", err))
		os.Exit(1)
	}

	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	recordRepo := repositories.NewPostgresMatchRecordRepository(dbConn)
	statRepo := repositories.NewPostgresPlayerStatRepository(dbConn)
	historyRepo := repositories.NewPostgresTournamentHistoryRepository(dbConn)
	accessCodeRepo := repositories.NewPostgresAccessCodeRepository(dbConn)

	authService := services.NewAuthService(accessCodeRepo, teamRepo, cfg.JWTSecretKey)
	tournamentService := services.NewTournamentService(tournamentRepo)
	teamService := services.NewTeamService(teamRepo, tournamentRepo, uploader, logger)
	uploadService := services.NewUploadService(teamRepo, tournamentRepo, recordRepo, statRepo, uploader, analyzer, logger)
	entryService := services.NewEntryService(teamRepo, recordRepo)
	standingsService := services.NewStandingsService(tournamentRepo, teamService, recordRepo, statRepo)
	historyService := services.NewHistoryService(historyRepo)
	archiveService := services.NewArchiveService(
		dbConn, tournamentRepo, teamRepo, recordRepo, statRepo, historyRepo, accessCodeRepo, uploader, logger,
	)
	logger.Info("services initialized")

	refresher, err := services.NewStandingsRefresher(tournamentRepo, standingsService, cfg.RefreshInterval, logger)
	if err != nil {
		logger.Error("failed to create standings refresher", slog.Any("error", err))
		os.Exit(1)
	}
	if err := refresher.Start(); err != nil {
		logger.Error("failed to start standings refresher", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := refresher.Stop(); err != nil {
			logger.Error("failed to stop standings refresher", slog.Any("error", err))
		}
	}()
	logger.Info("standings refresher started", slog.Duration("interval", cfg.RefreshInterval))

	authHandler := handlers.NewAuthHandler(authService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, archiveService)
	teamHandler := handlers.NewTeamHandler(teamService)
	uploadHandler := handlers.NewUploadHandler(uploadService)
	entryHandler := handlers.NewEntryHandler(entryService)
	standingsHandler := handlers.NewStandingsHandler(standingsService, refresher)
	historyHandler := handlers.NewHistoryHandler(historyService)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authService,
		authHandler,
		tournamentHandler,
		teamHandler,
		uploadHandler,
		entryHandler,
		standingsHandler,
		historyHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout: 30 * time.Second,
		// A full batch waits on up to four sequential analyzer calls.
		WriteTimeout: 5 * time.Minute,
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
