package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cesargomez89/praiseteam/internal/app"
	"github.com/cesargomez89/praiseteam/internal/auth"
	"github.com/cesargomez89/praiseteam/internal/config"
	"github.com/cesargomez89/praiseteam/internal/constants"
	httpapp "github.com/cesargomez89/praiseteam/internal/http"
	"github.com/cesargomez89/praiseteam/internal/httpclient"
	"github.com/cesargomez89/praiseteam/internal/logger"
	"github.com/cesargomez89/praiseteam/internal/schedule"
	"github.com/cesargomez89/praiseteam/internal/sheets"
	"github.com/cesargomez89/praiseteam/internal/store"
	"github.com/cesargomez89/praiseteam/internal/youtube"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize schedule table
	var table schedule.Table
	switch cfg.StoreBackend {
	case constants.StoreBackendSQLite:
		db, err := store.NewSQLiteDB(cfg.DBPath)
		if err != nil {
			appLogger.Error("Failed to init DB", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		table = db
	default:
		sheetTable, err := sheets.New(context.Background(), sheets.Config{
			SpreadsheetID:       cfg.SheetID,
			SheetName:           cfg.SheetName,
			SheetGID:            cfg.SheetGID,
			ServiceAccountEmail: cfg.ServiceAccountEmail,
			PrivateKey:          cfg.PrivateKey,
		}, appLogger)
		if err != nil {
			appLogger.Error("Failed to init Google Sheets", "error", err)
			os.Exit(1)
		}
		table = sheetTable
	}
	appLogger.Info("Schedule store ready", "backend", cfg.StoreBackend)

	// Initialize Services
	ytHTTP := httpclient.NewClient(nil, constants.YouTubeRequestInterval, httpclient.WithAttempts(1))
	ytClient := youtube.NewClient(cfg.YouTubeAPIURL, cfg.YouTubeAPIKey, ytHTTP)
	if !ytClient.HasAPIKey() {
		appLogger.Warn("YOUTUBE_API_KEY not set, video metadata will use basic fallback")
	}
	enricher := youtube.NewEnricher(ytClient, youtube.NewMemoryCache(constants.MetadataCacheTTL), appLogger)

	weekStore := schedule.NewStore(table, appLogger)
	weekService := app.NewWeekService(weekStore, app.NewSongEnricher(enricher), appLogger)
	authService := auth.NewService(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret)

	// Routes
	h := httpapp.NewHandler(weekService, enricher, authService, appLogger)
	h.SecureCookies = cfg.IsProduction()

	// Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httpapp.NewRouter(h),
		ReadHeaderTimeout: constants.DefaultHTTPTimeout,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exiting", "uptime", time.Since(h.StartedAt).Round(time.Second).String())
}
