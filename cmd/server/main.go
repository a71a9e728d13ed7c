package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mcerda31/fanpulse/internal/app"
	"github.com/mcerda31/fanpulse/internal/catalog"
	"github.com/mcerda31/fanpulse/internal/config"
	"github.com/mcerda31/fanpulse/internal/constants"
	httpapp "github.com/mcerda31/fanpulse/internal/http"
	"github.com/mcerda31/fanpulse/internal/httpclient"
	"github.com/mcerda31/fanpulse/internal/logger"
	"github.com/mcerda31/fanpulse/internal/resolver"
	"github.com/mcerda31/fanpulse/internal/roster"
	"github.com/mcerda31/fanpulse/internal/storage"
	"github.com/mcerda31/fanpulse/internal/store"
	"github.com/mcerda31/fanpulse/internal/sync"
	"github.com/mcerda31/fanpulse/internal/upload"
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

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Seed the roster
	members := roster.Default()
	if err := db.SeedArtists(members.SeedRows()); err != nil {
		appLogger.Error("Failed to seed roster", "error", err)
		os.Exit(1)
	}

	if err := storage.EnsureDir(cfg.AudioDir); err != nil {
		appLogger.Error("Failed to create audio directory", "error", err)
		os.Exit(1)
	}

	// Initialize Catalog Client
	catalogClient := catalog.NewClient(catalog.Options{
		BaseURL:      cfg.CatalogURL,
		TokenURL:     cfg.TokenURL,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Market:       cfg.Market,
		HTTPClient:   httpclient.New(nil, constants.CatalogRequestInterval),
		Logger:       appLogger,
	})

	// Initialize Services
	engine := sync.NewEngine(db, members, catalogClient, appLogger)
	audioResolver := resolver.New(cfg.AudioDir, cfg.PublicAudioBase, members.Folders())
	trackService := app.NewTrackService(db, catalogClient, engine, members, audioResolver, appLogger)
	uploadService := upload.NewService(db, members, cfg.AudioDir, cfg.PublicAudioBase, appLogger)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handler := httpapp.NewHandler(trackService, engine, uploadService, appLogger)
	handler.RegisterRoutes(r)

	// Serve uploaded audio
	fileServer := http.StripPrefix(cfg.PublicAudioBase+"/", http.FileServer(http.Dir(cfg.AudioDir)))
	r.Handle(cfg.PublicAudioBase+"/*", fileServer)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Server shutdown failed", "error", err)
	}
}
