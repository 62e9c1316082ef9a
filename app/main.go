package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/madisonhq/press-dossier/app/api"
	"github.com/madisonhq/press-dossier/app/assistant"
	"github.com/madisonhq/press-dossier/app/cfg"
	"github.com/madisonhq/press-dossier/app/database"
	"github.com/madisonhq/press-dossier/app/dossier"
	"github.com/madisonhq/press-dossier/app/importer"
	"github.com/madisonhq/press-dossier/app/source"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Press Dossier server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	reporterRepo := database.NewReporterRepository(db)
	dossierStore := database.NewDossierStore(db)

	beats := dossier.DefaultBeats()
	if appCfg.BeatsFile != "" {
		beats, err = dossier.LoadBeats(appCfg.BeatsFile)
		if err != nil {
			slog.Error("Failed to load beat buckets", "file", appCfg.BeatsFile, "error", err)
			os.Exit(1)
		}
		slog.Info("Loaded beat buckets", "file", appCfg.BeatsFile, "buckets", beats.BucketCount())
	}

	articleSource := source.NewClient(appCfg.SourceURL, appCfg.SourceAPIKey,
		appCfg.UserAgent, time.Duration(appCfg.SourceTimeout)*time.Second)
	textAssistant := assistant.NewClient(appCfg.AssistantURL, appCfg.AssistantAPIKey,
		appCfg.AssistantModel, time.Duration(appCfg.AssistantTimeout)*time.Second)

	aggregator := dossier.NewAggregator(articleSource, textAssistant, dossierStore, reporterRepo, beats,
		dossier.Options{
			ArticleLimit: appCfg.ArticleLimit,
			Staleness:    time.Duration(appCfg.StalenessHours) * time.Hour,
			MinShare:     appCfg.MinOutletShare,
		})

	sessions := importer.NewSessionStore(time.Duration(appCfg.SessionTTL) * time.Minute)
	pipeline := importer.NewPipeline(textAssistant, sessions, reporterRepo, importer.Options{
		MaxUploadBytes: appCfg.MaxUploadBytes,
		MaxRows:        appCfg.MaxRows,
		SampleRows:     appCfg.SampleRows,
	})

	apiHandler := api.NewHandler(aggregator, articleSource, pipeline,
		reporterRepo, dossierStore, sessions, appCfg.MaxUploadBytes)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received shutdown signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
