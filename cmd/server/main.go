// Package main initializes and starts the visa case tracker HTTP server,
// setting up configuration, logging, the database connection, repositories,
// services, and handlers.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"github.com/casetrackhq/casetrack/internal/config"
	"github.com/casetrackhq/casetrack/internal/db"
	"github.com/casetrackhq/casetrack/internal/logger"
	"github.com/casetrackhq/casetrack/internal/notifier"
	"github.com/casetrackhq/casetrack/internal/repository"
	"github.com/casetrackhq/casetrack/internal/server/handler/http"
	"github.com/casetrackhq/casetrack/internal/service"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()
	addr := options.Port
	dbName := options.DatabaseDSN

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orDefault(version, "N/A"))
	fmt.Printf("Build date: %s\n", orDefault(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("jwt secret is not configured")
	}

	// Initialize PostgreSQL connection.
	postgresDB, err := db.InitPostgres(dbName)
	if err != nil {
		zapLogger.Fatal("cannot init database", zap.Error(err))
	}

	// Prune old upload provenance rows in the background.
	db.StartUploadAuditPruner(context.Background(), postgresDB,
		time.Hour,       // interval
		90*24*time.Hour, // retention: 90 days
		zapLogger,
	)

	// Initialize repositories for cases and share links.
	caseRepo := repository.NewPostgresCaseRepository(postgresDB)
	shareRepo := repository.NewPostgresShareRepository(postgresDB)

	// Mail function client for viewer-link notifications.
	mail := notifier.New(options.MailEndpoint, options.MailToken)

	// Initialize business-logic services.
	caseService := service.NewCaseService(caseRepo)
	importService := service.NewImportService(caseRepo, zapLogger)
	shareService := service.NewShareService(shareRepo, mail, options.FrontendURL)

	// Create HTTP handlers for the case, upload, and share endpoints.
	caseHandler := &http.CaseHandler{CaseService: caseService}
	uploadHandler := &http.UploadHandler{ImportService: importService}
	shareHandler := &http.ShareHandler{ShareService: shareService}

	// Build the router with middleware and routes.
	router := http.NewRouter(caseHandler, uploadHandler, shareHandler, zapLogger, []byte(options.JWTSecret))

	// Create and start the HTTP server.
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", addr))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// orDefault returns s if it is non-empty, otherwise fallback. It stands in
// for cmp.Or, which requires Go 1.22.
func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
