package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/rhk9003/metaads/internal/config"
	"github.com/rhk9003/metaads/internal/domain/repositories"
	"github.com/rhk9003/metaads/internal/handler"
	"github.com/rhk9003/metaads/internal/middleware"
	"github.com/rhk9003/metaads/internal/repository/googleapi"
	"github.com/rhk9003/metaads/internal/repository/smtpmail"
	"github.com/rhk9003/metaads/internal/service/intake"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to set up log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"root_folder", cfg.RootFolderName,
	)

	fileCfg, err := config.LoadFile(cfg.ConfigFile)
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}

	// Resolve the Google identity once at startup; no credentials is a
	// fatal configuration error
	ctx := context.Background()
	creds, err := googleapi.ResolveCredentials(ctx, cfg, fileCfg, logger)
	if err != nil {
		log.Fatalf("Failed to resolve Google credentials: %v", err)
	}
	logger.Info("credentials resolved", "mode", creds.Mode, "source", creds.Source)

	svcs, err := googleapi.NewServices(ctx, creds)
	if err != nil {
		log.Fatalf("Failed to create Google API clients: %v", err)
	}

	// Create repositories
	repoConfig := &googleapi.RepositoryConfig{
		Services: svcs,
		Logger:   logger,
	}
	sheetRepo := googleapi.NewSheetRepository(repoConfig, cfg.MasterSheetID)
	driveRepo := googleapi.NewDriveRepository(repoConfig)
	docsRepo := googleapi.NewDocsRepository(repoConfig)

	// Pick the mail transport: Gmail in OAuth mode, SMTP when a mailbox
	// is configured, otherwise notifications are a no-op
	var mailSender repositories.MailSender
	switch {
	case creds.Mode == googleapi.CredentialOAuth:
		mailSender = googleapi.NewGmailSender(repoConfig)
		logger.Info("notifications enabled", "transport", "gmail")
	case cfg.SMTPHost != "":
		mailSender = smtpmail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, logger)
		logger.Info("notifications enabled", "transport", "smtp")
	default:
		logger.Warn("no mail transport configured, confirmation emails disabled")
	}

	// Create services
	lookupService := intake.NewCaseLookup(sheetRepo, fileCfg.Headers, logger)
	provisioner := intake.NewProvisioner(driveRepo, cfg.RootFolderName, cfg.AdminEmail, logger)
	uploader := intake.NewAssetUploader(driveRepo, logger)
	appender := intake.NewDocumentAppender(docsRepo, logger)
	notifier := intake.NewNotifier(mailSender, cfg.AdminEmail, logger)
	submissionService := intake.NewSubmissionService(provisioner, uploader, appender, notifier, logger)

	// Validate the master sheet headers early so schema drift surfaces
	// as a precise diagnostic instead of a wrong-column lookup
	if err := lookupService.ValidateHeaders(ctx); err != nil {
		logger.Warn("master sheet header validation failed", "error", err)
	}

	intakeHandler := handler.NewIntakeHandler(lookupService, provisioner, submissionService, logger)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", intakeHandler.HealthCheck)

	// Intake routes
	mux.HandleFunc("POST /api/lookup", intakeHandler.Lookup)
	mux.HandleFunc("POST /api/cases/{caseID}/provision", intakeHandler.Provision)
	mux.HandleFunc("POST /api/cases/{caseID}/submissions", intakeHandler.Submit)
	mux.HandleFunc("POST /api/cases/{caseID}/submissions/batch", intakeHandler.SubmitBatch)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestID → Recovery → Auth → Routes
	h = middleware.OperatorToken(cfg.OperatorToken)(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestID()(h)

	// CORS - Must be before auth to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server. Write timeout stays generous: one submission
	// performs several sequential remote calls plus an upload
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
