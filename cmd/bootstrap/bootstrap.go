package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swasthya-portal/config"
	deliveryHttp "swasthya-portal/internal/delivery/http"
	"swasthya-portal/internal/delivery/http/handler"
	"swasthya-portal/internal/delivery/http/middleware"
	domainRepo "swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/infrastructure/ai"
	"swasthya-portal/internal/infrastructure/cache"
	"swasthya-portal/internal/infrastructure/database"
	"swasthya-portal/internal/repository"
	"swasthya-portal/internal/service"
	"swasthya-portal/internal/usecase"
	"swasthya-portal/pkg/jwt"
	"swasthya-portal/pkg/signature"
	"swasthya-portal/pkg/validator"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const seedTimeout = 30 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	KeyLocker   *repository.KeyLocker
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	log := setupLogger(cfg.App.LogLevel)
	log.Info("Configuration loaded successfully")

	// Initialize database (audit log)
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	if err := database.RunMigrations(db); err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("Database migrations applied")

	// Initialize Redis (key-value store)
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.KeyLocker = repository.NewKeyLocker(log)
	store := repository.NewRedisStore(redisClient)

	if cfg.App.SeedDefaults {
		ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
		err := repository.SeedDefaults(ctx, store, log, cfg.Security.BcryptCost)
		cancel()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed default data: %w", err)
		}
	}

	// Initialize all layers
	server, err := initializeServer(cfg, log, db, redisClient, store, app.KeyLocker)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logrus.SetLevel(parsed)

	return logrus.StandardLogger()
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	store domainRepo.Store,
	locker *repository.KeyLocker,
) (*http.Server, error) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize prescription signer
	signer, err := signature.NewSigner(cfg.Security.PrescriptionSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create prescription signer: %w", err)
	}

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository(store, locker)
	sessionRepo := repository.NewSessionRepository(redisClient)
	appointmentRepo := repository.NewAppointmentRepository(store, locker)
	prescriptionRepo := repository.NewPrescriptionRepository(store, locker)
	inventoryRepo := repository.NewInventoryRepository(store, locker)
	orderRepo := repository.NewOrderRepository(store, locker)
	consultationRepo := repository.NewConsultationRepository(store, locker)
	feedbackRepo := repository.NewFeedbackRepository(store, locker)
	sentimentRepo := repository.NewSentimentRepository(store, locker)
	documentRepo := repository.NewDocumentRepository(store, locker)
	healthReportRepo := repository.NewHealthReportRepository(store, locker)
	noteRepo := repository.NewConversationNoteRepository(store, locker)
	symptomCheckRepo := repository.NewSymptomCheckRepository(store, locker)
	safetyCheckRepo := repository.NewSafetyCheckRepository(store, locker)
	messageRepo := repository.NewMessageRepository(store, locker)
	healthIDRepo := repository.NewHealthIDRepository(store)
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(db, log, auditLogRepo)
	assistant := service.NewAssistantService(ai.NewOpenAIClient(cfg.AI), log)
	assetCache := service.NewAssetCache(cfg.Offline.CacheName, http.FileServer(http.Dir(cfg.Offline.AssetDir)), log)
	if config.WatchOfflineCacheName(assetCache.Activate) {
		log.Info("Watching .env for offline cache changes")
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, sessionRepo, auditService, jwtService, cfg.Security.BcryptCost)
	adminUsecase := usecase.NewAdminUsecase(log, userRepo, sessionRepo, appointmentRepo, consultationRepo, feedbackRepo, sentimentRepo, assistant, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)
	doctorUsecase := usecase.NewDoctorUsecase(log, userRepo, appointmentRepo, consultationRepo, assistant, auditService)
	patientUsecase := usecase.NewPatientUsecase(log, userRepo, appointmentRepo, prescriptionRepo, consultationRepo, feedbackRepo, documentRepo, auditService)
	careUsecase := usecase.NewCareUsecase(log, userRepo, healthReportRepo, noteRepo, symptomCheckRepo, assistant)
	prescriptionUsecase := usecase.NewPrescriptionUsecase(log, userRepo, prescriptionRepo, safetyCheckRepo, signer, assistant, auditService)
	pharmacyUsecase := usecase.NewPharmacyUsecase(log, userRepo, inventoryRepo, orderRepo, feedbackRepo, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(log, userRepo, consultationRepo, auditService, cfg.Video)
	healthIDUsecase := usecase.NewHealthIDUsecase(log, userRepo, healthIDRepo)
	messageUsecase := usecase.NewMessageUsecase(log, userRepo, messageRepo)

	// Initialize handlers
	handlersSet := deliveryHttp.Handlers{
		Auth:         handler.NewAuthHandler(authUsecase, customValidator),
		Admin:        handler.NewAdminHandler(adminUsecase, customValidator),
		AuditLog:     handler.NewAuditLogHandler(auditLogUsecase),
		Doctor:       handler.NewDoctorHandler(doctorUsecase, customValidator),
		Patient:      handler.NewPatientHandler(patientUsecase, customValidator),
		Care:         handler.NewCareHandler(careUsecase, customValidator),
		Prescription: handler.NewPrescriptionHandler(prescriptionUsecase, customValidator),
		Pharmacy:     handler.NewPharmacyHandler(pharmacyUsecase, customValidator),
		Consultation: handler.NewConsultationHandler(consultationUsecase, customValidator),
		HealthID:     handler.NewHealthIDHandler(healthIDUsecase, customValidator),
		Message:      handler.NewMessageHandler(messageUsecase, customValidator),
		Offline:      handler.NewOfflineHandler(assetCache),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, sessionRepo, log)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(handlersSet, authMiddleware, corsMiddleware)
	httpRouter := router.Setup()

	// Access log and panic recovery go to the logrus writer
	var httpHandler http.Handler = handlers.RecoveryHandler(
		handlers.RecoveryLogger(log),
		handlers.PrintRecoveryStack(cfg.App.Env != "production"),
	)(httpRouter)
	httpHandler = handlers.CombinedLoggingHandler(log.WriterLevel(logrus.InfoLevel), httpHandler)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close stops background workers and closes all connections
func (app *App) Close() {
	if app.KeyLocker != nil {
		app.KeyLocker.Stop()
	}

	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
