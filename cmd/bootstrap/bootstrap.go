package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hepatotrack/config"
	deliveryHttp "hepatotrack/internal/delivery/http"
	"hepatotrack/internal/delivery/http/handler"
	"hepatotrack/internal/delivery/http/middleware"
	"hepatotrack/internal/infrastructure/ai"
	"hepatotrack/internal/infrastructure/cache"
	"hepatotrack/internal/infrastructure/database"
	"hepatotrack/internal/repository"
	"hepatotrack/internal/service"
	"hepatotrack/internal/usecase"
	"hepatotrack/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	// Research is exposed for the offline export command.
	Research usecase.ResearchUsecase

	inflight *service.InflightGuard
}

// New creates a new App instance with all dependencies initialized.
// configPath names an optional .env file.
func New(configPath string) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	if err := setupLogger(cfg.Log); err != nil {
		return nil, err
	}
	logrus.Info("Configuration loaded successfully")

	repos, err := app.initializeStorage(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}

	if cfg.Storage.SeedDemoData {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repos.Seeder.SeedIfEmpty(ctx, repository.DemoPatients(), repository.DemoConsultations()); err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		logrus.Info("Demo dataset ready")
	}

	// Initialize all layers
	server, err := app.initializeServer(cfg, repos)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) error {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	logrus.SetLevel(level)
	return nil
}

// initializeStorage connects the configured backend and returns its repositories.
func (app *App) initializeStorage(cfg *config.Config) (*repository.Repositories, error) {
	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		if cfg.DB.AutoMigrate {
			if err := database.Migrate(cfg.DB); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		app.DB = db
		logrus.Info("Database connected successfully")
		return repository.NewGormRepositories(db), nil

	default:
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		app.RedisClient = redisClient
		logrus.Info("Redis connected successfully")
		return repository.NewRedisRepositories(redisClient), nil
	}
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer(cfg *config.Config, repos *repository.Repositories) (*http.Server, error) {
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize services
	auditService := service.NewAuditService(log, repos.AuditLogs)
	exporter := service.NewCSVExporter(cfg.Export.LegacyQuoting)
	chartService := service.NewChartService()
	app.inflight = service.NewInflightGuard(log)

	var generator service.NarrativeGenerator
	gemini, err := ai.NewGeminiGenerator(context.Background(), cfg.AI, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}
	if gemini != nil {
		generator = gemini
		logrus.Infof("AI analysis enabled with model %s", cfg.AI.Model)
	} else {
		logrus.Warn("GEMINI_API_KEY not set, AI analysis disabled")
	}

	// Initialize usecases
	patientUsecase := usecase.NewPatientUsecase(log, repos.Patients, repos.Consultations, auditService)
	consultationUsecase := usecase.NewConsultationUsecase(log, repos.Patients, repos.Consultations, auditService, chartService)
	researchUsecase := usecase.NewResearchUsecase(log, repos.Patients, repos.Consultations, auditService, exporter)
	analysisUsecase := usecase.NewAnalysisUsecase(log, repos.Patients, repos.Consultations, auditService, generator, app.inflight, cfg.AI.Timeout)
	app.Research = researchUsecase

	// Initialize handlers
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	consultationHandler := handler.NewConsultationHandler(consultationUsecase, customValidator)
	researchHandler := handler.NewResearchHandler(researchUsecase)
	analysisHandler := handler.NewAnalysisHandler(analysisUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.AllowedOrigins)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(patientHandler, consultationHandler, researchHandler, analysisHandler, corsMiddleware, loggingMiddleware)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s, storage: %s", app.Config.App.Env, app.Config.Storage.Driver)
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

// Close stops background workers and closes storage connections.
func (app *App) Close() {
	if app.inflight != nil {
		app.inflight.Stop()
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
