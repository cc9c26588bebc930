package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/jyhan-dev/seodang/internal/app/controllers"
	appMigrations "github.com/jyhan-dev/seodang/internal/app/migrations"
	appRepos "github.com/jyhan-dev/seodang/internal/app/repositories"
	appRoutes "github.com/jyhan-dev/seodang/internal/app/routes"
	appServices "github.com/jyhan-dev/seodang/internal/app/services"
	"github.com/jyhan-dev/seodang/internal/config"
	"github.com/jyhan-dev/seodang/internal/db"
	appMiddleware "github.com/jyhan-dev/seodang/internal/middleware"
	pkgAuth "github.com/jyhan-dev/seodang/internal/pkg/auth"
	"github.com/jyhan-dev/seodang/internal/pkg/filestorage"
	"github.com/jyhan-dev/seodang/internal/pkg/helpers"
	"github.com/jyhan-dev/seodang/internal/pkg/logger"
	"github.com/jyhan-dev/seodang/internal/pkg/renderer"
	"github.com/jyhan-dev/seodang/internal/pkg/websocket"
	"github.com/jyhan-dev/seodang/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AggregateService appServices.AggregateService
	ReportService    appServices.ReportService
	BatchService     appServices.BatchService
	ReportController *appControllers.ReportController
	ProgressHub      *websocket.Hub
	ProgressHandler  *websocket.Handler
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
	RenderEngine     *renderer.Engine
	FileStorage      *filestorage.LocalStorage
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Create default data (after migrations)
	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Log the error but don't necessarily fail the startup
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	// Shared render engine; the browser starts lazily on the first render.
	deps.RenderEngine = renderer.NewEngine(renderer.Options{
		ChromePath:    cfg.Renderer.ChromePath,
		RenderTimeout: cfg.RenderTimeout(),
		PageFooter:    cfg.Renderer.PageFooter,
	})

	deps.ProgressHub = websocket.NewHub(lgr)
	go deps.ProgressHub.Run()
	deps.ProgressHandler = websocket.NewHandler(deps.ProgressHub, lgr)

	deps.AggregateService = appServices.NewAggregateService(
		deps.Repos.StudentRepository,
		deps.Repos.ExamScoreRepository,
		deps.Repos.ConsultationRepository,
		deps.Repos.EvaluationRepository,
		deps.Repos.GoalRepository,
		cfg.Report.RecentScoreCount,
		cfg.Report.RecentConsultationCount,
	)

	deps.ReportService = appServices.NewReportService(
		deps.AggregateService,
		deps.Repos.TemplateRepository,
		deps.Repos.ReportRepository,
		deps.RenderEngine,
		deps.FileStorage,
		cfg.ReportExpiry(),
	)

	deps.BatchService = appServices.NewBatchService(
		deps.ReportService,
		deps.Repos.ReportRepository,
		deps.FileStorage,
		deps.ProgressHub,
		cfg.Report.BatchLimit,
		cfg.BatchItemDelay(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.ReportController = appControllers.NewReportController(
		deps.ReportService,
		deps.BatchService,
		deps.AggregateService,
	)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.ReportController,
		deps.ProgressHandler,
		deps.AuthMiddleware,
	)

	return router
}
