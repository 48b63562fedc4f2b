package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/tharun/campusvote/internal/app/controllers"
	appMigrations "github.com/tharun/campusvote/internal/app/migrations"
	appRepos "github.com/tharun/campusvote/internal/app/repositories"
	appRoutes "github.com/tharun/campusvote/internal/app/routes"
	appServices "github.com/tharun/campusvote/internal/app/services"
	"github.com/tharun/campusvote/internal/config"
	"github.com/tharun/campusvote/internal/db"
	appMiddleware "github.com/tharun/campusvote/internal/middleware"
	pkgAuth "github.com/tharun/campusvote/internal/pkg/auth"
	"github.com/tharun/campusvote/internal/pkg/helpers"
	"github.com/tharun/campusvote/internal/pkg/logger"
	"github.com/tharun/campusvote/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	VotingService    appServices.VotingService
	ElectionService  appServices.ElectionService
	AdminAuthService appServices.AdminAuthService
	VotingController *appControllers.VotingController
	AdminController  *appControllers.AdminController
	AuthMiddleware   *appMiddleware.AuthMiddleware
	Repos            *appRepos.Repositories
	JWTService       *pkgAuth.JWTService
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and
// seeds the election settings row.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Pool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	// Run migrations
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	// Seed the settings row after migrations
	if err := seed.EnsureDefaultSettings(context.Background(), database, lgr); err != nil {
		// Log the error but don't fail the startup, the services treat a
		// missing settings row as an open election.
		lgr.Error().Err(err).Msg("Failed to seed election settings, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.VotingService = appServices.NewVotingService(
		deps.Repos.StudentRepository,
		deps.Repos.VoteRepository,
		deps.Repos.ElectionRepository,
		lgr,
	)
	deps.ElectionService = appServices.NewElectionService(
		deps.Repos.StudentRepository,
		deps.Repos.VoteRepository,
		deps.Repos.ElectionRepository,
		lgr,
	)

	adminAuthService, err := appServices.NewAdminAuthService(
		cfg.Admin.Username,
		cfg.Admin.Password,
		deps.JWTService,
		lgr,
	)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize admin auth service")
		return nil, fmt.Errorf("failed to initialize admin auth service: %w", err)
	}
	deps.AdminAuthService = adminAuthService

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.VotingController = appControllers.NewVotingController(deps.VotingService, deps.ElectionService, deps.Logger)
	deps.AdminController = appControllers.NewAdminController(deps.AdminAuthService, deps.ElectionService, deps.VotingService, deps.Logger)

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

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.VotingController,
		deps.AdminController,
		deps.AuthMiddleware,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
