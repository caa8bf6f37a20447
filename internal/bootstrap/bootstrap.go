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
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/odemir/campusclubs/internal/app/annotations"
	appControllers "github.com/odemir/campusclubs/internal/app/controllers"
	appModels "github.com/odemir/campusclubs/internal/app/models"
	appMigrations "github.com/odemir/campusclubs/internal/app/migrations"
	appRepos "github.com/odemir/campusclubs/internal/app/repositories"
	appRoutes "github.com/odemir/campusclubs/internal/app/routes"
	appServices "github.com/odemir/campusclubs/internal/app/services"
	"github.com/odemir/campusclubs/internal/config"
	"github.com/odemir/campusclubs/internal/db"
	appMiddleware "github.com/odemir/campusclubs/internal/middleware"
	pkgAuth "github.com/odemir/campusclubs/internal/pkg/auth"
	"github.com/odemir/campusclubs/internal/pkg/logger"
	"github.com/odemir/campusclubs/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService            appServices.AuthService
	ClubService            appServices.ClubService
	EventService           appServices.EventService
	AnnouncementService    appServices.AnnouncementService
	FeedbackService        appServices.FeedbackService
	HomeService            appServices.HomeService
	AuthController         *appControllers.AuthController
	ClubController         *appControllers.ClubController
	EventController        *appControllers.EventController
	AnnouncementController *appControllers.AnnouncementController
	FeedbackController     *appControllers.FeedbackController
	HomeController         *appControllers.HomeController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	EntityRegistry         *annotations.Registry
	Logger                 zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations and
// seeds the default college admin.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

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
	lgr.Info().Msg("Database migrations applied")

	// Opportunistic cleanup of stale refresh tokens.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := appRepos.NewTokenRepository(dbPool).DeleteExpired(ctx); err != nil {
		lgr.Warn().Err(err).Msg("Failed to delete expired refresh tokens")
	}

	if err := seed.CreateDefaultData(context.Background(), dbPool, cfg, lgr); err != nil {
		// Seeding failures should not block startup.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  cfg.AccessTokenExp(),
		RefreshTokenExp: cfg.RefreshTokenExp(),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	// Annotation targets: clubs resolve by slug or ID, events by ID only.
	deps.EntityRegistry = annotations.NewRegistry()
	deps.EntityRegistry.Register(appModels.KindClub, annotations.ClubLookup(deps.Repos.Club))
	deps.EntityRegistry.Register(appModels.KindEvent, annotations.EventLookup(deps.Repos.Event))

	deps.AuthService = appServices.NewAuthService(deps.Repos.User, deps.Repos.Token, deps.JWTService, lgr)
	deps.ClubService = appServices.NewClubService(deps.Repos.Club, deps.Repos.Membership, deps.Repos.Rating, deps.Repos.User, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.Event, deps.Repos.Club, deps.Repos.User, lgr)
	deps.AnnouncementService = appServices.NewAnnouncementService(deps.Repos.Announcement, deps.Repos.Club, deps.Repos.Membership, deps.Repos.User, lgr)
	deps.FeedbackService = appServices.NewFeedbackService(deps.EntityRegistry, deps.Repos.Rating, deps.Repos.Feedback, lgr)
	deps.HomeService = appServices.NewHomeService(deps.Repos.Announcement, deps.Repos.Club, deps.Repos.Membership, deps.Repos.Rating, deps.Repos.User, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.User)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.ClubController = appControllers.NewClubController(deps.ClubService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.AnnouncementService)
	deps.FeedbackController = appControllers.NewFeedbackController(deps.FeedbackService)
	deps.HomeController = appControllers.NewHomeController(deps.HomeService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.HomeController,
		deps.AuthController,
		deps.ClubController,
		deps.EventController,
		deps.AnnouncementController,
		deps.FeedbackController,
		deps.AuthMiddleware,
	)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
