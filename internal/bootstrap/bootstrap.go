package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/mindease/mindease-server/internal/app/controllers"
	appMigrations "github.com/mindease/mindease-server/internal/app/migrations"
	appRepos "github.com/mindease/mindease-server/internal/app/repositories"
	appRoutes "github.com/mindease/mindease-server/internal/app/routes"
	appServices "github.com/mindease/mindease-server/internal/app/services"
	"github.com/mindease/mindease-server/internal/config"
	"github.com/mindease/mindease-server/internal/db"
	appMiddleware "github.com/mindease/mindease-server/internal/middleware"
	pkgAuth "github.com/mindease/mindease-server/internal/pkg/auth"
	"github.com/mindease/mindease-server/internal/pkg/logger"
	"github.com/mindease/mindease-server/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	CounselorService    appServices.CounselorService // Interface type
	BookingService      appServices.BookingService   // Interface type
	AuthController      *appControllers.AuthController
	CounselorController *appControllers.CounselorController
	BookingController   *appControllers.BookingController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the store, applies migrations and seeds the admin account.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.New(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if err := PrepareDatabase(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	return database, nil
}

// PrepareDatabase migrates the schema and seeds default data on an open store.
// A failed seed is logged and does not stop startup.
func PrepareDatabase(ctx context.Context, cfg *config.Config, database *db.Database, lgr zerolog.Logger) error {
	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database, lgr)
	if err := migrator.Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	admin := seed.AdminAccount{
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
		Name:     cfg.Seed.AdminName,
	}
	if err := seed.CreateDefaultAdmin(ctx, appRepos.NewUserRepository(database), admin, cfg.Auth.BcryptCost, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default admin, proceeding anyway...")
	}

	return nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Database, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    cfg.JWT.Expiration,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.JWTService,
		cfg.Auth.BcryptCost,
		lgr.With().Str("component", "auth").Logger(),
	)
	deps.CounselorService = appServices.NewCounselorService(deps.Repos.UserRepository, lgr)
	deps.BookingService = appServices.NewBookingService(
		deps.Repos.BookingRepository,
		lgr.With().Str("component", "booking").Logger(),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.CounselorController = appControllers.NewCounselorController(deps.CounselorService)
	deps.BookingController = appControllers.NewBookingController(deps.BookingService, lgr)

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	switch {
	case cfg.IsProduction():
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	case strings.ToLower(cfg.Server.Mode) == gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.SetupValidation()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigin)))

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.CounselorController,
		deps.BookingController,
		deps.AuthMiddleware,
		appRoutes.Options{RequireToken: cfg.Auth.RequireToken},
	)

	return router
}

// corsConfig allows the configured comma-separated origins, or any origin for "*".
func corsConfig(origins string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")

	var allowed []string
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowed = append(allowed, origin)
		}
	}

	if len(allowed) == 0 || (len(allowed) == 1 && allowed[0] == "*") {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}
	corsCfg.AllowOrigins = allowed
	return corsCfg
}
