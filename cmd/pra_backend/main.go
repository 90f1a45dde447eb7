package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/wezaprosoft/press_rewards_app/internal/core/services"
	"github.com/wezaprosoft/press_rewards_app/internal/handlers"
	"github.com/wezaprosoft/press_rewards_app/internal/middleware"
	"github.com/wezaprosoft/press_rewards_app/internal/repositories/database/pgsql"
	"github.com/wezaprosoft/press_rewards_app/pkg/config"
	"github.com/wezaprosoft/press_rewards_app/pkg/database"

	portssvc "github.com/wezaprosoft/press_rewards_app/internal/core/ports/services"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Press Rewards Backend API
// @version 1.0
// @description Press release distribution and journalist rewards backend.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(logger, cfg.DatabaseURL); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("error", err.Error()))
		os.Exit(1)
	}
	rateLimit := middleware.RateLimit(limiter.New(memory.NewStore(), rate))

	repos := pgsql.NewRepositoryProvider(dbPool)

	rewardSvc := services.NewRewardService(repos.PointTxnRepo)
	serviceContainer := &portssvc.ServiceContainer{
		Journalist:   services.NewJournalistService(repos.JournalistRepo),
		PressRelease: services.NewPressReleaseService(repos.PressReleaseRepo, repos.JournalistRepo),
		User:         services.NewUserService(repos.UserRepo, repos.JournalistRepo),
		Reward:       rewardSvc,
		LinkReview:   services.NewLinkReviewService(repos.LinkRepo, repos.PressReleaseRepo, repos.JournalistRepo),
		Withdrawal:   services.NewWithdrawalService(repos.WithdrawalRepo, repos.JournalistRepo),
		Reporting: services.NewReportingService(
			repos.ReportingRepo,
			repos.JournalistRepo,
			repos.PressReleaseRepo,
			repos.LinkRepo,
			repos.WithdrawalRepo,
			rewardSvc,
		),
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, rateLimit)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending migrations from the migrations directory.
// A separate database/sql connection is used because golang-migrate needs one.
func runMigrations(logger *slog.Logger, databaseURL string) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
