package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/smartcity/trafficboard/internal/config"
	"github.com/smartcity/trafficboard/internal/delivery/http"
	"github.com/smartcity/trafficboard/internal/domain"
	"github.com/smartcity/trafficboard/internal/render"
	"github.com/smartcity/trafficboard/internal/repository/memory"
	"github.com/smartcity/trafficboard/internal/repository/postgres"
	"github.com/smartcity/trafficboard/internal/repository/sqlite"
	"github.com/smartcity/trafficboard/internal/service"
)

func main() {
	// Configuration
	cfg, foundEnv := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zlog, err := cfg.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zlog.Sync()

	if !foundEnv {
		zlog.Info("no .env file found, using system environment")
	}

	// Area catalog
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	repo, closeRepo := openCatalog(ctx, cfg, zlog)
	cancel()
	defer closeRepo()

	// Dependency Injection: Services
	renderer := render.NewChartJSRenderer(render.DefaultTheme, zlog.Named("render"))
	trafficSvc := service.NewTrafficService(repo, zlog.Named("traffic"))
	dashboardSvc := service.NewDashboardService(trafficSvc, renderer, zlog.Named("dashboard"))

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "Traffic Analytics v1.0",
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: http.ErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Routes
	http.SetupRoutes(app, http.NewHandler(trafficSvc, dashboardSvc, zlog.Named("http")))

	// Graceful shutdown
	go func() {
		zlog.Info("server starting", zap.String("addr", ":"+cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zlog.Warn("server forced to shutdown", zap.Error(err))
	}
	if err := dashboardSvc.Close(); err != nil {
		zlog.Warn("failed to release charts", zap.Error(err))
	}
	zlog.Info("server exited gracefully")
}

// openCatalog picks the catalog backend: Postgres, then SQLite, then the
// built-in list. A backend that cannot connect or migrate falls back to the
// built-in list.
func openCatalog(ctx context.Context, cfg *config.Config, zlog *zap.Logger) (domain.AreaRepository, func()) {
	noop := func() {}

	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err == nil {
			err = pool.Ping(ctx)
			if err != nil {
				pool.Close()
			}
		}
		if err != nil {
			zlog.Warn("could not connect to PostgreSQL, using built-in catalog", zap.Error(err))
			return memory.NewRepository(), noop
		}

		repo := postgres.NewPostgresRepository(pool)
		if err := repo.Migrate(ctx, domain.BangaloreAreas, memory.DefaultHotspots); err != nil {
			pool.Close()
			zlog.Warn("PostgreSQL catalog migration failed, using built-in catalog", zap.Error(err))
			return memory.NewRepository(), noop
		}
		zlog.Info("connected to PostgreSQL")
		return repo, pool.Close
	}

	if cfg.SQLitePath != "" {
		repo, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			zlog.Warn("could not open SQLite database, using built-in catalog", zap.Error(err))
			return memory.NewRepository(), noop
		}
		if err := repo.Migrate(ctx, domain.BangaloreAreas, memory.DefaultHotspots); err != nil {
			repo.Close()
			zlog.Warn("SQLite catalog migration failed, using built-in catalog", zap.Error(err))
			return memory.NewRepository(), noop
		}
		zlog.Info("opened SQLite catalog", zap.String("path", cfg.SQLitePath))
		return repo, func() {
			if err := repo.Close(); err != nil {
				zlog.Warn("failed to close SQLite database", zap.Error(err))
			}
		}
	}

	zlog.Info("no database configured, using built-in catalog")
	return memory.NewRepository(), noop
}
