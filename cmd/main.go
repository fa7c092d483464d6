package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movieverse/internal/browse"
	"movieverse/internal/config"
	"movieverse/internal/dashboard"
	"movieverse/internal/database"
	"movieverse/internal/handler"
	"movieverse/internal/metrics"
	"movieverse/internal/middleware"
	"movieverse/internal/repository"
	"movieverse/internal/service"
	"movieverse/internal/session"
	"movieverse/internal/tmdb"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to Redis (non-fatal if unavailable)
	var sessions session.Store
	var limiter *middleware.RateLimiter
	rdb, err := database.NewRedis(ctx, cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running with in-memory sessions and no rate limit", "error", err)
		sessions = session.NewMemoryStore(cfg.Browse.SessionTTL)
	} else {
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb, cfg.Browse.SessionTTL)
		limiter = middleware.NewRateLimiter(middleware.NewRedisCounter(rdb), cfg.RateLimit.Max, cfg.RateLimit.WindowSeconds)
	}

	// Dashboard dataset
	store, err := openDashboard(ctx, cfg)
	if err != nil {
		slog.Error("failed to load dashboard dataset", "source", cfg.Dashboard.Source, "error", err)
		os.Exit(1)
	}

	// Initialize layers
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, cfg.TMDB.Timeout)
	svc := service.NewMovieService(tmdbClient)
	pager := browse.Pager{ResetOnFilterChange: cfg.Browse.ResetPageOnFilterChange}
	h := handler.NewMovieHandler(svc, sessions, pager, cfg.Browse.SessionTTL)
	dh := handler.NewDashboardHandler(store)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MovieVerse",
		ServerHeader: "MovieVerse",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	app.Use(middleware.Metrics())

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.Docs{Title: "MovieVerse", YAML: swaggerYAML}.Register(app)
	}

	// API routes
	api := app.Group("/api/v1")
	api.Get("/health", h.Health)
	if limiter != nil {
		api.Use(limiter.Handler())
	}
	api.Get("/genres", h.Genres)
	api.Get("/browse", h.Browse)
	api.Get("/movies/:id", h.GetMovieDetail)
	api.Get("/dashboard", dh.Dashboard)

	// Graceful shutdown
	go func() {
		<-ctx.Done()
		slog.Info("shutting down movieverse...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movieverse", "addr", addr, "dashboard_source", cfg.Dashboard.Source)
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openDashboard loads the dashboard from the configured source. The CSV
// source is watched for changes until ctx is done.
func openDashboard(ctx context.Context, cfg *config.Config) (*dashboard.Store, error) {
	if cfg.Dashboard.Source == config.SourcePostgres {
		db, err := database.NewPostgres(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		// the pool lives as long as the process
		return dashboard.NewStore(ctx, repository.NewCatalogRepository(db))
	}

	store, err := dashboard.NewStore(ctx, dashboard.CSVSource{Path: cfg.Dashboard.CSVPath})
	if err != nil {
		return nil, err
	}
	if cfg.Dashboard.Watch {
		go func() {
			if err := store.Watch(ctx, cfg.Dashboard.CSVPath); err != nil {
				slog.Error("dashboard watcher stopped", "error", err)
			}
		}()
	}
	return store, nil
}
