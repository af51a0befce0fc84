package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/adapter/auth"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/adapter/store"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/handler"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/middleware"
	"github.com/leonardomorales-oss/auth0-fullstack-go/internal/service"
	"github.com/leonardomorales-oss/auth0-fullstack-go/pkg/config"

	_ "github.com/lib/pq"
)

func main() {
	// ── Load .env file ───────────────────────────────────────────────────
	_ = godotenv.Load() // silently ignore if .env doesn't exist

	// ── Configuration ────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("starting api service",
		"port", cfg.Port,
		"issuer", cfg.Auth0IssuerBaseURL,
		"audience", cfg.Auth0Audience,
	)

	// ── Database ─────────────────────────────────────────────────────────
	if cfg.MigrateOnStart {
		if err := store.RunMigrations(cfg.DatabaseURL); err != nil {
			slog.Error("failed to migrate database", "error", err)
			os.Exit(1)
		}
	}

	pgStore, err := store.NewPostgresStore(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	// ── Token verifier ───────────────────────────────────────────────────
	verifier, err := auth.NewOIDCVerifier(context.Background(), cfg.Auth0IssuerBaseURL, cfg.Auth0Audience)
	if err != nil {
		slog.Error("failed to set up token verifier", "error", err)
		os.Exit(1)
	}

	// ── Services ─────────────────────────────────────────────────────────
	profileService := service.NewProfileService(pgStore)

	// ── Fiber App ────────────────────────────────────────────────────────
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.Metrics())
	app.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.CORSAllowedOrigin},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowMethods: []string{"GET", "OPTIONS"},
	}))

	// ── Public Routes ────────────────────────────────────────────────────
	publicHandler := handler.NewPublicHandler()
	publicHandler.Register(app)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// ── Protected Routes ─────────────────────────────────────────────────
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:            rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0),
		Burst:           cfg.RateLimitPerMinute,
		CleanupInterval: middleware.DefaultRateLimiterConfig().CleanupInterval,
	})
	defer limiter.Stop()

	api := app.Group("/api", middleware.Auth(verifier), limiter.Middleware())

	profileHandler := handler.NewProfileHandler(profileService)
	profileHandler.Register(api)

	// ── Start ────────────────────────────────────────────────────────────
	slog.Info("listening", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
