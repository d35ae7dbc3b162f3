package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/skylineapp/skyline/internal/api/http"
	"github.com/skylineapp/skyline/internal/cache"
	"github.com/skylineapp/skyline/internal/config"
	"github.com/skylineapp/skyline/internal/scheduler"
	"github.com/skylineapp/skyline/internal/weather"
	"github.com/skylineapp/skyline/internal/weather/openweather"
)

func main() {
	// Load configuration. A missing API key fails here, at startup.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	provider := openweather.NewClient(httpClient, cfg.OpenWeatherAPIKey, cfg.OpenWeatherBaseURL)
	resultCache := cache.New()
	session := weather.NewSession()

	// Core service running the acquisition pipeline.
	service := weather.NewService(provider, resultCache, session)

	// Hourly cache warm-up for configured cities.
	prefetch := scheduler.New(cfg.PrefetchCities, service)
	if err := prefetch.Start(); err != nil {
		log.Fatalf("failed to start prefetch job: %v", err)
	}
	defer prefetch.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "skyline",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "skyline",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service, session, time.Local)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}

	session.Clear()
}
