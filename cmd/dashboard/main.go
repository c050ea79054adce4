package main

import (
	"errors"
	"log"
	"time"

	"github.com/fadilmartias/jobtrack/internal/cache"
	"github.com/fadilmartias/jobtrack/internal/client"
	"github.com/fadilmartias/jobtrack/internal/config"
	"github.com/fadilmartias/jobtrack/internal/domain/fiber/handler"
	"github.com/fadilmartias/jobtrack/internal/middleware"
	"github.com/fadilmartias/jobtrack/internal/notifier"
	"github.com/fadilmartias/jobtrack/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()
	upstreamConfig := config.LoadUpstreamConfig()
	if upstreamConfig.BaseURL == "" {
		log.Fatal("UPSTREAM_BASE_URL is required")
	}

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(healthcheck.New())
	app.Use(middleware.RateLimiter(50, 1*time.Minute))

	// One shared cache for every consumer of the same key, built at
	// startup. A client-side cache needs no teardown.
	queryCache := cache.New()
	apiClient := client.New(upstreamConfig)
	uc := usecase.NewApplicationUsecase(apiClient, queryCache, notifier.NewLog(), upstreamConfig.CacheTTL)

	handler.NewAnalyticsHandler(uc).RegisterRoutes(app)
	handler.NewApplicationProxyHandler(uc).RegisterRoutes(app)

	log.Println("Dashboard running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}
