package api

import (
	"recurring-detector/docs"
	"recurring-detector/internal/api/handlers"
	"recurring-detector/pkg/auth"
	"recurring-detector/pkg/config"
	"recurring-detector/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func SetupRouter(
	recurringHandler *handlers.RecurringHandler,
	jwtManager *auth.JWTManager,
	detectorCfg *config.DetectorConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// Importing docs registers the Swagger document in init().
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	recurring := protected.Group("/recurring")
	recurring.Post("/detect",
		middleware.UserRateLimit(detectorCfg.RatePerMinute, detectorCfg.RateBurst, appLogger),
		recurringHandler.Detect,
	)
	recurring.Get("", recurringHandler.List)
	recurring.Patch("/:id/status", recurringHandler.UpdateStatus)

	return app
}
