package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"eventpages_backend/internals/configs"
	"eventpages_backend/internals/middlewares/logger"
)

// SetupMiddlewares installs the app-wide chain. Order matters: the request
// id must exist before the logger and recovery read it.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RequestID())
	app.Use(RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(CorsMiddleware(configs.SplitList(configs.AllowedOrigins)))
	app.Use(GlobalRateLimiter())
}
