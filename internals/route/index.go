// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventpages_backend/internals/configs"
	landingPageRoutes "eventpages_backend/internals/features/landing_pages/landing_pages/route"
	authMiddleware "eventpages_backend/internals/middlewares/auth"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, db)

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes (/e, /api/public)...")
	public := app.Group("/api/public")
	landingPageRoutes.LandingPagePublicRoutes(app, public, db, configs.SubmissionRateLimit)

	// ===================== ADMIN (per organization) =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + org admin)...")
	admin := app.Group("/api/a", adminAuth())
	landingPageRoutes.LandingPageAdminRoutes(admin, db)

	log.Printf("[INFO] Routes ready in %s", time.Since(startTime))
}

func adminAuth() fiber.Handler {
	if configs.JWTSecret == "" {
		return func(c *fiber.Ctx) error {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
		}
	}
	return authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})
}
