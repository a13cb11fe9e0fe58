package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventpages_backend/internals/features/landing_pages/landing_pages/controller"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
	"eventpages_backend/internals/middlewares"
)

// No token. Page views are open; POSTs go through the submission limiter.
func LandingPagePublicRoutes(app fiber.Router, api fiber.Router, db *gorm.DB, submitLimit int) {
	MountPublic(app, api, service.New(service.NewGormStore(db)), submitLimit)
}

// MountPublic wires /e/:slug on app and /landing-pages/:slug on api
// (normally the /api/public group).
func MountPublic(app fiber.Router, api fiber.Router, svc *service.Service, submitLimit int) {
	ctl := controller.NewPublicController(svc)
	limit := middlewares.SubmissionRateLimiter(submitLimit)

	page := app.Group("/e", limit)
	page.Get("/:slug", ctl.Page)
	page.Post("/:slug", ctl.Submit)
	page.Get("/:slug/thank-you", ctl.ThankYou)

	pub := api.Group("/landing-pages", limit)
	pub.Get("/:slug", ctl.GetJSON)
	pub.Post("/:slug/submissions", ctl.SubmitJSON)
}
