package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"eventpages_backend/internals/features/landing_pages/landing_pages/controller"
	"eventpages_backend/internals/features/landing_pages/landing_pages/service"
	authMiddleware "eventpages_backend/internals/middlewares/auth"
)

// Login required (mounted under the JWT group) + org admin/owner
func LandingPageAdminRoutes(admin fiber.Router, db *gorm.DB) {
	MountAdmin(admin, service.New(service.NewGormStore(db)))
}

func MountAdmin(admin fiber.Router, svc *service.Service) {
	ctl := controller.NewLandingPageController(svc)

	pages := admin.Group("/landing-pages",
		authMiddleware.RequireOrgAdmin("manage landing pages"),
	)
	pages.Post("/fields/apply", ctl.ApplyFields) // before /:id

	pages.Get("/", ctl.List)
	pages.Post("/", ctl.Create)
	pages.Get("/:id", ctl.Get)
	pages.Patch("/:id", ctl.Patch)
	pages.Delete("/:id", ctl.Delete)
	pages.Post("/:id/duplicate", ctl.Duplicate)
	pages.Get("/:id/preview", ctl.Preview)
	pages.Get("/:id/submissions", ctl.Submissions)
	pages.Get("/:id/submissions/summary", ctl.SubmissionSummary)
}
