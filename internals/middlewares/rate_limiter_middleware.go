package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "eventpages_backend/internals/helpers"
)

func tooManyRequests(msg string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Accepts(fiber.MIMETextHTML, fiber.MIMEApplicationJSON) == fiber.MIMETextHTML {
			return c.Status(fiber.StatusTooManyRequests).SendString(msg)
		}
		return helper.JsonError(c, fiber.StatusTooManyRequests, msg)
	}
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: tooManyRequests("Too many requests. Please try again later."),
	})
}

// SubmissionRateLimiter guards the public registration form; only
// POSTs are counted so page views stay unthrottled.
func SubmissionRateLimiter(max int) fiber.Handler {
	if max <= 0 {
		max = 20
	}
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return "submit:" + c.IP()
		},
		LimitReached: tooManyRequests("Too many submissions. Please wait a minute and try again."),
	})
}
