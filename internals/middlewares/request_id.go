package middlewares

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"
)

const LocRequestID = "requestid"

// requestTimeout bounds the user context handed to the store; it matches the
// DB statement_timeout order of magnitude.
const requestTimeout = 5 * time.Second

// RequestID tags every request with an id (reusing X-Request-ID when the
// proxy sent one) and logs slow requests.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid := c.Get(fiber.HeaderXRequestID)
		if rid == "" {
			rid = utils.UUID()
		}
		c.Locals(LocRequestID, rid)
		c.Set(fiber.HeaderXRequestID, rid)

		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()

		if dur := time.Since(start); dur > 500*time.Millisecond {
			log.Printf("[SLOW REQ] id=%s %s %s status=%d dur=%s",
				rid, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		}
		return err
	}
}
