package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(SubmissionRateLimiter(2))
	app.Get("/e/x", func(c *fiber.Ctx) error { return c.SendString("page") })
	app.Post("/e/x", func(c *fiber.Ctx) error { return c.SendString("ok") })

	status := func(method, accept string) int {
		req := httptest.NewRequest(method, "/e/x", nil)
		if accept != "" {
			req.Header.Set("Accept", accept)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusOK, status("POST", ""))
	assert.Equal(t, fiber.StatusOK, status("POST", ""))
	assert.Equal(t, fiber.StatusTooManyRequests, status("POST", "application/json"))
	assert.Equal(t, fiber.StatusTooManyRequests, status("POST", "text/html"))

	// page views are not counted
	for i := 0; i < 5; i++ {
		assert.Equal(t, fiber.StatusOK, status("GET", ""))
	}
}

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		_, hasDeadline := c.UserContext().Deadline()
		assert.True(t, hasDeadline)
		return c.SendString(c.Locals(LocRequestID).(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", resp.Header.Get(fiber.HeaderXRequestID))
}
