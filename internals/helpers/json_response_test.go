package helper

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaging(t *testing.T) {
	assert.Equal(t, Paging{Page: 1, PerPage: 20, Offset: 0, Limit: 20}, NewPaging(0, 0, 20, 100))
	assert.Equal(t, Paging{Page: 3, PerPage: 10, Offset: 20, Limit: 10}, NewPaging(3, 10, 20, 100))
	assert.Equal(t, Paging{Page: 1, PerPage: 100, Offset: 0, Limit: 100}, NewPaging(1, 500, 20, 100))
}

func TestBuildPaginationFromPage(t *testing.T) {
	p := BuildPaginationFromPage(45, 2, 20)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := BuildPaginationFromPage(0, 1, 20)
	assert.Equal(t, 1, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestErrorEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: FromFiberError})
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusForbidden, "nope") })
	app.Get("/plain", func(c *fiber.Ctx) error { return io.ErrUnexpectedEOF })
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return JsonValidationError(c, FieldErrors(map[string]string{"email": "Email is required"}))
	})

	read := func(path string) (int, ErrorResponse) {
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		var body ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return resp.StatusCode, body
	}

	status, body := read("/fiber")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "nope", body.Message)
	assert.Equal(t, "FORBIDDEN", body.ErrorCode)

	// internal errors are not echoed to clients
	status, body = read("/plain")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.NotContains(t, body.Message, "unexpected EOF")

	status, body = read("/invalid")
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string][]string{"email": {"Email is required"}}, body.Errors)
}
